package classes

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/regondolajezreel/Proj/app/config"
	"github.com/regondolajezreel/Proj/app/database"
	"github.com/regondolajezreel/Proj/app/models"
)

type rosterEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type professorClassView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Code        string        `json:"code"`
	Students    []rosterEntry `json:"students"`
	Materials   []string      `json:"materials"`
	Assignments []string      `json:"assignments"`
}

type studentClassView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Code          string `json:"code"`
	ProfessorName string `json:"professor_name"`
}

// ManageClassesAPI serves /api/professor/classes for both roles, matching
// the frontend contract: professors get full class objects with rosters
// and may create or delete; students get their enrolled classes and
// nothing else.
func ManageClassesAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)
	role := c.Locals("user_role").(string)

	switch role {
	case models.RoleProfessor:
		switch c.Method() {
		case fiber.MethodGet:
			return listProfessorClasses(c, userID)
		case fiber.MethodPost:
			return createClass(c, userID)
		default:
			return deleteClass(c, userID)
		}
	case models.RoleStudent:
		switch c.Method() {
		case fiber.MethodPost:
			return c.Status(403).JSON(fiber.Map{"error": "Students are not allowed to create classes"})
		case fiber.MethodDelete:
			return c.Status(403).JSON(fiber.Map{"error": "Students are not allowed to delete classes"})
		}
		return listStudentClasses(c, userID)
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user type"})
	}
}

func listProfessorClasses(c *fiber.Ctx, professorID int) error {
	db := config.GetDB()

	classes, err := database.GetClassesByProfessor(db, professorID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}

	views := make([]professorClassView, 0, len(classes))
	for _, class := range classes {
		students, err := database.GetClassStudents(db, class.ID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classes"})
		}
		roster := make([]rosterEntry, 0, len(students))
		for _, student := range students {
			roster = append(roster, rosterEntry{
				ID:    student.StudentID,
				Name:  student.FullName(),
				Email: student.Email,
			})
		}
		views = append(views, professorClassView{
			ID:          strconv.Itoa(class.ID),
			Name:        class.Name,
			Description: class.Description,
			Code:        class.Code,
			Students:    roster,
			Materials:   []string{},
			Assignments: []string{},
		})
	}
	return c.JSON(views)
}

func createClass(c *fiber.Ctx, professorID int) error {
	type CreateClassRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var req CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No JSON data provided"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Class name is required"})
	}

	db := config.GetDB()

	code, err := generateClassCode(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create class"})
	}

	class := &models.Class{
		Name:        req.Name,
		Description: req.Description,
		Code:        code,
		ProfessorID: professorID,
	}
	if err := database.CreateClass(db, class); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create class"})
	}

	return c.Status(201).JSON(professorClassView{
		ID:          strconv.Itoa(class.ID),
		Name:        class.Name,
		Description: class.Description,
		Code:        class.Code,
		Students:    []rosterEntry{},
		Materials:   []string{},
		Assignments: []string{},
	})
}

func deleteClass(c *fiber.Ctx, professorID int) error {
	type DeleteClassRequest struct {
		ClassID string `json:"class_id"`
	}

	var req DeleteClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No JSON data provided"})
	}
	if req.ClassID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Class ID is required"})
	}
	classID, err := strconv.Atoi(req.ClassID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid class ID format"})
	}

	if err := database.DeleteClass(config.GetDB(), classID, professorID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found or you do not have permission to delete it"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete class"})
	}
	return c.JSON(fiber.Map{"message": "Class deleted successfully"})
}

func listStudentClasses(c *fiber.Ctx, studentID int) error {
	db := config.GetDB()

	classes, err := database.GetClassesByStudent(db, studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}

	views := make([]studentClassView, 0, len(classes))
	for _, class := range classes {
		professorName := "N/A"
		if professor, err := database.GetProfessorByID(db, class.ProfessorID); err == nil {
			professorName = professor.FullName()
		}
		views = append(views, studentClassView{
			ID:            strconv.Itoa(class.ID),
			Name:          class.Name,
			Description:   class.Description,
			Code:          class.Code,
			ProfessorName: professorName,
		})
	}
	return c.JSON(views)
}

// JoinClassAPI enrolls the calling student via a join code.
func JoinClassAPI(c *fiber.Ctx) error {
	studentID := c.Locals("user_id").(int)

	type JoinClassRequest struct {
		Code string `json:"code"`
	}

	var req JoinClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No JSON data provided"})
	}
	if req.Code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Class code is required"})
	}

	db := config.GetDB()

	class, err := database.GetClassByCode(db, req.Code)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found with that code"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Could not join class, please try again."})
	}

	if err := database.Enroll(db, studentID, class.ID); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return c.Status(400).JSON(fiber.Map{"error": "You are already enrolled in this class"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Could not join class, please try again."})
	}

	professorName := "N/A"
	if professor, err := database.GetProfessorByID(db, class.ProfessorID); err == nil {
		professorName = professor.FullName()
	}

	return c.JSON(fiber.Map{
		"message": "Successfully joined class!",
		"class": studentClassView{
			ID:            strconv.Itoa(class.ID),
			Name:          class.Name,
			Description:   class.Description,
			Code:          class.Code,
			ProfessorName: professorName,
		},
	})
}

// UnenrollClassAPI removes the calling student's enrollment pairing.
func UnenrollClassAPI(c *fiber.Ctx) error {
	studentID := c.Locals("user_id").(int)

	type UnenrollRequest struct {
		ClassID string `json:"class_id"`
	}

	var req UnenrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No JSON data provided"})
	}
	if req.ClassID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Class ID is required"})
	}
	classID, err := strconv.Atoi(req.ClassID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid class ID format"})
	}

	db := config.GetDB()

	if _, err := database.GetClassByID(db, classID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Could not unenroll from class, please try again."})
	}

	if err := database.Unenroll(db, studentID, classID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "You are not enrolled in this class"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Could not unenroll from class, please try again."})
	}

	return c.JSON(fiber.Map{
		"message":  "Successfully unenrolled from class!",
		"class_id": req.ClassID,
	})
}
