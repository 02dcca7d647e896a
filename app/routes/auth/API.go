package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/regondolajezreel/Proj/app/config"
	"github.com/regondolajezreel/Proj/app/database"
	"github.com/regondolajezreel/Proj/app/models"
)

func GetProfileAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)
	role := c.Locals("user_role").(string)

	db := config.GetDB()

	if role == models.RoleStudent {
		student, err := database.GetStudentByID(db, userID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}
		return c.JSON(fiber.Map{
			"first_name": student.FirstName,
			"last_name":  student.LastName,
			"email":      student.Email,
			"student_id": student.StudentID,
			"course":     student.Course,
			"year_level": student.YearLevel,
			"user_type":  models.RoleStudent,
		})
	}

	professor, err := database.GetProfessorByID(db, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Professor not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{
		"first_name":   professor.FirstName,
		"last_name":    professor.LastName,
		"email":        professor.Email,
		"professor_id": professor.ProfessorID,
		"department":   professor.Department,
		"user_type":    models.RoleProfessor,
	})
}

// UpdatePasswordAPI changes the caller's password after re-checking the
// current one. No strength policy applies here; the minimum length is
// only enforced by the reset flow.
func UpdatePasswordAPI(c *fiber.Ctx) error {
	type UpdatePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	userID := c.Locals("user_id").(int)
	role := c.Locals("user_role").(string)

	db := config.GetDB()

	var hash string
	if role == models.RoleStudent {
		student, err := database.GetStudentByID(db, userID)
		if err != nil {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		hash = student.Password
	} else {
		professor, err := database.GetProfessorByID(db, userID)
		if err != nil {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		hash = professor.Password
	}

	if !CheckPasswordHash(req.CurrentPassword, hash) {
		return c.Status(400).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashedPassword, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
	}

	if role == models.RoleStudent {
		err = database.UpdateStudentPassword(db, userID, hashedPassword)
	} else {
		err = database.UpdateProfessorPassword(db, userID, hashedPassword)
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
