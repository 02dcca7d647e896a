package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/regondolajezreel/Proj/app/config"
	"github.com/regondolajezreel/Proj/app/database"
	"github.com/regondolajezreel/Proj/app/models"
	"github.com/regondolajezreel/Proj/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/dashboard", auth.AuthMiddleware, GetDashboard)

	api := app.Group("/api", auth.AuthMiddleware)
	api.Get("/student/stats", auth.RequireRole(models.RoleStudent), GetStudentStatsAPI)
	api.Get("/professor/stats", auth.RequireRole(models.RoleProfessor), GetProfessorStatsAPI)
}

// GetDashboard renders the role-specific dashboard page.
func GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)
	role := c.Locals("user_role").(string)

	db := config.GetDB()

	if role == models.RoleStudent {
		student, err := database.GetStudentByID(db, userID)
		if err != nil {
			auth.SetFlash(c, "Student not found")
			return c.Redirect("/logout")
		}
		return c.Render("student_dashboard", fiber.Map{
			"Title":     "Student Dashboard",
			"Flash":     auth.TakeFlash(c),
			"FirstName": student.FirstName,
			"LastName":  student.LastName,
			"Email":     student.Email,
			"StudentID": student.StudentID,
			"Course":    student.Course,
			"YearLevel": student.YearLevel,
		})
	}

	professor, err := database.GetProfessorByID(db, userID)
	if err != nil {
		auth.SetFlash(c, "Professor not found")
		return c.Redirect("/logout")
	}
	return c.Render("professor_dashboard", fiber.Map{
		"Title":       "Professor Dashboard",
		"Flash":       auth.TakeFlash(c),
		"FirstName":   professor.FirstName,
		"LastName":    professor.LastName,
		"Email":       professor.Email,
		"ProfessorID": professor.ProfessorID,
		"Department":  professor.Department,
	})
}

// GetStudentStatsAPI returns the student dashboard aggregates. Only the
// enrolled-class count is real; the rest are placeholders the frontend
// expects and stay zero.
func GetStudentStatsAPI(c *fiber.Ctx) error {
	studentID := c.Locals("user_id").(int)

	enrolled, err := database.CountEnrollments(config.GetDB(), studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}

	return c.JSON(fiber.Map{
		"enrolled_classes":      enrolled,
		"pending_assignments":   0,
		"upcoming_deadlines":    0,
		"completed_assignments": 0,
	})
}

// GetProfessorStatsAPI returns the professor dashboard aggregates. Class
// and student counts are real; the rest are placeholders and stay zero.
func GetProfessorStatsAPI(c *fiber.Ctx) error {
	professorID := c.Locals("user_id").(int)

	totalClasses, totalStudents, err := database.CountProfessorClasses(config.GetDB(), professorID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}

	return c.JSON(fiber.Map{
		"total_classes":      totalClasses,
		"total_students":     totalStudents,
		"pending_tasks":      0,
		"upcoming_deadlines": 0,
	})
}
