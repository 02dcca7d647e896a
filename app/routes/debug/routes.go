package debug

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"

	"github.com/regondolajezreel/Proj/app/config"
	"github.com/regondolajezreel/Proj/app/database"
	"github.com/regondolajezreel/Proj/app/routes/auth"
)

// Operational inspection routes, not linked from any page. They assume a
// single-operator deployment, same as the rest of the app.
func SetupDebugRoutes(app *fiber.App) {
	group := app.Group("/debug")
	group.Get("/database", DatabaseDump)
	group.Get("/clear-tokens", ClearTokens)
	group.Get("/enroll/:student_id/:code", ManualEnroll)
	group.Get("/session", SessionEcho)
	group.Get("/api-check", APICheck)
}

// DatabaseDump returns every principal and reset token row.
func DatabaseDump(c *fiber.Ctx) error {
	db := config.GetDB()

	students, err := database.ListStudents(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to read students"})
	}
	professors, err := database.ListProfessors(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to read professors"})
	}
	tokens, err := database.ListResetTokens(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to read tokens"})
	}

	return c.JSON(fiber.Map{
		"students":              students,
		"professors":            professors,
		"password_reset_tokens": tokens,
	})
}

// ClearTokens deletes all reset tokens. This is the only token deletion
// path; tokens otherwise only expire.
func ClearTokens(c *fiber.Ctx) error {
	n, err := database.ClearResetTokens(config.GetDB())
	if err != nil {
		return c.Status(500).SendString(fmt.Sprintf("Error clearing tokens: %v", err))
	}
	return c.SendString(fmt.Sprintf("All reset tokens cleared successfully! (%d removed)", n))
}

// ManualEnroll enrolls a student (by external student id) into a class
// (by join code), bypassing the join flow.
func ManualEnroll(c *fiber.Ctx) error {
	db := config.GetDB()

	student, err := database.GetStudentByStudentID(db, c.Params("student_id"))
	if err != nil {
		return c.Status(404).SendString(fmt.Sprintf("Student with ID %s not found.", c.Params("student_id")))
	}
	class, err := database.GetClassByCode(db, c.Params("code"))
	if err != nil {
		return c.Status(404).SendString(fmt.Sprintf("Class with code %s not found.", c.Params("code")))
	}

	if err := database.Enroll(db, student.ID, class.ID); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return c.SendString(fmt.Sprintf("Student %s is already enrolled in %s.", student.FirstName, class.Name))
		}
		return c.Status(500).SendString(fmt.Sprintf("Error enrolling student: %v", err))
	}
	return c.SendString(fmt.Sprintf("Successfully enrolled student %s in class %s.", student.FirstName, class.Name))
}

// APICheck probes the JSON API endpoints with the caller's own session
// and reports what each one returns, for checking the frontend contract
// from a browser.
func APICheck(c *fiber.Ctx) error {
	endpoints := map[string]string{
		"professor_classes": "/api/professor/classes",
		"student_stats":     "/api/student/stats",
		"professor_stats":   "/api/professor/stats",
		"profile":           "/api/profile",
	}

	results := fiber.Map{}
	for name, endpoint := range endpoints {
		req := httptest.NewRequest("GET", endpoint, nil)
		if cookie := c.Cookies("session_token"); cookie != "" {
			req.Header.Set("Cookie", "session_token="+cookie)
		}

		resp, err := c.App().Test(req)
		if err != nil {
			results[name] = fiber.Map{"error": err.Error()}
			continue
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		preview := string(body)
		if len(preview) > 100 {
			preview = preview[:100]
		}
		results[name] = fiber.Map{
			"status_code":  resp.StatusCode,
			"content_type": resp.Header.Get("Content-Type"),
			"data_preview": preview,
		}
	}
	return c.JSON(results)
}

// SessionEcho returns the resolved session claims for the caller, or an
// empty object when no valid session exists.
func SessionEcho(c *fiber.Ctx) error {
	cookie := c.Cookies("session_token")
	if cookie == "" {
		return c.JSON(fiber.Map{})
	}

	claims, err := auth.ValidateSessionToken(cookie)
	if err != nil {
		return c.JSON(fiber.Map{})
	}
	return c.JSON(claims)
}
