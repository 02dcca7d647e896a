package reset

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/regondolajezreel/Proj/app/config"
	"github.com/regondolajezreel/Proj/app/database"
	"github.com/regondolajezreel/Proj/app/models"
	"github.com/regondolajezreel/Proj/app/routes/auth"
)

const tokenValidity = time.Hour

func ShowForgotPasswordPage(c *fiber.Ctx) error {
	return c.Render("forgot_password", fiber.Map{
		"Title": "Forgot Password",
		"Flash": auth.TakeFlash(c),
	}, "")
}

// ForgotPasswordHandler issues a reset token when the email matches a
// principal of the selected role. The "no account found" message differs
// from the success path, so responses reveal whether an account exists.
func ForgotPasswordHandler(c *fiber.Ctx) error {
	email := c.FormValue("email")
	userType := c.FormValue("userType")

	if email == "" || userType == "" {
		auth.SetFlash(c, "Please provide email and select user type")
		return c.Redirect("/forgot-password")
	}

	db := config.GetDB()

	var found bool
	switch userType {
	case models.RoleStudent:
		_, err := database.GetStudentByEmail(db, email)
		found = err == nil
	case models.RoleProfessor:
		_, err := database.GetProfessorByEmail(db, email)
		found = err == nil
	}

	if !found {
		auth.SetFlash(c, "No account found with that email address.")
		return c.Redirect("/forgot-password")
	}

	now := time.Now().UTC()
	token := &models.PasswordResetToken{
		Email:     email,
		Token:     uuid.NewString(),
		UserType:  userType,
		CreatedAt: now,
		ExpiresAt: now.Add(tokenValidity),
	}
	if err := database.CreateResetToken(db, token); err != nil {
		auth.SetFlash(c, "Error generating reset token. Please try again.")
		return c.Redirect("/forgot-password")
	}

	auth.SetFlash(c, "Reset link generated! You can now verify your identity.")
	return c.Redirect("/verify-identity/" + token.Token)
}

// loadToken repeats the validity checks every step of the flow performs:
// the token must exist, be unused, and not be past its expiry. A nil
// return means a redirect was already written.
func loadToken(c *fiber.Ctx) *models.PasswordResetToken {
	token, err := database.GetUnusedResetToken(config.GetDB(), c.Params("token"))
	if err != nil {
		auth.SetFlash(c, "Invalid or expired reset link.")
		_ = c.Redirect("/login")
		return nil
	}
	if token.Expired(time.Now().UTC()) {
		auth.SetFlash(c, "Reset link has expired.")
		_ = c.Redirect("/forgot-password")
		return nil
	}
	return token
}

func ShowVerifyIdentityPage(c *fiber.Ctx) error {
	token := loadToken(c)
	if token == nil {
		return nil
	}
	if !principalExists(token) {
		auth.SetFlash(c, "User not found.")
		return c.Redirect("/forgot-password")
	}
	return renderVerifyPage(c, token, auth.TakeFlash(c))
}

// principalExists reports whether the account the token was issued for
// still exists. Accounts can disappear between token issuance and use.
func principalExists(token *models.PasswordResetToken) bool {
	db := config.GetDB()
	if token.UserType == models.RoleStudent {
		_, err := database.GetStudentByEmail(db, token.Email)
		return err == nil
	}
	_, err := database.GetProfessorByEmail(db, token.Email)
	return err == nil
}

// renderVerifyPage renders the challenge form. The flash message is
// passed in directly: a cookie set in this request would not be visible
// to a render in the same request.
func renderVerifyPage(c *fiber.Ctx, token *models.PasswordResetToken, flash string) error {
	userTypeName := "Student"
	if token.UserType == models.RoleProfessor {
		userTypeName = "Professor"
	}
	return c.Render("verify_identity", fiber.Map{
		"Title":        "Verify Identity",
		"Flash":        flash,
		"Token":        token.Token,
		"UserType":     token.UserType,
		"UserTypeName": userTypeName,
		"Email":        token.Email,
	}, "")
}

// VerifyIdentityHandler runs the knowledge-based challenge: first and
// last name compared case-insensitively, the external id exactly. A
// mismatch is retryable and does not consume the token. Passing the
// challenge only redirects; the token is not marked verified, so the
// reset step re-checks token validity alone.
func VerifyIdentityHandler(c *fiber.Ctx) error {
	token := loadToken(c)
	if token == nil {
		return nil
	}

	db := config.GetDB()
	firstName := c.FormValue("first_name")
	lastName := c.FormValue("last_name")

	var matched bool
	if token.UserType == models.RoleStudent {
		student, err := database.GetStudentByEmail(db, token.Email)
		if err != nil {
			auth.SetFlash(c, "User not found.")
			return c.Redirect("/forgot-password")
		}
		matched = strings.EqualFold(student.FirstName, firstName) &&
			strings.EqualFold(student.LastName, lastName) &&
			student.StudentID == c.FormValue("student_id")
	} else {
		professor, err := database.GetProfessorByEmail(db, token.Email)
		if err != nil {
			auth.SetFlash(c, "User not found.")
			return c.Redirect("/forgot-password")
		}
		matched = strings.EqualFold(professor.FirstName, firstName) &&
			strings.EqualFold(professor.LastName, lastName) &&
			professor.ProfessorID == c.FormValue("professor_id")
	}

	if !matched {
		return renderVerifyPage(c, token,
			"The information you provided does not match our records. Please try again.")
	}

	auth.SetFlash(c, "Identity verified! You can now reset your password.")
	return c.Redirect("/reset-password/" + token.Token)
}

func ShowResetPasswordPage(c *fiber.Ctx) error {
	token := loadToken(c)
	if token == nil {
		return nil
	}
	return c.Render("reset_password", fiber.Map{
		"Title": "Reset Password",
		"Flash": auth.TakeFlash(c),
		"Token": token.Token,
	}, "")
}

// ResetPasswordHandler overwrites the principal's password and marks the
// token used, atomically.
func ResetPasswordHandler(c *fiber.Ctx) error {
	token := loadToken(c)
	if token == nil {
		return nil
	}

	password := c.FormValue("password")
	confirmPassword := c.FormValue("confirm_password")

	// Validation failures render in the same request, so the message
	// goes straight into the bind rather than through the flash cookie.
	renderAgain := func(message string) error {
		return c.Status(400).Render("reset_password", fiber.Map{
			"Title": "Reset Password",
			"Flash": message,
			"Token": token.Token,
		}, "")
	}

	if password != confirmPassword {
		return renderAgain("Passwords do not match!")
	}
	if len(password) < 6 {
		return renderAgain("Password must be at least 6 characters long!")
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return renderAgain("Error resetting password. Please try again.")
	}

	if err := database.ConsumeResetToken(config.GetDB(), token, hashedPassword); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return renderAgain("User not found.")
		}
		return renderAgain("Error resetting password. Please try again.")
	}

	auth.SetFlash(c, "Password reset successfully! You can now login with your new password.")
	return c.Redirect("/login")
}
