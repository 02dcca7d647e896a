package reset

import (
	"github.com/gofiber/fiber/v2"
)

// SetupResetRoutes wires the password reset flow: request a token, pass
// the identity challenge, set a new password. All three steps are
// token-bound, not session-bound.
func SetupResetRoutes(app *fiber.App) {
	app.Get("/forgot-password", ShowForgotPasswordPage)
	app.Post("/forgot-password", ForgotPasswordHandler)
	app.Get("/verify-identity/:token", ShowVerifyIdentityPage)
	app.Post("/verify-identity/:token", VerifyIdentityHandler)
	app.Get("/reset-password/:token", ShowResetPasswordPage)
	app.Post("/reset-password/:token", ResetPasswordHandler)
}
