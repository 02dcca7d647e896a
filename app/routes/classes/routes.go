package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/regondolajezreel/Proj/app/models"
	"github.com/regondolajezreel/Proj/app/routes/auth"
)

func SetupClassRoutes(app *fiber.App) {
	api := app.Group("/api", auth.AuthMiddleware)

	// One endpoint, two roles: professors manage owned classes, students
	// list the classes they are enrolled in.
	api.Get("/professor/classes", ManageClassesAPI)
	api.Post("/professor/classes", ManageClassesAPI)
	api.Delete("/professor/classes", ManageClassesAPI)

	student := api.Group("/student", auth.RequireRole(models.RoleStudent))
	student.Post("/join_class", JoinClassAPI)
	student.Post("/unenroll_class", UnenrollClassAPI)
}
