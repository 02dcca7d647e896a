package main

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/regondolajezreel/Proj/app/config"
	"github.com/regondolajezreel/Proj/app/database"
	"github.com/regondolajezreel/Proj/app/routes/auth"
	"github.com/regondolajezreel/Proj/app/routes/classes"
	"github.com/regondolajezreel/Proj/app/routes/dashboard"
	"github.com/regondolajezreel/Proj/app/routes/debug"
	"github.com/regondolajezreel/Proj/app/routes/reset"
)

// customErrorHandler keeps the JSON envelope on API paths and renders
// error pages everywhere else.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		message := err.Error()
		switch code {
		case 404:
			message = "Endpoint not found"
		case 500:
			message = "Internal server error"
		}
		return c.Status(code).JSON(fiber.Map{"error": message})
	}

	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title": "Page Not Found",
		})
	case 500:
		return c.Status(500).Render("500", fiber.Map{
			"Title": "Server Error",
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error",
			"ErrorCode":    code,
			"ErrorTitle":   "An Error Occurred",
			"ErrorMessage": err.Error(),
		})
	}
}

func newApp() *fiber.App {
	engine := html.New("./app/templates", ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Static("/static", "./static")

	// Landing page: straight to the dashboard when a session exists.
	app.Get("/", func(c *fiber.Ctx) error {
		if token := c.Cookies("session_token"); token != "" {
			if _, err := auth.ValidateSessionToken(token); err == nil {
				return c.Redirect("/dashboard")
			}
		}
		return c.Render("index", fiber.Map{
			"Title": "Welcome",
			"Flash": auth.TakeFlash(c),
		}, "")
	})

	auth.SetupAuthRoutes(app)
	reset.SetupResetRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	classes.SetupClassRoutes(app)
	debug.SetupDebugRoutes(app)

	return app
}

func main() {
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.CreateTables(config.GetDB(), config.GetDriver()); err != nil {
		log.Fatal("Failed to create tables:", err)
	}

	app := newApp()

	log.Printf("Listening on %s", config.AppConfig.Addr)
	if err := app.Listen(config.AppConfig.Addr); err != nil {
		log.Fatal(err)
	}
}
