package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/regondolajezreel/Proj/app/config"
	"github.com/regondolajezreel/Proj/app/database"
	"github.com/regondolajezreel/Proj/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	// Public routes
	app.Get("/signup", ShowSignupPage)
	app.Post("/signup", SignupHandler)
	app.Get("/login", ShowLoginPage)
	app.Post("/login", LoginHandler)
	app.Get("/logout", LogoutHandler)
	app.Post("/logout", LogoutHandler)

	// Protected API routes
	api := app.Group("/api", AuthMiddleware)
	api.Get("/profile", GetProfileAPI)
	api.Post("/profile/update-password", UpdatePasswordAPI)
}

func ShowSignupPage(c *fiber.Ctx) error {
	return c.Render("signup", fiber.Map{
		"Title": "Sign Up",
		"Flash": TakeFlash(c),
	}, "")
}

func ShowLoginPage(c *fiber.Ctx) error {
	// Already logged in: straight to the dashboard
	if tokenString := c.Cookies(sessionCookie); tokenString != "" {
		if _, err := ValidateSessionToken(tokenString); err == nil {
			return c.Redirect("/dashboard")
		}
	}

	return c.Render("login", fiber.Map{
		"Title": "Login",
		"Flash": TakeFlash(c),
	}, "")
}

// SignupHandler registers a student or professor. Registration never
// establishes a session; the new principal logs in afterwards.
func SignupHandler(c *fiber.Ctx) error {
	userType := c.FormValue("userType")
	firstName := c.FormValue("firstName")
	lastName := c.FormValue("lastName")
	email := c.FormValue("email")
	password := c.FormValue("password")
	confirmPassword := c.FormValue("confirmPassword")
	policyAgreed := c.FormValue("policy")

	if userType == "" || firstName == "" || lastName == "" || email == "" ||
		password == "" || confirmPassword == "" {
		SetFlash(c, "All fields are required!")
		return c.Redirect("/signup")
	}
	if policyAgreed == "" {
		SetFlash(c, "You must agree to the policy!")
		return c.Redirect("/signup")
	}
	if password != confirmPassword {
		SetFlash(c, "Passwords do not match!")
		return c.Redirect("/signup")
	}

	db := config.GetDB()

	// The login email must be unique across both principal tables.
	if _, err := database.GetStudentByEmail(db, email); err == nil {
		SetFlash(c, "Email already registered!")
		return c.Redirect("/signup")
	} else if !errors.Is(err, database.ErrNotFound) {
		SetFlash(c, "Error creating account. Please try again.")
		return c.Redirect("/signup")
	}
	if _, err := database.GetProfessorByEmail(db, email); err == nil {
		SetFlash(c, "Email already registered!")
		return c.Redirect("/signup")
	} else if !errors.Is(err, database.ErrNotFound) {
		SetFlash(c, "Error creating account. Please try again.")
		return c.Redirect("/signup")
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		SetFlash(c, "Error creating account. Please try again.")
		return c.Redirect("/signup")
	}

	switch userType {
	case models.RoleStudent:
		studentID := c.FormValue("studentId")
		course := c.FormValue("course")
		yearLevel := c.FormValue("yearLevel")

		if studentID == "" || course == "" || yearLevel == "" {
			SetFlash(c, "All student fields are required!")
			return c.Redirect("/signup")
		}
		if _, err := database.GetStudentByStudentID(db, studentID); err == nil {
			SetFlash(c, "Student ID already registered!")
			return c.Redirect("/signup")
		} else if !errors.Is(err, database.ErrNotFound) {
			SetFlash(c, "Error creating account. Please try again.")
			return c.Redirect("/signup")
		}

		student := &models.Student{
			Email:     email,
			Password:  hashedPassword,
			FirstName: firstName,
			LastName:  lastName,
			StudentID: studentID,
			Course:    course,
			YearLevel: yearLevel,
		}
		if err := database.CreateStudent(db, student); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				SetFlash(c, "Email already registered!")
			} else {
				SetFlash(c, "Error creating account. Please try again.")
			}
			return c.Redirect("/signup")
		}

	case models.RoleProfessor:
		professorID := c.FormValue("professorId")
		department := c.FormValue("department")

		if professorID == "" || department == "" {
			SetFlash(c, "All professor fields are required!")
			return c.Redirect("/signup")
		}
		if _, err := database.GetProfessorByProfessorID(db, professorID); err == nil {
			SetFlash(c, "Professor ID already registered!")
			return c.Redirect("/signup")
		} else if !errors.Is(err, database.ErrNotFound) {
			SetFlash(c, "Error creating account. Please try again.")
			return c.Redirect("/signup")
		}

		professor := &models.Professor{
			Email:       email,
			Password:    hashedPassword,
			FirstName:   firstName,
			LastName:    lastName,
			ProfessorID: professorID,
			Department:  department,
		}
		if err := database.CreateProfessor(db, professor); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				SetFlash(c, "Email already registered!")
			} else {
				SetFlash(c, "Error creating account. Please try again.")
			}
			return c.Redirect("/signup")
		}

	default:
		SetFlash(c, "All fields are required!")
		return c.Redirect("/signup")
	}

	SetFlash(c, "Account created successfully! Please log in.")
	return c.Redirect("/login")
}

// LoginHandler authenticates a principal against its role's table only; a
// student cannot log in as a professor and vice versa.
func LoginHandler(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	userType := c.FormValue("userType")

	if email == "" || password == "" || userType == "" {
		SetFlash(c, "All fields are required")
		return c.Redirect("/login")
	}

	db := config.GetDB()

	var id int
	var hash, firstName, lastName string
	switch userType {
	case models.RoleStudent:
		student, err := database.GetStudentByEmail(db, email)
		if err != nil {
			SetFlash(c, "Invalid email or password")
			return c.Redirect("/login")
		}
		id, hash, firstName, lastName = student.ID, student.Password, student.FirstName, student.LastName
	case models.RoleProfessor:
		professor, err := database.GetProfessorByEmail(db, email)
		if err != nil {
			SetFlash(c, "Invalid email or password")
			return c.Redirect("/login")
		}
		id, hash, firstName, lastName = professor.ID, professor.Password, professor.FirstName, professor.LastName
	default:
		SetFlash(c, "All fields are required")
		return c.Redirect("/login")
	}

	if !CheckPasswordHash(password, hash) {
		SetFlash(c, "Invalid email or password")
		return c.Redirect("/login")
	}

	token, err := GenerateSessionToken(id, email, firstName, lastName, userType)
	if err != nil {
		SetFlash(c, "Error logging in. Please try again.")
		return c.Redirect("/login")
	}
	SetSessionCookie(c, token)

	SetFlash(c, "Logged in successfully!")
	return c.Redirect("/dashboard")
}

func LogoutHandler(c *fiber.Ctx) error {
	ClearSessionCookie(c)
	SetFlash(c, "You have been logged out successfully!")
	return c.Redirect("/login")
}

// AuthMiddleware resolves the session cookie (or Bearer token) into the
// request-scoped principal. API requests get the JSON envelope on
// failure; page requests are redirected to login.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies(sessionCookie)
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	isAPIRequest := strings.HasPrefix(c.Path(), "/api/")

	if tokenString == "" {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		SetFlash(c, "Please log in to access this page")
		return c.Redirect("/login")
	}

	claims, err := ValidateSessionToken(tokenString)
	if err != nil {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		SetFlash(c, "Please log in to access this page")
		return c.Redirect("/login")
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_first_name", claims.FirstName)
	c.Locals("user_last_name", claims.LastName)
	c.Locals("user_role", claims.Role)

	return c.Next()
}

// RequireRole gates an endpoint to the given roles. Must run after
// AuthMiddleware.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
		}
		return c.Status(403).Render("error", fiber.Map{
			"Title":        "Access Forbidden",
			"ErrorCode":    "403",
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": "You don't have permission to access this resource.",
		})
	}
}
