package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/proffinder/backend/handlers"
	"github.com/proffinder/backend/middleware"
	"github.com/proffinder/backend/models"
)

func TeacherRoutes(app *fiber.App, d *Deps) {
	h := handlers.NewTeacherHandler(d.DB)

	protected := middleware.Protected(d.Config.JWTSecret)
	principal := middleware.AttachPrincipal(d.Users)

	teachers := app.Group("/api/teachers")

	teachers.Get("/test", h.TestRoute)

	teachers.Post("/", protected, principal,
		middleware.RoleRequired(models.RoleTeacher), h.CreateProfile)

	teachers.Get("/", protected, principal,
		middleware.RoleRequired(models.RoleStudent, models.RoleAdmin), h.ListTeachers)

	teachers.Get("/:id", protected, principal, h.GetTeacherByID)

	teachers.Post("/:id/rate", protected, principal,
		middleware.RoleRequired(models.RoleStudent), h.RateTeacher)
}
