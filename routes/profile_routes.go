package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/proffinder/backend/handlers"
	"github.com/proffinder/backend/middleware"
	"github.com/proffinder/backend/models"
)

func ProfileRoutes(app *fiber.App, d *Deps) {
	h := handlers.NewProfileHandler(d.DB)
	uploads := handlers.NewUploadHandler(d.Config.CloudinaryURL)

	protected := middleware.Protected(d.Config.JWTSecret)
	principal := middleware.AttachPrincipal(d.Users)

	students := app.Group("/api/students")
	students.Get("/profile", protected, principal,
		middleware.RoleRequired(models.RoleStudent), h.GetStudentProfile)

	profile := app.Group("/api/profile", protected, principal)
	profile.Put("/avatar", h.UpdateAvatar)

	uploadGroup := app.Group("/api/uploads", protected, principal)
	uploadGroup.Get("/signature", uploads.GenerateUploadSignature)
}
