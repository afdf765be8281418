package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/proffinder/backend/handlers"
	"github.com/proffinder/backend/middleware"
	"github.com/proffinder/backend/models"
)

func AuthRoutes(app *fiber.App, d *Deps) {
	h := handlers.NewAuthHandler(d.DB, d.Tokens)

	auth := app.Group("/api/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)

	// Hard delete. Admin-gated; admins only ever exist via seeding.
	auth.Delete("/delete/:id",
		middleware.Protected(d.Config.JWTSecret),
		middleware.AttachPrincipal(d.Users),
		middleware.RoleRequired(models.RoleAdmin),
		h.DeleteUser,
	)
}
