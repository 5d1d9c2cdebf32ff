package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shashank2020/samurais-admin/app/controllers"
	"github.com/shashank2020/samurais-admin/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", controllers.HandleOAuthLogin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}
