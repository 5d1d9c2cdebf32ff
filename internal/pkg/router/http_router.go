package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shashank2020/samurais-admin/internal/pkg/middleware"
	"github.com/shashank2020/samurais-admin/internal/pkg/oauth"
	"github.com/shashank2020/samurais-admin/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context; nothing extra here
	return c.Next()
}
