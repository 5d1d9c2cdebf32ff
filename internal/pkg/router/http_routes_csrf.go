package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/shashank2020/samurais-admin/app/controllers"
	"github.com/shashank2020/samurais-admin/internal/pkg/env"
	"github.com/shashank2020/samurais-admin/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))

	// Dashboard
	group.Get("/", middleware.RequireAuth, controllers.HandleDashboard)
	group.Post("/lines/:id/paid", middleware.RequireAuth, controllers.HandleMarkLinePaid)

	// Auth
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)

	// Members
	group.Get("/members", middleware.RequireAuth, controllers.HandleMembers)
	group.Get("/members/new", middleware.RequireAuth, controllers.HandleMemberNew)
	group.Post("/members", middleware.RequireAuth, controllers.HandleMemberCreate)
	group.Get("/members/:id/edit", middleware.RequireAuth, controllers.HandleMemberEdit)
	group.Post("/members/:id", middleware.RequireAuth, controllers.HandleMemberUpdate)
	group.Post("/members/:id/activate", middleware.RequireAuth, controllers.HandleMemberActivate)
	group.Post("/members/:id/delete", middleware.RequireAuth, controllers.HandleMemberDelete)

	// Invoices
	group.Get("/invoices", middleware.RequireAuth, controllers.HandleInvoices)
	group.Get("/invoices/new", middleware.RequireAuth, controllers.HandleInvoiceNew)
	group.Post("/invoices", middleware.RequireAuth, controllers.HandleInvoiceCreate)
	group.Post("/invoices/:id/delete", middleware.RequireAuth, controllers.HandleInvoiceDelete)

	// Finance
	group.Get("/finance", middleware.RequireAuth, controllers.HandleFinance)
	group.Post("/finance/expenses", middleware.RequireAuth, controllers.HandleExpenseCreate)
	group.Post("/finance/expenses/:id/delete", middleware.RequireAuth, controllers.HandleExpenseDelete)
	group.Post("/finance/year-balance", middleware.RequireAuth, controllers.HandleYearBalanceUpdate)

	// Settings (admin only)
	group.Get("/settings", middleware.RequireAdmin, controllers.HandleSettings)
	group.Post("/settings", middleware.RequireAdmin, controllers.HandleSettingsUpdate)
	group.Post("/settings/logo", middleware.RequireAdmin, controllers.HandleLogoUpload)
	group.Post("/settings/rates", middleware.RequireAdmin, controllers.HandleRateUpdate)
}
