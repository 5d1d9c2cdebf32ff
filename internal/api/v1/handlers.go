package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/shashank2020/samurais-admin/app/controllers"
	"github.com/shashank2020/samurais-admin/internal/pkg/middleware"
)

// APIServer implements the JSON API surface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// Pong is the ping response body
type Pong struct {
	Ping string `json:"ping"`
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// PostInvoicePDF generates and stores the PDF for an invoice
func (s *APIServer) PostInvoicePDF(c *fiber.Ctx) error {
	return controllers.HandleAPIInvoicePDF(c)
}

// PostInvoiceEmail emails the invoice PDF to its recipients
func (s *APIServer) PostInvoiceEmail(c *fiber.Ctx) error {
	return controllers.HandleAPIInvoiceEmail(c)
}

// PostMemberInvoicePaid marks one member invoice line as paid
func (s *APIServer) PostMemberInvoicePaid(c *fiber.Ctx) error {
	return controllers.HandleAPIMarkLinePaid(c)
}

// RegisterHandlers attaches the v1 routes to the given router group.
// Everything except ping requires an authenticated session.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	router.Post("/invoice/pdf", middleware.RequireAPISessionAuth, s.PostInvoicePDF)
	router.Post("/invoice/email", middleware.RequireAPISessionAuth, s.PostInvoiceEmail)
	router.Post("/member-invoices/:id/paid", middleware.RequireAPISessionAuth, s.PostMemberInvoicePaid)
}
