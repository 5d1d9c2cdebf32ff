package controllers

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/shashank2020/samurais-admin/app/repository"
	"github.com/shashank2020/samurais-admin/internal/pkg/mail"
	"github.com/shashank2020/samurais-admin/internal/pkg/pdfgen"
	"github.com/shashank2020/samurais-admin/internal/pkg/statistics"
	"github.com/shashank2020/samurais-admin/internal/pkg/storage"
)

var (
	storageClient     *storage.Client
	storageClientErr  error
	storageClientOnce sync.Once
)

func getStorageClient() (*storage.Client, error) {
	storageClientOnce.Do(func() {
		cfg, err := storage.LoadConfig()
		if err != nil {
			storageClientErr = err
			return
		}
		storageClient, storageClientErr = storage.NewClient(cfg)
	})
	return storageClient, storageClientErr
}

type invoicePDFRequest struct {
	InvoiceID uint `json:"invoice_id"`
}

type invoiceEmailRequest struct {
	InvoiceID uint     `json:"invoice_id"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	Recipient []string `json:"recipient"`
	PDFURL    string   `json:"pdf_url"` // optional: reuse the stored PDF instead of re-rendering
}

// HandleAPIInvoicePDF generates the PDF for an invoice, uploads it to
// object storage under a stable per-invoice key, stores the public link
// on the invoice and returns both URLs. Regeneration overwrites the
// stored document in place.
func HandleAPIInvoicePDF(c *fiber.Ctx) error {
	var req invoicePDFRequest
	if err := c.BodyParser(&req); err != nil || req.InvoiceID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invoice_id is required",
		})
	}

	pdf, err := renderInvoicePDF(req.InvoiceID)
	if err != nil {
		log.Errorf("[API] PDF generation failed for invoice %d: %v", req.InvoiceID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error generating PDF",
		})
	}

	client, err := getStorageClient()
	if err != nil {
		log.Errorf("[API] Storage unavailable: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error uploading PDF",
		})
	}

	publicURL, err := client.UploadInvoicePDF(c.Context(), req.InvoiceID, pdf)
	if err != nil {
		log.Errorf("[API] PDF upload failed for invoice %d: %v", req.InvoiceID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error uploading PDF",
		})
	}

	if err := repository.GetGlobalRepositories().Invoice.SetPublicURL(req.InvoiceID, publicURL); err != nil {
		log.Warnf("[API] Failed to store public URL for invoice %d: %v", req.InvoiceID, err)
	}

	return c.JSON(fiber.Map{
		"pdf_url":     publicURL,
		"preview_url": publicURL,
	})
}

// HandleAPIInvoiceEmail emails the invoice PDF to the given recipients
// and marks every line of the invoice as notified once the send succeeds.
func HandleAPIInvoiceEmail(c *fiber.Ctx) error {
	var req invoiceEmailRequest
	if err := c.BodyParser(&req); err != nil || req.InvoiceID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invoice_id is required",
		})
	}
	if len(req.Recipient) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one recipient is required",
		})
	}

	pdf, err := loadInvoicePDF(c, req)
	if err != nil {
		log.Errorf("[API] PDF generation failed for invoice %d: %v", req.InvoiceID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error sending email",
		})
	}

	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf("Invoice #%d", req.InvoiceID)
	}

	filename := fmt.Sprintf("invoice_%d.pdf", req.InvoiceID)
	if err := mail.SendMailWithAttachment(req.Recipient, subject, req.Body, filename, pdf); err != nil {
		log.Errorf("[API] Email send failed for invoice %d: %v", req.InvoiceID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error sending email",
		})
	}

	if err := repository.GetGlobalRepositories().Invoice.MarkNotified(req.InvoiceID); err != nil {
		log.Warnf("[API] Email sent but failed to mark invoice %d notified: %v", req.InvoiceID, err)
	}

	return c.JSON(fiber.Map{
		"status": "Email sent with invoice PDF attachment",
	})
}

// HandleAPIMarkLinePaid marks one member invoice line paid. Marking an
// already paid line refreshes the payment date, which is harmless.
func HandleAPIMarkLinePaid(c *fiber.Ctx) error {
	lineID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid line id",
		})
	}

	invoiceRepo := repository.GetGlobalRepositories().Invoice
	if _, err := invoiceRepo.GetLine(uint(lineID)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "payment line not found",
		})
	}

	if err := invoiceRepo.MarkLinePaid(uint(lineID)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to record payment",
		})
	}

	statistics.ResetCacheUpdateTimer()

	line, err := invoiceRepo.GetLine(uint(lineID))
	if err != nil {
		return c.JSON(fiber.Map{"status": "paid"})
	}

	return c.JSON(fiber.Map{
		"status":    "paid",
		"line_id":   line.ID,
		"date_paid": line.DatePaid,
	})
}

// loadInvoicePDF fetches the stored document when the caller passed its
// public URL, falling back to a fresh render otherwise
func loadInvoicePDF(c *fiber.Ctx, req invoiceEmailRequest) ([]byte, error) {
	if req.PDFURL != "" {
		client, err := getStorageClient()
		if err == nil {
			if exists, err := client.InvoicePDFExists(c.Context(), req.InvoiceID); err == nil && exists {
				if pdf, err := client.DownloadInvoicePDF(c.Context(), req.InvoiceID); err == nil {
					return pdf, nil
				}
			}
			log.Warnf("[API] Stored PDF for invoice %d not retrievable, re-rendering", req.InvoiceID)
		}
	}
	return renderInvoicePDF(req.InvoiceID)
}

// renderInvoicePDF loads everything an invoice PDF needs and renders it
func renderInvoicePDF(invoiceID uint) ([]byte, error) {
	repos := repository.GetGlobalRepositories()

	invoice, err := repos.Invoice.GetByID(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}

	settings, err := repos.Settings.GetClubSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load club settings: %w", err)
	}

	rates, err := repos.Settings.ListRates()
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription rates: %w", err)
	}

	doc := pdfgen.BuildDocument(*settings, *invoice, rates)
	return pdfgen.Render(doc)
}
