package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/shashank2020/samurais-admin/app/models"
	"github.com/shashank2020/samurais-admin/app/repository"
	"github.com/shashank2020/samurais-admin/internal/pkg/billing"
	"github.com/shashank2020/samurais-admin/internal/pkg/statistics"
)

// InvoiceCard is one invoice summarized for the tabbed invoice list
type InvoiceCard struct {
	Invoice    models.Invoice
	Label      string
	PaidCount  int
	TotalLines int
	Notified   bool
}

// buildInvoiceCards assembles the per-invoice summary rows for the list view.
// Casual labels carry the session date, so StartDate is always passed through.
func buildInvoiceCards(invoices []models.Invoice, cadence billing.Cadence) []InvoiceCard {
	cards := make([]InvoiceCard, 0, len(invoices))
	for _, invoice := range invoices {
		card := InvoiceCard{
			Invoice:    invoice,
			Label:      billing.PeriodLabel(invoice.PeriodKey, cadence, &invoice.StartDate),
			TotalLines: len(invoice.MemberInvoices),
			Notified:   len(invoice.MemberInvoices) > 0,
		}
		for _, line := range invoice.MemberInvoices {
			if line.IsPaid {
				card.PaidCount++
			}
			if !line.IsNotified {
				card.Notified = false
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// HandleInvoices renders the invoice list grouped by cadence tab
func HandleInvoices(c *fiber.Ctx) error {
	cadence, err := billing.ParseCadence(c.Query("cadence", billing.CadenceMonthly.String()))
	if err != nil {
		cadence = billing.CadenceMonthly
	}

	invoices, err := repository.GetGlobalRepositories().Invoice.ListByCadence(cadence.String())
	if err != nil {
		return fmt.Errorf("failed to load invoices: %w", err)
	}

	cards := buildInvoiceCards(invoices, cadence)

	allCadences := append([]billing.Cadence{billing.CadenceCasual}, billing.GridCadences()...)

	return c.Render("invoices/index", viewData(c, fiber.Map{
		"Title":       "Invoices",
		"Cadence":     cadence.String(),
		"CadenceTabs": allCadences,
		"Cards":       cards,
	}), "layouts/main")
}

// HandleInvoiceNew renders the new-invoice form: cadence, billing period
// (with a soft warning on periods already invoiced), and member selection.
func HandleInvoiceNew(c *fiber.Ctx) error {
	year := selectedYear(c)

	cadence, err := billing.ParseCadence(c.Query("cadence", billing.CadenceMonthly.String()))
	if err != nil {
		cadence = billing.CadenceMonthly
	}

	repos := repository.GetGlobalRepositories()

	members, err := repos.Member.ListActiveByCadence(cadence.String())
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}

	var candidates []billing.CandidatePeriod
	if cadence != billing.CadenceCasual {
		existing, err := repos.Invoice.ExistingPeriodKeys(cadence.String())
		if err != nil {
			return fmt.Errorf("failed to load existing periods: %w", err)
		}
		candidates = billing.CandidatePeriods(cadence, year, existing)
	}

	rate := 0.0
	if r, err := repos.Settings.GetRateForType(cadence.String()); err == nil {
		rate = r.Rate
	}

	return c.Render("invoices/new", viewData(c, fiber.Map{
		"Title":      "New Invoice",
		"Year":       year,
		"Cadence":    cadence.String(),
		"Members":    members,
		"Candidates": candidates,
		"Rate":       rate,
	}), "layouts/main")
}

// HandleInvoiceCreate opens a new billing cycle: it validates the form,
// derives period key and end date, and creates the invoice with one line
// per selected member in a single transaction.
func HandleInvoiceCreate(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	cadence, err := billing.ParseCadence(c.FormValue("cadence"))
	if err != nil {
		fm["message"] = "Unknown billing cadence"

		return flash.WithError(c, fm).Redirect("/invoices/new")
	}
	backTo := fmt.Sprintf("/invoices/new?cadence=%s", cadence)

	var startDate *time.Time
	if raw := c.FormValue("start_date"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			startDate = &parsed
		}
	}
	// The form for grid cadences submits a period selection, not a date
	if startDate == nil {
		if key := c.FormValue("period_key"); key != "" {
			if derived, err := billing.PeriodStartDate(cadence, key); err == nil {
				startDate = &derived
			}
		}
	}

	memberIDs := parseMemberIDs(c)

	req := billing.IssuanceRequest{
		Cadence:   cadence,
		StartDate: startDate,
		PeriodKey: c.FormValue("period_key"),
		MemberIDs: memberIDs,
	}

	cmd, err := billing.NormalizeIssuance(req)
	if err != nil {
		fm["message"] = issuanceErrorMessage(err)

		return flash.WithError(c, fm).Redirect(backTo)
	}

	repos := repository.GetGlobalRepositories()

	// The checkbox list only offers active members, but the posted IDs are
	// still client input
	selected, err := repos.Member.GetByIDs(cmd.MemberIDs)
	if err != nil || len(selected) != len(cmd.MemberIDs) {
		fm["message"] = "One or more selected members no longer exist"

		return flash.WithError(c, fm).Redirect(backTo)
	}

	amount := 0.0
	if rate, err := repos.Settings.GetRateForType(cadence.String()); err == nil {
		amount = rate.Rate
	}
	if raw := c.FormValue("amount"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed >= 0 {
			amount = parsed
		}
	}

	start, err := time.Parse("2006-01-02", cmd.StartDate)
	if err != nil {
		fm["message"] = "Invalid start date"

		return flash.WithError(c, fm).Redirect(backTo)
	}
	due, err := time.Parse("2006-01-02", cmd.EndDate)
	if err != nil {
		fm["message"] = "Invalid due date"

		return flash.WithError(c, fm).Redirect(backTo)
	}

	invoice := models.Invoice{
		Cadence:   cmd.Cadence.String(),
		PeriodKey: cmd.PeriodKey,
		StartDate: start,
		DueDate:   due,
	}

	lines := make([]models.MemberInvoice, 0, len(cmd.MemberIDs))
	for _, memberID := range cmd.MemberIDs {
		lines = append(lines, models.MemberInvoice{
			MemberID: memberID,
			Amount:   amount,
		})
	}

	invoiceID, err := repos.Invoice.CreateCycle(&invoice, lines)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect(backTo)
	}

	statistics.ResetCacheUpdateTimer()

	fm = fiber.Map{
		"type": "success",
		"message": fmt.Sprintf("Invoice #%d created for %d member(s)",
			invoiceID, len(cmd.MemberIDs)),
	}

	return flash.WithSuccess(c, fm).Redirect(fmt.Sprintf("/invoices?cadence=%s", cadence))
}

// HandleInvoiceDelete removes an invoice cycle and all its member lines
func HandleInvoiceDelete(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	invoiceID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		fm["message"] = "Invalid invoice"

		return flash.WithError(c, fm).Redirect("/invoices")
	}

	invoiceRepo := repository.GetGlobalRepositories().Invoice
	invoice, err := invoiceRepo.GetByID(uint(invoiceID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fm["message"] = "Invoice not found"
		} else {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		}

		return flash.WithError(c, fm).Redirect("/invoices")
	}

	if err := invoiceRepo.Delete(invoice.ID); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/invoices")
	}

	// Best effort: drop the stored PDF alongside the invoice
	if invoice.PublicURL != nil {
		if client, err := getStorageClient(); err == nil {
			if err := client.DeleteInvoicePDF(c.Context(), invoice.ID); err != nil {
				log.Warnf("[Invoices] Failed to delete stored PDF for invoice %d: %v", invoice.ID, err)
			}
		}
	}

	statistics.ResetCacheUpdateTimer()

	fm = fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Invoice #%d deleted", invoice.ID),
	}

	return flash.WithSuccess(c, fm).Redirect(fmt.Sprintf("/invoices?cadence=%s", invoice.Cadence))
}

func parseMemberIDs(c *fiber.Ctx) []uint {
	var ids []uint
	if form, err := c.MultipartForm(); err == nil {
		for _, raw := range form.Value["member_ids"] {
			if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
				ids = append(ids, uint(id))
			}
		}
		if len(ids) > 0 {
			return ids
		}
	}
	// urlencoded forms deliver repeated fields through the args parser
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		if string(key) != "member_ids" {
			return
		}
		if id, err := strconv.ParseUint(string(value), 10, 32); err == nil {
			ids = append(ids, uint(id))
		}
	})
	return ids
}

func issuanceErrorMessage(err error) string {
	switch {
	case errors.Is(err, billing.ErrMissingStartDate):
		return "Please select a start date"
	case errors.Is(err, billing.ErrNoMembersSelected):
		return "Please select at least one member"
	case errors.Is(err, billing.ErrMissingPeriodKey):
		return "Please select a billing period"
	case errors.Is(err, billing.ErrInvalidCadence):
		return "Unknown billing cadence"
	default:
		return fmt.Sprintf("something went wrong: %s", err)
	}
}
