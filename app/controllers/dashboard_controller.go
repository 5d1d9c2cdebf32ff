package controllers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/shashank2020/samurais-admin/app/models"
	"github.com/shashank2020/samurais-admin/app/repository"
	"github.com/shashank2020/samurais-admin/internal/pkg/billing"
	"github.com/shashank2020/samurais-admin/internal/pkg/statistics"
)

// HandleDashboard renders the payment dashboard: summary cards, the
// member payment grid for the selected cadence tab, and the per-session
// casual invoice cards.
func HandleDashboard(c *fiber.Ctx) error {
	year := selectedYear(c)

	cadence, err := billing.ParseCadence(c.Query("cadence", billing.CadenceMonthly.String()))
	if err != nil || cadence == billing.CadenceCasual {
		cadence = billing.CadenceMonthly
	}

	repos := repository.GetGlobalRepositories()

	members, err := repos.Member.ListByStatus(models.MEMBER_STATUS_ACTIVE)
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}

	invoices, err := repos.Invoice.ListByCadenceAndYear(cadence.String(), year)
	if err != nil {
		return fmt.Errorf("failed to load invoices: %w", err)
	}

	lines, err := repos.Invoice.LinesForInvoices(invoiceIDs(invoices))
	if err != nil {
		return fmt.Errorf("failed to load invoice lines: %w", err)
	}

	grid := billing.BuildPaymentGrid(members, invoices, lines, cadence, year)

	casualInvoices, err := repos.Invoice.ListByCadence(billing.CadenceCasual.String())
	if err != nil {
		return fmt.Errorf("failed to load casual invoices: %w", err)
	}
	casualLines, err := repos.Invoice.LinesForInvoices(invoiceIDs(casualInvoices))
	if err != nil {
		return fmt.Errorf("failed to load casual lines: %w", err)
	}
	casualSummaries := billing.BuildCasualSummaries(members, casualInvoices, casualLines)

	stats := statistics.GetStatisticsData()

	return c.Render("dashboard", viewData(c, fiber.Map{
		"Title":           "Dashboard",
		"Year":            year,
		"Cadence":         cadence.String(),
		"CadenceTabs":     billing.GridCadences(),
		"Grid":            grid,
		"CasualSummaries": casualSummaries,
		"Stats":           stats,
	}), "layouts/main")
}

// HandleMarkLinePaid marks a member invoice line as paid from the grid or
// a casual card and returns to the dashboard. Marking an already paid
// line just refreshes the payment date.
func HandleMarkLinePaid(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	lineID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		fm["message"] = "Invalid payment line"

		return flash.WithError(c, fm).Redirect("/")
	}

	invoiceRepo := repository.GetGlobalRepositories().Invoice
	if _, err := invoiceRepo.GetLine(uint(lineID)); err != nil {
		fm["message"] = "Payment line not found"

		return flash.WithError(c, fm).Redirect("/")
	}

	if err := invoiceRepo.MarkLinePaid(uint(lineID)); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/")
	}

	statistics.ResetCacheUpdateTimer()

	fm = fiber.Map{
		"type":    "success",
		"message": "Payment recorded",
	}

	redirect := c.FormValue("redirect", "/")
	return flash.WithSuccess(c, fm).Redirect(redirect)
}

func invoiceIDs(invoices []models.Invoice) []uint {
	ids := make([]uint, 0, len(invoices))
	for _, invoice := range invoices {
		ids = append(ids, invoice.ID)
	}
	return ids
}
