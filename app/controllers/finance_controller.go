package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/shashank2020/samurais-admin/app/models"
	"github.com/shashank2020/samurais-admin/app/repository"
	"github.com/shashank2020/samurais-admin/internal/pkg/billing"
	"github.com/shashank2020/samurais-admin/internal/pkg/finance"
)

// HandleFinance renders the finance page: the monthly overview table and
// the chronological summary of events for the selected year.
func HandleFinance(c *fiber.Ctx) error {
	year := selectedYear(c)

	repos := repository.GetGlobalRepositories()

	balance, err := repos.Expense.GetYearBalance(year)
	if err != nil {
		return fmt.Errorf("failed to load year balance: %w", err)
	}

	expenses, err := repos.Expense.ListByYear(year)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	// Income comes from paid lines across every cadence
	cadences := append([]billing.Cadence{billing.CadenceCasual}, billing.GridCadences()...)
	var allInvoices []models.Invoice
	for _, cadence := range cadences {
		invoices, err := repos.Invoice.ListByCadence(cadence.String())
		if err != nil {
			return fmt.Errorf("failed to load invoices: %w", err)
		}
		allInvoices = append(allInvoices, invoices...)
	}

	lines, err := repos.Invoice.LinesForInvoices(invoiceIDs(allInvoices))
	if err != nil {
		return fmt.Errorf("failed to load invoice lines: %w", err)
	}

	members, err := repos.Member.ListAll()
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}

	overview := finance.BuildMonthlyOverview(year, balance.StartingBalance, lines, expenses)
	ledger := finance.BuildEventLedger(year, lines, allInvoices, members, expenses)

	return c.Render("finance/index", viewData(c, fiber.Map{
		"Title":           "Finance",
		"Year":            year,
		"StartingBalance": balance.StartingBalance,
		"Expenses":        expenses,
		"Overview":        overview,
		"ClosingBalance":  finance.ClosingBalance(balance.StartingBalance, overview),
		"Ledger":          ledger,
	}), "layouts/main")
}

// HandleExpenseCreate records a club expense
func HandleExpenseCreate(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	amount, err := strconv.ParseFloat(c.FormValue("amount"), 64)
	if err != nil || amount <= 0 {
		fm["message"] = "Please enter a valid expense amount"

		return flash.WithError(c, fm).Redirect("/finance")
	}

	expenseDate, err := time.Parse("2006-01-02", c.FormValue("expense_date"))
	if err != nil {
		fm["message"] = "Please select an expense date"

		return flash.WithError(c, fm).Redirect("/finance")
	}

	expense := models.ClubExpense{
		Title:       c.FormValue("title"),
		Amount:      amount,
		ExpenseDate: expenseDate,
		Category:    c.FormValue("category"),
		Notes:       c.FormValue("notes"),
	}
	if expense.Title == "" {
		fm["message"] = "Please give the expense a title"

		return flash.WithError(c, fm).Redirect("/finance")
	}

	if err := repository.GetGlobalRepositories().Expense.Create(&expense); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/finance")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Expense recorded",
	}

	return flash.WithSuccess(c, fm).Redirect(fmt.Sprintf("/finance?year=%d", expenseDate.Year()))
}

// HandleExpenseDelete removes a recorded expense
func HandleExpenseDelete(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		fm["message"] = "Invalid expense"

		return flash.WithError(c, fm).Redirect("/finance")
	}

	if err := repository.GetGlobalRepositories().Expense.Delete(uint(id)); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/finance")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Expense deleted",
	}

	return flash.WithSuccess(c, fm).Redirect("/finance")
}

// HandleYearBalanceUpdate sets the starting balance for a year
func HandleYearBalanceUpdate(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	year := selectedYear(c)
	if raw := c.FormValue("year"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			year = parsed
		}
	}

	startingBalance, err := strconv.ParseFloat(c.FormValue("starting_balance"), 64)
	if err != nil {
		fm["message"] = "Please enter a valid starting balance"

		return flash.WithError(c, fm).Redirect("/finance")
	}

	if err := repository.GetGlobalRepositories().Expense.SetYearBalance(year, startingBalance); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/finance")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Starting balance for %d updated", year),
	}

	return flash.WithSuccess(c, fm).Redirect(fmt.Sprintf("/finance?year=%d", year))
}
