package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/shashank2020/samurais-admin/app/models"
)

var monthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthSummary is one row of the monthly overview table
type MonthSummary struct {
	Month          time.Month
	Label          string
	Income         float64
	Expense        float64
	Net            float64
	RunningBalance float64
}

// EventType distinguishes ledger entries
type EventType string

const (
	EventIncome  EventType = "income"
	EventExpense EventType = "expense"
)

// Event is one entry in the merged income and expense ledger
type Event struct {
	Date        time.Time
	Description string
	Amount      float64
	Type        EventType
}

// BuildMonthlyOverview aggregates paid member lines and club expenses of
// one calendar year into per-month income, expense and net figures, and
// threads a running balance from the year's starting balance. Lines paid
// outside the year and unpaid lines are ignored.
func BuildMonthlyOverview(year int, startingBalance float64, lines []models.MemberInvoice, expenses []models.ClubExpense) []MonthSummary {
	months := make([]MonthSummary, 12)
	for i := range months {
		months[i].Month = time.Month(i + 1)
		months[i].Label = monthNames[i]
	}

	for _, line := range lines {
		if !line.IsPaid || line.DatePaid == nil {
			continue
		}
		if line.DatePaid.Year() != year {
			continue
		}
		months[int(line.DatePaid.Month())-1].Income += line.Amount
	}

	for _, expense := range expenses {
		if expense.ExpenseDate.Year() != year {
			continue
		}
		months[int(expense.ExpenseDate.Month())-1].Expense += expense.Amount
	}

	running := startingBalance
	for i := range months {
		months[i].Net = months[i].Income - months[i].Expense
		running += months[i].Net
		months[i].RunningBalance = running
	}

	return months
}

// ClosingBalance returns the December running balance of an overview,
// or the starting balance for an empty one.
func ClosingBalance(startingBalance float64, months []MonthSummary) float64 {
	if len(months) == 0 {
		return startingBalance
	}
	return months[len(months)-1].RunningBalance
}

// BuildEventLedger merges paid member lines and club expenses of one year
// into a single chronological ledger. Income descriptions carry the
// invoice cadence, the period key and the member's name.
func BuildEventLedger(year int, lines []models.MemberInvoice, invoices []models.Invoice, members []models.Member, expenses []models.ClubExpense) []Event {
	invoiceByID := make(map[uint]models.Invoice, len(invoices))
	for _, invoice := range invoices {
		invoiceByID[invoice.ID] = invoice
	}
	memberByID := make(map[uint]models.Member, len(members))
	for _, member := range members {
		memberByID[member.ID] = member
	}

	var events []Event
	for _, line := range lines {
		if !line.IsPaid || line.DatePaid == nil || line.DatePaid.Year() != year {
			continue
		}

		cadence, periodKey := "N/A", "N/A"
		if invoice, ok := invoiceByID[line.InvoiceID]; ok {
			if invoice.Cadence != "" {
				cadence = invoice.Cadence
			}
			if invoice.PeriodKey != "" {
				periodKey = invoice.PeriodKey
			}
		}
		memberName := ""
		if member, ok := memberByID[line.MemberID]; ok {
			memberName = member.GivenName
		}

		events = append(events, Event{
			Date:        *line.DatePaid,
			Description: fmt.Sprintf("Membership (%s - %s) - %s", cadence, periodKey, memberName),
			Amount:      line.Amount,
			Type:        EventIncome,
		})
	}

	for _, expense := range expenses {
		if expense.ExpenseDate.Year() != year {
			continue
		}
		events = append(events, Event{
			Date:        expense.ExpenseDate,
			Description: expense.Title,
			Amount:      expense.Amount,
			Type:        EventExpense,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	return events
}
