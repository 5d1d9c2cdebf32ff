package billing

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/shashank2020/samurais-admin/app/models"
)

// PaymentStatus is the derived state of one (member, period) cell.
type PaymentStatus string

const (
	StatusNone   PaymentStatus = "none"
	StatusUnpaid PaymentStatus = "unpaid"
	StatusPaid   PaymentStatus = "paid"
)

// GridCell is one cell of the member payment grid.
type GridCell struct {
	Status    PaymentStatus
	LineID    uint // member-invoice line backing the cell, 0 when none
	PeriodKey string
}

// GridRow is one member's row across all columns of the selected cadence.
type GridRow struct {
	MemberID   uint
	MemberName string
	Cells      map[string]GridCell // keyed by column label
}

// PaymentGrid is the member × period payment-status matrix for one cadence
// and one selected year.
type PaymentGrid struct {
	Cadence Cadence
	Year    int
	Columns []string
	Rows    []GridRow
}

// CasualAttendee is one member's line under a casual session invoice.
type CasualAttendee struct {
	LineID     uint
	MemberID   uint
	MemberName string
	IsPaid     bool
}

// CasualInvoiceSummary is the roll-up of one casual session invoice.
type CasualInvoiceSummary struct {
	InvoiceID    uint
	PeriodKey    string
	SessionDate  time.Time
	Label        string
	Attendees    []CasualAttendee
	PaidCount    int
	TotalMembers int
	FullyPaid    bool
}

// BuildPaymentGrid reconciles the roster against generated invoices and their
// payment lines into the grid for one cadence and year. It reads all three
// collections without mutating them; columns with no invoice period mapped to
// them stay at StatusNone.
//
// When two invoices map to the same column for the same member the last
// record in iteration order wins. That can only happen when the period-key
// uniqueness invariant is broken upstream, so the collision is logged.
func BuildPaymentGrid(members []models.Member, invoices []models.Invoice, lines []models.MemberInvoice, cadence Cadence, year int) PaymentGrid {
	grid := PaymentGrid{
		Cadence: cadence,
		Year:    year,
		Columns: Columns(cadence),
	}

	// Column per grid invoice of the selected cadence; periods outside the
	// selected year map to no column and render no cell.
	invoiceColumn := make(map[uint]string)
	invoicePeriod := make(map[uint]string)
	for _, inv := range invoices {
		c, err := ParseCadence(inv.Cadence)
		if err != nil || !c.IsGrid() || c != cadence {
			continue
		}
		col := ColumnForPeriodKey(inv.PeriodKey, cadence, year)
		if col == "" {
			continue
		}
		invoiceColumn[inv.ID] = col
		invoicePeriod[inv.ID] = inv.PeriodKey
	}

	rowIndex := make(map[uint]int)
	for _, m := range members {
		if m.Status != models.MEMBER_STATUS_ACTIVE || m.MembershipType != cadence.String() {
			continue
		}
		cells := make(map[string]GridCell, len(grid.Columns))
		for _, col := range grid.Columns {
			cells[col] = GridCell{Status: StatusNone}
		}
		rowIndex[m.ID] = len(grid.Rows)
		grid.Rows = append(grid.Rows, GridRow{
			MemberID:   m.ID,
			MemberName: m.DisplayName(),
			Cells:      cells,
		})
	}

	for _, line := range lines {
		col, ok := invoiceColumn[line.InvoiceID]
		if !ok {
			continue
		}
		idx, ok := rowIndex[line.MemberID]
		if !ok {
			continue
		}

		status := StatusUnpaid
		if line.IsPaid {
			status = StatusPaid
		}
		if prev := grid.Rows[idx].Cells[col]; prev.Status != StatusNone {
			log.Warnf("[Billing] duplicate period for member %d column %q: line %d overwrites line %d",
				line.MemberID, col, line.ID, prev.LineID)
		}
		grid.Rows[idx].Cells[col] = GridCell{
			Status:    status,
			LineID:    line.ID,
			PeriodKey: invoicePeriod[line.InvoiceID],
		}
	}

	return grid
}

// BuildCasualSummaries produces the per-session roll-up for casual invoices:
// paid/total counts and a fully-paid flag per invoice. Invoices with every
// line paid sort after outstanding ones; within each group the order is
// ascending by period key, and ties keep their input order.
func BuildCasualSummaries(members []models.Member, invoices []models.Invoice, lines []models.MemberInvoice) []CasualInvoiceSummary {
	names := make(map[uint]string, len(members))
	for _, m := range members {
		names[m.ID] = m.DisplayName()
	}

	linesByInvoice := make(map[uint][]models.MemberInvoice)
	for _, line := range lines {
		linesByInvoice[line.InvoiceID] = append(linesByInvoice[line.InvoiceID], line)
	}

	var summaries []CasualInvoiceSummary
	for _, inv := range invoices {
		if c, err := ParseCadence(inv.Cadence); err != nil || c != CadenceCasual {
			continue
		}

		summary := CasualInvoiceSummary{
			InvoiceID:   inv.ID,
			PeriodKey:   inv.PeriodKey,
			SessionDate: inv.StartDate,
			Label:       PeriodLabel(inv.PeriodKey, CadenceCasual, &inv.StartDate),
		}
		for _, line := range linesByInvoice[inv.ID] {
			summary.Attendees = append(summary.Attendees, CasualAttendee{
				LineID:     line.ID,
				MemberID:   line.MemberID,
				MemberName: names[line.MemberID],
				IsPaid:     line.IsPaid,
			})
			if line.IsPaid {
				summary.PaidCount++
			}
		}
		summary.TotalMembers = len(summary.Attendees)
		summary.FullyPaid = summary.PaidCount == summary.TotalMembers
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].FullyPaid != summaries[j].FullyPaid {
			return !summaries[i].FullyPaid
		}
		return summaries[i].PeriodKey < summaries[j].PeriodKey
	})

	return summaries
}

// PatchGridCell returns a copy of the grid with a single cell flipped to
// paid. It backs the optimistic local update after a mark-as-paid action; the
// patched grid is considered stale and superseded by the next full rebuild.
func PatchGridCell(grid PaymentGrid, memberID uint, column string, lineID uint) PaymentGrid {
	rows := make([]GridRow, len(grid.Rows))
	copy(rows, grid.Rows)
	for i, row := range rows {
		if row.MemberID != memberID {
			continue
		}
		cells := make(map[string]GridCell, len(row.Cells))
		for k, v := range row.Cells {
			cells[k] = v
		}
		cell := cells[column]
		cell.Status = StatusPaid
		cell.LineID = lineID
		cells[column] = cell
		rows[i].Cells = cells
		break
	}
	grid.Rows = rows
	return grid
}
