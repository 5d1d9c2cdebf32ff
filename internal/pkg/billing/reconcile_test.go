package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashank2020/samurais-admin/app/models"
)

func activeMember(id uint, name, membershipType string) models.Member {
	return models.Member{
		ID:             id,
		GivenName:      name,
		MembershipType: membershipType,
		Status:         models.MEMBER_STATUS_ACTIVE,
	}
}

func TestBuildPaymentGridScenario(t *testing.T) {
	// Three monthly members; invoice for 2026-03 with lines for members 1
	// (paid) and 2 (unpaid); member 3 has no line.
	members := []models.Member{
		activeMember(1, "Alice", "monthly"),
		activeMember(2, "Bob", "monthly"),
		activeMember(3, "Charlie", "monthly"),
	}
	invoices := []models.Invoice{
		{ID: 10, Cadence: "monthly", PeriodKey: "2026-03", StartDate: date(2026, time.March, 1)},
	}
	lines := []models.MemberInvoice{
		{ID: 100, InvoiceID: 10, MemberID: 1, IsPaid: true},
		{ID: 101, InvoiceID: 10, MemberID: 2, IsPaid: false},
	}

	grid := BuildPaymentGrid(members, invoices, lines, CadenceMonthly, 2026)

	require.Len(t, grid.Rows, 3)
	assert.Equal(t, Columns(CadenceMonthly), grid.Columns)

	assert.Equal(t, StatusPaid, grid.Rows[0].Cells["Mar"].Status)
	assert.Equal(t, uint(100), grid.Rows[0].Cells["Mar"].LineID)
	assert.Equal(t, "2026-03", grid.Rows[0].Cells["Mar"].PeriodKey)
	assert.Equal(t, StatusUnpaid, grid.Rows[1].Cells["Mar"].Status)
	assert.Equal(t, StatusNone, grid.Rows[2].Cells["Mar"].Status)

	// Every other column stays none for every member.
	for _, row := range grid.Rows {
		for _, col := range grid.Columns {
			if col == "Mar" {
				continue
			}
			assert.Equal(t, StatusNone, row.Cells[col].Status, "member %d column %s", row.MemberID, col)
		}
	}
}

func TestBuildPaymentGridCompleteness(t *testing.T) {
	members := []models.Member{
		activeMember(1, "Alice", "semiannual"),
		activeMember(2, "Bob", "semiannual"),
	}
	invoices := []models.Invoice{
		{ID: 1, Cadence: "semiannual", PeriodKey: "2026-H1", StartDate: date(2026, time.January, 1)},
		{ID: 2, Cadence: "semiannual", PeriodKey: "2026-H2", StartDate: date(2026, time.July, 1)},
	}
	lines := []models.MemberInvoice{
		{ID: 11, InvoiceID: 1, MemberID: 1, IsPaid: true},
	}

	grid := BuildPaymentGrid(members, invoices, lines, CadenceSemiAnnual, 2026)

	// Exactly one cell per (member, column) pair, defaulting to none.
	require.Len(t, grid.Rows, 2)
	for _, row := range grid.Rows {
		assert.Len(t, row.Cells, 2)
	}
	assert.Equal(t, StatusPaid, grid.Rows[0].Cells["Jan–Jun"].Status)
	assert.Equal(t, StatusNone, grid.Rows[0].Cells["Jul–Dec"].Status)
	assert.Equal(t, StatusNone, grid.Rows[1].Cells["Jan–Jun"].Status)
	assert.Equal(t, StatusNone, grid.Rows[1].Cells["Jul–Dec"].Status)
}

func TestBuildPaymentGridFilters(t *testing.T) {
	members := []models.Member{
		activeMember(1, "Alice", "monthly"),
		activeMember(2, "Bob", "annual"), // other cadence
		{ID: 3, GivenName: "Charlie", MembershipType: "monthly", Status: models.MEMBER_STATUS_PENDING},
	}
	invoices := []models.Invoice{
		{ID: 1, Cadence: "monthly", PeriodKey: "2026-01", StartDate: date(2026, time.January, 1)},
		{ID: 2, Cadence: "monthly", PeriodKey: "2025-12", StartDate: date(2025, time.December, 1)}, // outside year
		{ID: 3, Cadence: "casual", PeriodKey: "2026-01-10", StartDate: date(2026, time.January, 10)},
	}
	lines := []models.MemberInvoice{
		{ID: 10, InvoiceID: 1, MemberID: 1, IsPaid: false},
		{ID: 11, InvoiceID: 2, MemberID: 1, IsPaid: true}, // prior-year line renders nothing
		{ID: 12, InvoiceID: 3, MemberID: 1, IsPaid: true}, // casual line never reaches the grid
	}

	grid := BuildPaymentGrid(members, invoices, lines, CadenceMonthly, 2026)

	require.Len(t, grid.Rows, 1)
	assert.Equal(t, uint(1), grid.Rows[0].MemberID)
	assert.Equal(t, StatusUnpaid, grid.Rows[0].Cells["Jan"].Status)
	assert.Equal(t, StatusNone, grid.Rows[0].Cells["Dec"].Status)
}

func TestBuildPaymentGridDuplicateTakesLast(t *testing.T) {
	// Two invoices with the same period key is a broken uniqueness invariant
	// upstream; the defined fallback is last record wins.
	members := []models.Member{activeMember(1, "Alice", "monthly")}
	invoices := []models.Invoice{
		{ID: 1, Cadence: "monthly", PeriodKey: "2026-05", StartDate: date(2026, time.May, 1)},
		{ID: 2, Cadence: "monthly", PeriodKey: "2026-05", StartDate: date(2026, time.May, 1)},
	}
	lines := []models.MemberInvoice{
		{ID: 10, InvoiceID: 1, MemberID: 1, IsPaid: false},
		{ID: 11, InvoiceID: 2, MemberID: 1, IsPaid: true},
	}

	grid := BuildPaymentGrid(members, invoices, lines, CadenceMonthly, 2026)

	require.Len(t, grid.Rows, 1)
	assert.Equal(t, StatusPaid, grid.Rows[0].Cells["May"].Status)
	assert.Equal(t, uint(11), grid.Rows[0].Cells["May"].LineID)
}

func TestBuildCasualSummaries(t *testing.T) {
	members := []models.Member{
		activeMember(1, "Alice", "casual"),
		activeMember(2, "Bob", "casual"),
	}
	invoices := []models.Invoice{
		{ID: 1, Cadence: "casual", PeriodKey: "2026-02-14", StartDate: date(2026, time.February, 14)},
		{ID: 2, Cadence: "casual", PeriodKey: "2026-01-10", StartDate: date(2026, time.January, 10)},
		{ID: 3, Cadence: "monthly", PeriodKey: "2026-01", StartDate: date(2026, time.January, 1)},
	}
	lines := []models.MemberInvoice{
		{ID: 10, InvoiceID: 1, MemberID: 1, IsPaid: true},
		{ID: 11, InvoiceID: 1, MemberID: 2, IsPaid: true},
		{ID: 12, InvoiceID: 2, MemberID: 1, IsPaid: true},
		{ID: 13, InvoiceID: 2, MemberID: 2, IsPaid: false},
	}

	summaries := BuildCasualSummaries(members, invoices, lines)

	// Fully paid 2026-02-14 sorts after outstanding 2026-01-10; the monthly
	// invoice never appears.
	require.Len(t, summaries, 2)
	assert.Equal(t, "2026-01-10", summaries[0].PeriodKey)
	assert.False(t, summaries[0].FullyPaid)
	assert.Equal(t, 1, summaries[0].PaidCount)
	assert.Equal(t, 2, summaries[0].TotalMembers)

	assert.Equal(t, "2026-02-14", summaries[1].PeriodKey)
	assert.True(t, summaries[1].FullyPaid)
	assert.Equal(t, "Session on 14 Feb 2026", summaries[1].Label)
	assert.Equal(t, "Alice", summaries[1].Attendees[0].MemberName)
}

func TestBuildCasualSummariesSortStability(t *testing.T) {
	invoices := []models.Invoice{
		{ID: 1, Cadence: "casual", PeriodKey: "2026-03-01", StartDate: date(2026, time.March, 1)},
		{ID: 2, Cadence: "casual", PeriodKey: "2026-01-05", StartDate: date(2026, time.January, 5)},
		{ID: 3, Cadence: "casual", PeriodKey: "2026-02-01", StartDate: date(2026, time.February, 1)},
	}
	lines := []models.MemberInvoice{
		{ID: 10, InvoiceID: 1, MemberID: 1, IsPaid: false},
		{ID: 11, InvoiceID: 2, MemberID: 1, IsPaid: true},
		{ID: 12, InvoiceID: 3, MemberID: 1, IsPaid: false},
	}

	summaries := BuildCasualSummaries([]models.Member{activeMember(1, "Alice", "casual")}, invoices, lines)

	require.Len(t, summaries, 3)
	assert.Equal(t, "2026-02-01", summaries[0].PeriodKey) // outstanding, earliest
	assert.Equal(t, "2026-03-01", summaries[1].PeriodKey) // outstanding
	assert.Equal(t, "2026-01-05", summaries[2].PeriodKey) // fully paid sorts last
}

func TestPatchGridCell(t *testing.T) {
	members := []models.Member{
		activeMember(1, "Alice", "monthly"),
		activeMember(2, "Bob", "monthly"),
	}
	invoices := []models.Invoice{
		{ID: 1, Cadence: "monthly", PeriodKey: "2026-04", StartDate: date(2026, time.April, 1)},
	}
	lines := []models.MemberInvoice{
		{ID: 10, InvoiceID: 1, MemberID: 1, IsPaid: false},
		{ID: 11, InvoiceID: 1, MemberID: 2, IsPaid: false},
	}

	grid := BuildPaymentGrid(members, invoices, lines, CadenceMonthly, 2026)
	patched := PatchGridCell(grid, 1, "Apr", 10)

	assert.Equal(t, StatusPaid, patched.Rows[0].Cells["Apr"].Status)
	assert.Equal(t, StatusUnpaid, patched.Rows[1].Cells["Apr"].Status)
	// The source grid is untouched; the patch is a superseded-on-refresh copy.
	assert.Equal(t, StatusUnpaid, grid.Rows[0].Cells["Apr"].Status)
}
