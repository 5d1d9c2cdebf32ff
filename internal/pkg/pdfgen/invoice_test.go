package pdfgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashank2020/samurais-admin/app/models"
)

func monthlyInvoice() models.Invoice {
	return models.Invoice{
		ID:        12,
		Cadence:   "monthly",
		PeriodKey: "2026-03",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		MemberInvoices: []models.MemberInvoice{
			{ID: 1, InvoiceID: 12, MemberID: 1, Amount: 45},
			{ID: 2, InvoiceID: 12, MemberID: 2, Amount: 45},
			{ID: 3, InvoiceID: 12, MemberID: 3, Amount: 30},
		},
	}
}

func TestBuildLineItemsGroupsByAmount(t *testing.T) {
	subsidised := 30.0
	rates := []models.SubscriptionRate{
		{MembershipType: "monthly", Rate: 45, SubsidisedRate: &subsidised, Description: "Monthly club membership"},
		{MembershipType: "annual", Rate: 400, Description: "Annual club membership"},
	}

	items := BuildLineItems(monthlyInvoice(), rates)
	require.Len(t, items, 2)

	// Sorted ascending by amount
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 30.0, items[0].UnitPrice)
	assert.Equal(t, "Monthly club membership (subsidised)", items[0].Description)

	assert.Equal(t, 2, items[1].Quantity)
	assert.Equal(t, 45.0, items[1].UnitPrice)
	assert.Equal(t, "Monthly club membership", items[1].Description)
}

func TestBuildLineItemsFallbackDescription(t *testing.T) {
	items := BuildLineItems(monthlyInvoice(), nil)
	require.Len(t, items, 2)
	assert.Equal(t, "Monthly membership", items[0].Description)
}

func TestBuildDocument(t *testing.T) {
	settings := models.ClubSettings{
		ClubName:    "Samurais Volleyball",
		GSTNumber:   "142-899-558",
		Address:     "13 Kopiko Way, Brooklyn\nWellington 6021",
		Email:       "samuraisvolleyball@gmail.com",
		Phone:       "021 268 5727",
		BankAccount: "12-3456-7890123-00",
	}

	doc := BuildDocument(settings, monthlyInvoice(), nil)

	assert.Equal(t, "March 2026", doc.Term)
	assert.Equal(t, "1 Mar 2026", doc.Date)
	assert.Equal(t, []string{"13 Kopiko Way, Brooklyn", "Wellington 6021"}, doc.Address)
	assert.InDelta(t, 120.0, doc.Subtotal(), 0.001)
}

func TestBuildDocumentCasualTerm(t *testing.T) {
	invoice := models.Invoice{
		ID:        7,
		Cadence:   "casual",
		PeriodKey: "2026-05-09",
		StartDate: time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC),
		MemberInvoices: []models.MemberInvoice{
			{ID: 1, InvoiceID: 7, MemberID: 1, Amount: 10},
		},
	}

	doc := BuildDocument(models.ClubSettings{ClubName: "Samurais Volleyball"}, invoice, nil)

	// Casual invoices name the session date, not a generic label.
	assert.Equal(t, "Session on 9 May 2026", doc.Term)
}

func TestRenderProducesPDF(t *testing.T) {
	settings := models.ClubSettings{
		ClubName:    "Samurais Volleyball",
		BankAccount: "12-3456-7890123-00",
	}
	doc := BuildDocument(settings, monthlyInvoice(), nil)

	pdf, err := Render(doc)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
