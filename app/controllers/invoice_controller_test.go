package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashank2020/samurais-admin/app/models"
	"github.com/shashank2020/samurais-admin/internal/pkg/billing"
)

func TestBuildInvoiceCards(t *testing.T) {
	invoices := []models.Invoice{
		{
			ID:        3,
			Cadence:   "casual",
			PeriodKey: "2026-05-09",
			StartDate: time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC),
			MemberInvoices: []models.MemberInvoice{
				{ID: 1, InvoiceID: 3, MemberID: 1, Amount: 10, IsPaid: true, IsNotified: true},
				{ID: 2, InvoiceID: 3, MemberID: 2, Amount: 10, IsNotified: true},
			},
		},
		{
			ID:        4,
			Cadence:   "casual",
			PeriodKey: "2026-06-13",
			StartDate: time.Date(2026, 6, 13, 0, 0, 0, 0, time.UTC),
		},
	}

	cards := buildInvoiceCards(invoices, billing.CadenceCasual)
	require.Len(t, cards, 2)

	// Each casual card is labelled with its own session date.
	assert.Equal(t, "Session on 9 May 2026", cards[0].Label)
	assert.Equal(t, "Session on 13 Jun 2026", cards[1].Label)

	assert.Equal(t, 1, cards[0].PaidCount)
	assert.Equal(t, 2, cards[0].TotalLines)
	assert.True(t, cards[0].Notified)

	// An invoice with no lines has nothing sent yet.
	assert.False(t, cards[1].Notified)
}

func TestBuildInvoiceCardsMonthlyLabel(t *testing.T) {
	invoices := []models.Invoice{
		{
			ID:        5,
			Cadence:   "monthly",
			PeriodKey: "2026-03",
			StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	cards := buildInvoiceCards(invoices, billing.CadenceMonthly)
	require.Len(t, cards, 1)
	assert.Equal(t, "March 2026", cards[0].Label)
}
