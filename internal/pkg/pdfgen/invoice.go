package pdfgen

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/shashank2020/samurais-admin/app/models"
	"github.com/shashank2020/samurais-admin/internal/pkg/billing"
)

// LineItem is a single row in the invoice table
type LineItem struct {
	Quantity    int
	Description string
	UnitPrice   float64
}

// Document holds everything needed to render an invoice PDF.
// It is assembled from club settings and the invoice cycle so the
// renderer itself stays free of database access.
type Document struct {
	ClubName    string
	GSTNumber   string
	Address     []string
	Email       string
	Phone       string
	BankAccount string

	Term  string // e.g. "March 2026" or "Session on 9 May 2026"
	Date  string // issue date shown on the invoice
	Items []LineItem
}

// Subtotal sums quantity times unit price over all line items
func (d Document) Subtotal() float64 {
	var total float64
	for _, item := range d.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// BuildLineItems groups the member lines of an invoice by charged amount.
// Members billed the same amount collapse into one row; a matching
// subscription rate supplies the description, otherwise the cadence name.
func BuildLineItems(invoice models.Invoice, rates []models.SubscriptionRate) []LineItem {
	counts := make(map[float64]int)
	for _, line := range invoice.MemberInvoices {
		counts[line.Amount]++
	}

	amounts := make([]float64, 0, len(counts))
	for amount := range counts {
		amounts = append(amounts, amount)
	}
	sort.Float64s(amounts)

	cadence, err := billing.ParseCadence(invoice.Cadence)
	fallback := "Membership"
	if err == nil {
		fallback = cadence.DisplayName() + " membership"
	}

	items := make([]LineItem, 0, len(amounts))
	for _, amount := range amounts {
		desc := fallback
		for _, rate := range rates {
			if rate.MembershipType != invoice.Cadence {
				continue
			}
			if rate.Rate == amount && rate.Description != "" {
				desc = rate.Description
			}
			if rate.SubsidisedRate != nil && *rate.SubsidisedRate == amount {
				desc = fallback + " (subsidised)"
				if rate.Description != "" {
					desc = rate.Description + " (subsidised)"
				}
			}
		}
		items = append(items, LineItem{
			Quantity:    counts[amount],
			Description: desc,
			UnitPrice:   amount,
		})
	}

	return items
}

// BuildDocument assembles the printable invoice from club settings and
// the invoice cycle.
func BuildDocument(settings models.ClubSettings, invoice models.Invoice, rates []models.SubscriptionRate) Document {
	cadence, _ := billing.ParseCadence(invoice.Cadence)
	term := billing.PeriodLabel(invoice.PeriodKey, cadence, &invoice.StartDate)

	var address []string
	for _, line := range strings.Split(settings.Address, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			address = append(address, line)
		}
	}

	return Document{
		ClubName:    settings.ClubName,
		GSTNumber:   settings.GSTNumber,
		Address:     address,
		Email:       settings.Email,
		Phone:       settings.Phone,
		BankAccount: settings.BankAccount,
		Term:        term,
		Date:        invoice.StartDate.Format("2 Jan 2006"),
		Items:       BuildLineItems(invoice, rates),
	}
}

const (
	colQuantity    = 35.0
	colDescription = 105.0
	colUnitPrice   = 40.0
	rowHeight      = 9.0
)

// Render produces the invoice PDF bytes. Layout is a club letterhead,
// a Tax Invoice title, the billing term and date, a line item table
// and a bank account payment footer.
func Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Letterhead: legal name and GST left, contact block right
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	headerLeft := doc.ClubName
	if doc.GSTNumber != "" {
		headerLeft = fmt.Sprintf("%s Inc. %s", doc.ClubName, doc.GSTNumber)
	}
	top := pdf.GetY()
	pdf.CellFormat(100, 6, headerLeft, "", 0, "L", false, 0, "")

	pdf.SetXY(115, top)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(46, 92, 129)
	pdf.CellFormat(80, 5, doc.ClubName, "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(68, 85, 102)
	for _, line := range doc.Address {
		pdf.CellFormat(80, 4, line, "", 2, "R", false, 0, "")
	}
	if doc.Email != "" {
		pdf.CellFormat(80, 4, doc.Email, "", 2, "R", false, 0, "")
	}
	if doc.Phone != "" {
		pdf.CellFormat(80, 4, doc.Phone, "", 2, "R", false, 0, "")
	}

	pdf.SetXY(15, pdf.GetY()+4)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Tax Invoice", "", 1, "L", false, 0, "")

	// Divider
	pdf.SetDrawColor(136, 136, 136)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(46, 92, 129)
	pdf.CellFormat(0, 6, "Invoice Term:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, doc.Term, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(46, 92, 129)
	pdf.CellFormat(0, 6, "Date:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, doc.Date, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice for %s Membership:", doc.ClubName), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Table header
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(46, 92, 129)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(221, 221, 221)
	pdf.CellFormat(colQuantity, rowHeight, "Quantity", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colDescription, rowHeight, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colUnitPrice, rowHeight, "Unit Price", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, item := range doc.Items {
		pdf.CellFormat(colQuantity, rowHeight, fmt.Sprintf("%d", item.Quantity), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colDescription, rowHeight, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colUnitPrice, rowHeight, formatAmount(item.UnitPrice), "1", 1, "R", false, 0, "")
	}

	// Empty rows keep the table visually balanced for short invoices
	for i := 0; i < 4; i++ {
		pdf.CellFormat(colQuantity, rowHeight, "", "1", 0, "L", false, 0, "")
		pdf.CellFormat(colDescription, rowHeight, "", "1", 0, "L", false, 0, "")
		pdf.CellFormat(colUnitPrice, rowHeight, "", "1", 1, "R", false, 0, "")
	}

	subtotal := doc.Subtotal()
	pdf.CellFormat(colQuantity, rowHeight, "", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colDescription, rowHeight, "Subtotal", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colUnitPrice, rowHeight, formatAmount(subtotal), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colQuantity, rowHeight, "", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colDescription, rowHeight, "Total:", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colUnitPrice, rowHeight, formatAmount(subtotal), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Please pay the amount to the bank account number below:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5, doc.BankAccount, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func formatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
