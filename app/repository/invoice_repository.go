package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/shashank2020/samurais-admin/app/models"
)

// invoiceRepository implements the InvoiceRepository interface
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

// CreateCycle persists an invoice header and its member lines in a single
// transaction and returns the new invoice ID. If any line fails the whole
// cycle rolls back so no half-created invoices exist.
func (r *invoiceRepository) CreateCycle(invoice *models.Invoice, lines []models.MemberInvoice) (uint, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		for i := range lines {
			lines[i].InvoiceID = invoice.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return fmt.Errorf("failed to create member invoice lines: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return invoice.ID, nil
}

// GetByID retrieves an invoice with its member lines
func (r *invoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Preload("MemberInvoices").First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListByCadence retrieves all invoices of a cadence, newest first
func (r *invoiceRepository) ListByCadence(cadence string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Where("cadence = ?", cadence).
		Preload("MemberInvoices").
		Order("start_date DESC").Find(&invoices).Error
	return invoices, err
}

// ListByCadenceAndYear retrieves the invoices of a cadence whose start
// date falls in the given calendar year
func (r *invoiceRepository) ListByCadenceAndYear(cadence string, year int) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Where("cadence = ? AND start_date >= ? AND start_date < ?",
		cadence,
		fmt.Sprintf("%04d-01-01", year),
		fmt.Sprintf("%04d-01-01", year+1)).
		Preload("MemberInvoices").
		Order("start_date ASC").Find(&invoices).Error
	return invoices, err
}

// LinesForInvoices retrieves all member lines belonging to the given invoices
func (r *invoiceRepository) LinesForInvoices(invoiceIDs []uint) ([]models.MemberInvoice, error) {
	if len(invoiceIDs) == 0 {
		return nil, nil
	}
	var lines []models.MemberInvoice
	err := r.db.Where("invoice_id IN ?", invoiceIDs).Find(&lines).Error
	return lines, err
}

// GetLine retrieves a single member invoice line
func (r *invoiceRepository) GetLine(lineID uint) (*models.MemberInvoice, error) {
	var line models.MemberInvoice
	err := r.db.First(&line, lineID).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// MarkLinePaid marks a member line paid and stamps the payment date.
// Re-marking an already paid line just refreshes the stamp.
func (r *invoiceRepository) MarkLinePaid(lineID uint) error {
	return r.db.Model(&models.MemberInvoice{}).Where("id = ?", lineID).
		Updates(map[string]interface{}{
			"is_paid":   true,
			"date_paid": gorm.Expr("NOW()"),
		}).Error
}

// MarkNotified flags every line of an invoice as emailed
func (r *invoiceRepository) MarkNotified(invoiceID uint) error {
	return r.db.Model(&models.MemberInvoice{}).Where("invoice_id = ?", invoiceID).
		Update("is_notified", true).Error
}

// SetPublicURL stores the public PDF link on the invoice header
func (r *invoiceRepository) SetPublicURL(invoiceID uint, url string) error {
	return r.db.Model(&models.Invoice{}).Where("id = ?", invoiceID).
		Update("public_url", url).Error
}

// ExistingPeriodKeys returns the distinct period keys already invoiced
// for a cadence. Used to soft-warn about duplicate billing periods.
func (r *invoiceRepository) ExistingPeriodKeys(cadence string) ([]string, error) {
	var keys []string
	err := r.db.Model(&models.Invoice{}).
		Where("cadence = ?", cadence).
		Distinct().Pluck("period_key", &keys).Error
	return keys, err
}

// Delete removes an invoice and its member lines
func (r *invoiceRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.MemberInvoice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, id).Error
	})
}
