package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Invoice is one billing cycle issued to a set of members. The period key is
// computed from the cadence and start date (internal/pkg/billing) and the end
// date is derived, never hand-entered. Invoices are not updated once payment
// lines exist against them; the only mutable field is the public URL of the
// generated PDF.
type Invoice struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Cadence        string         `gorm:"type:varchar(50);index" json:"cadence" validate:"required,oneof=casual monthly semiannual annual"`
	PeriodKey      string         `gorm:"type:varchar(20);index" json:"period_key" validate:"required,max=20"`
	StartDate      time.Time      `gorm:"type:date" json:"start_date"`
	DueDate        time.Time      `gorm:"type:date" json:"due_date"`
	PublicURL      *string        `gorm:"type:varchar(255);default:null" json:"public_url"`
	MemberInvoices []MemberInvoice `gorm:"foreignKey:InvoiceID" json:"-"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Invoice) Validate() error {
	v := validator.New()

	return v.Struct(i)
}

// MemberInvoice is the per-member record of obligation/payment against one
// invoice: one row per (member, invoice) pair, created at issuance time.
// IsPaid flips exactly once (false->true) via the mark-as-paid action; there
// is no reversal path.
type MemberInvoice struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	InvoiceID  uint           `gorm:"index;uniqueIndex:ux_member_invoice,priority:1" json:"invoice_id"`
	MemberID   uint           `gorm:"index;uniqueIndex:ux_member_invoice,priority:2" json:"member_id"`
	Amount     float64        `gorm:"type:decimal(10,2);default:0" json:"amount"`
	IsPaid     bool           `gorm:"default:false;index" json:"is_paid"`
	IsNotified bool           `gorm:"default:false" json:"is_notified"`
	DatePaid   *time.Time     `gorm:"type:timestamp;default:null" json:"date_paid"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
