package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClubSettings holds the single row of club identity data used on invoice
// letterheads and in outgoing mail.
type ClubSettings struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ClubName    string    `gorm:"type:varchar(150)" json:"club_name" validate:"required,min=1,max=150"`
	GSTNumber   string    `gorm:"type:varchar(50)" json:"gst_number" validate:"max=50"`
	Address     string    `gorm:"type:varchar(255)" json:"address" validate:"max=255"`
	Email       string    `gorm:"type:varchar(200)" json:"email" validate:"omitempty,email"`
	Phone       string    `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	BankAccount string    `gorm:"type:varchar(50)" json:"bank_account" validate:"max=50"`
	LogoPath    string    `gorm:"type:varchar(255)" json:"logo_path" validate:"max=255"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *ClubSettings) Validate() error {
	v := validator.New()

	return v.Struct(s)
}

// BeforeCreate assigns a UUID primary key when none is set.
func (s *ClubSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SubscriptionRate is the price of one membership type, with an optional
// subsidised rate for members who can only attend a reduced schedule.
type SubscriptionRate struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	MembershipType string    `gorm:"type:varchar(50);uniqueIndex" json:"membership_type" validate:"required,oneof=casual monthly semiannual annual"`
	Rate           float64   `gorm:"type:decimal(10,2)" json:"rate" validate:"gte=0"`
	SubsidisedRate *float64  `gorm:"type:decimal(10,2);default:null" json:"subsidised_rate"`
	Description    string    `gorm:"type:text" json:"description"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Subsidised returns the subsidised rate, or 0 when none is set.
func (r SubscriptionRate) Subsidised() float64 {
	if r.SubsidisedRate == nil {
		return 0
	}
	return *r.SubsidisedRate
}

func (r *SubscriptionRate) Validate() error {
	v := validator.New()

	return v.Struct(r)
}

// BeforeCreate assigns a UUID primary key when none is set.
func (r *SubscriptionRate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
