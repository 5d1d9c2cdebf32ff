package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	MEMBER_STATUS_ACTIVE   = "active"
	MEMBER_STATUS_INACTIVE = "inactive"
	MEMBER_STATUS_PENDING  = "pending"
)

// Member is one club member record.
type Member struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	GivenName      string         `gorm:"type:varchar(150)" json:"given_name" validate:"required,min=1,max=150"`
	PreferredName  string         `gorm:"type:varchar(150)" json:"preferred_name" validate:"max=150"`
	Email          string         `gorm:"type:varchar(200);index" json:"email" validate:"required,email,min=5,max=200"`
	Mobile         string         `gorm:"type:varchar(30)" json:"mobile" validate:"max=30"`
	Address        string         `gorm:"type:varchar(255)" json:"address" validate:"max=255"`
	MembershipType string         `gorm:"type:varchar(50)" json:"membership_type" validate:"required,oneof=casual monthly semiannual annual"`
	Status         string         `gorm:"type:varchar(50);default:'pending';index" json:"status" validate:"oneof=active inactive pending"`
	JoinedAt       *time.Time     `gorm:"type:timestamp;default:null" json:"joined_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Member) Validate() error {
	v := validator.New()

	return v.Struct(m)
}

// DisplayName prefers the preferred name over the given name.
func (m Member) DisplayName() string {
	if m.PreferredName != "" {
		return m.PreferredName
	}
	return m.GivenName
}

// IsActive reports whether the member status is active.
func (m Member) IsActive() bool {
	return m.Status == MEMBER_STATUS_ACTIVE
}
