package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ClubExpense is one outgoing payment recorded against the club finances.
type ClubExpense struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(150)" json:"title" validate:"required,min=1,max=150"`
	Amount      float64        `gorm:"type:decimal(10,2)" json:"amount" validate:"gt=0"`
	ExpenseDate time.Time      `gorm:"type:date;index" json:"expense_date"`
	Category    string         `gorm:"type:varchar(100)" json:"category" validate:"max=100"`
	Notes       string         `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (e *ClubExpense) Validate() error {
	v := validator.New()

	return v.Struct(e)
}

// YearBalance seeds the running balance of the monthly finance overview with
// the club's opening balance for a year.
type YearBalance struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Year            int       `gorm:"uniqueIndex" json:"year" validate:"gte=2000,lte=2100"`
	StartingBalance float64   `gorm:"type:decimal(12,2);default:0" json:"starting_balance"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *YearBalance) Validate() error {
	v := validator.New()

	return v.Struct(b)
}
