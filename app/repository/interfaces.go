package repository

import (
	"gorm.io/gorm"

	"github.com/shashank2020/samurais-admin/app/models"
)

// UserRepository defines the interface for admin user database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// MemberRepository defines the interface for member-related database operations
type MemberRepository interface {
	Create(member *models.Member) error
	GetByID(id uint) (*models.Member, error)
	GetByEmail(email string) (*models.Member, error)
	GetByIDs(ids []uint) ([]models.Member, error)
	Update(member *models.Member) error
	Delete(id uint) error
	ListByStatus(status string) ([]models.Member, error)
	ListActiveByCadence(cadence string) ([]models.Member, error)
	ListAll() ([]models.Member, error)
	Search(query string) ([]models.Member, error)
	Count() (int64, error)
}

// InvoiceRepository defines the interface for invoice cycle operations.
// An invoice cycle is the invoice header plus one member line per billed
// member; CreateCycle persists both atomically.
type InvoiceRepository interface {
	CreateCycle(invoice *models.Invoice, lines []models.MemberInvoice) (uint, error)
	GetByID(id uint) (*models.Invoice, error)
	ListByCadence(cadence string) ([]models.Invoice, error)
	ListByCadenceAndYear(cadence string, year int) ([]models.Invoice, error)
	LinesForInvoices(invoiceIDs []uint) ([]models.MemberInvoice, error)
	GetLine(lineID uint) (*models.MemberInvoice, error)
	MarkLinePaid(lineID uint) error
	MarkNotified(invoiceID uint) error
	SetPublicURL(invoiceID uint, url string) error
	ExistingPeriodKeys(cadence string) ([]string, error)
	Delete(id uint) error
}

// ExpenseRepository defines the interface for club expense and year
// balance operations backing the finance reports
type ExpenseRepository interface {
	Create(expense *models.ClubExpense) error
	ListByYear(year int) ([]models.ClubExpense, error)
	Delete(id uint) error
	GetYearBalance(year int) (*models.YearBalance, error)
	SetYearBalance(year int, startingBalance float64) error
}

// SettingsRepository defines the interface for club settings and
// subscription rates
type SettingsRepository interface {
	GetClubSettings() (*models.ClubSettings, error)
	SaveClubSettings(settings *models.ClubSettings) error
	ListRates() ([]models.SubscriptionRate, error)
	GetRateForType(membershipType string) (*models.SubscriptionRate, error)
	SaveRate(rate *models.SubscriptionRate) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User     UserRepository
	Member   MemberRepository
	Invoice  InvoiceRepository
	Expense  ExpenseRepository
	Settings SettingsRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Member:   NewMemberRepository(db),
		Invoice:  NewInvoiceRepository(db),
		Expense:  NewExpenseRepository(db),
		Settings: NewSettingsRepository(db),
	}
}
