package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashank2020/samurais-admin/app/models"
)

// expenseRepository implements the ExpenseRepository interface
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create creates a new club expense in the database
func (r *expenseRepository) Create(expense *models.ClubExpense) error {
	return r.db.Create(expense).Error
}

// ListByYear retrieves all expenses dated within a calendar year
func (r *expenseRepository) ListByYear(year int) ([]models.ClubExpense, error) {
	var expenses []models.ClubExpense
	err := r.db.Where("expense_date >= ? AND expense_date < ?",
		fmt.Sprintf("%04d-01-01", year),
		fmt.Sprintf("%04d-01-01", year+1)).
		Order("expense_date ASC").Find(&expenses).Error
	return expenses, err
}

// Delete removes an expense by its ID
func (r *expenseRepository) Delete(id uint) error {
	return r.db.Delete(&models.ClubExpense{}, id).Error
}

// GetYearBalance retrieves the starting balance record for a year.
// A missing record means the year starts from zero, not an error.
func (r *expenseRepository) GetYearBalance(year int) (*models.YearBalance, error) {
	var balance models.YearBalance
	err := r.db.Where("year = ?", year).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.YearBalance{Year: year, StartingBalance: 0}, nil
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// SetYearBalance creates or updates the starting balance for a year
func (r *expenseRepository) SetYearBalance(year int, startingBalance float64) error {
	var balance models.YearBalance
	err := r.db.Where("year = ?", year).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&models.YearBalance{
			Year:            year,
			StartingBalance: startingBalance,
		}).Error
	}
	if err != nil {
		return err
	}

	balance.StartingBalance = startingBalance
	return r.db.Save(&balance).Error
}
