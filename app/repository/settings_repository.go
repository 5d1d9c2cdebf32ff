package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashank2020/samurais-admin/app/models"
)

// settingsRepository implements the SettingsRepository interface
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository instance
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetClubSettings retrieves the single club settings row, creating an
// empty one on first access
func (r *settingsRepository) GetClubSettings() (*models.ClubSettings, error) {
	var settings models.ClubSettings
	err := r.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.ClubSettings{}
		if err := r.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveClubSettings updates the club settings row
func (r *settingsRepository) SaveClubSettings(settings *models.ClubSettings) error {
	return r.db.Save(settings).Error
}

// ListRates retrieves all subscription rates
func (r *settingsRepository) ListRates() ([]models.SubscriptionRate, error) {
	var rates []models.SubscriptionRate
	err := r.db.Order("membership_type ASC").Find(&rates).Error
	return rates, err
}

// GetRateForType retrieves the subscription rate for a membership type
func (r *settingsRepository) GetRateForType(membershipType string) (*models.SubscriptionRate, error) {
	var rate models.SubscriptionRate
	err := r.db.Where("membership_type = ?", membershipType).First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// SaveRate creates or updates the rate for a membership type
func (r *settingsRepository) SaveRate(rate *models.SubscriptionRate) error {
	var existing models.SubscriptionRate
	err := r.db.Where("membership_type = ?", rate.MembershipType).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(rate).Error
	}
	if err != nil {
		return err
	}

	existing.Rate = rate.Rate
	existing.SubsidisedRate = rate.SubsidisedRate
	existing.Description = rate.Description
	return r.db.Save(&existing).Error
}
