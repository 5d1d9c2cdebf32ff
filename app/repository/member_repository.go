package repository

import (
	"gorm.io/gorm"

	"github.com/shashank2020/samurais-admin/app/models"
)

// memberRepository implements the MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository instance
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member in the database
func (r *memberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// GetByID retrieves a member by its ID
func (r *memberRepository) GetByID(id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByEmail retrieves a member by email address
func (r *memberRepository) GetByEmail(email string) (*models.Member, error) {
	var member models.Member
	err := r.db.Where("email = ?", email).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByIDs retrieves the members matching the given IDs
func (r *memberRepository) GetByIDs(ids []uint) ([]models.Member, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var members []models.Member
	err := r.db.Where("id IN ?", ids).Find(&members).Error
	return members, err
}

// Update updates an existing member in the database
func (r *memberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}

// Delete soft deletes a member by its ID
func (r *memberRepository) Delete(id uint) error {
	return r.db.Delete(&models.Member{}, id).Error
}

// ListByStatus retrieves all members with the given status
func (r *memberRepository) ListByStatus(status string) ([]models.Member, error) {
	var members []models.Member
	err := r.db.Where("status = ?", status).
		Order("given_name ASC").Find(&members).Error
	return members, err
}

// ListActiveByCadence retrieves active members billed on the given cadence
func (r *memberRepository) ListActiveByCadence(cadence string) ([]models.Member, error) {
	var members []models.Member
	err := r.db.Where("status = ? AND membership_type = ?", models.MEMBER_STATUS_ACTIVE, cadence).
		Order("given_name ASC").Find(&members).Error
	return members, err
}

// ListAll retrieves every non-deleted member
func (r *memberRepository) ListAll() ([]models.Member, error) {
	var members []models.Member
	err := r.db.Order("given_name ASC").Find(&members).Error
	return members, err
}

// Search finds members by name or email
func (r *memberRepository) Search(query string) ([]models.Member, error) {
	var members []models.Member
	searchTerm := "%" + query + "%"
	err := r.db.Where("given_name LIKE ? OR preferred_name LIKE ? OR email LIKE ?",
		searchTerm, searchTerm, searchTerm).
		Order("given_name ASC").Find(&members).Error
	return members, err
}

// Count returns the total number of members
func (r *memberRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Member{}).Count(&count).Error
	return count, err
}
