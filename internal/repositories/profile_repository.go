package repositories

import (
	"errors"

	"quickfiss/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	GetClientByUserID(userID uint) (*models.ClientProfile, error)
	GetArtisanByUserID(userID uint) (*models.ArtisanProfile, error)
	GetArtisanByID(id uint) (*models.ArtisanProfile, error)
	EnsureClient(userID uint) (*models.ClientProfile, error)
	EnsureArtisan(userID uint) (*models.ArtisanProfile, error)
	DeleteClient(userID uint) error
	DeleteArtisan(userID uint) error
	UpdateClient(profile *models.ClientProfile) error
	UpdateArtisan(profile *models.ArtisanProfile) error
	ReplacePreferredCategories(profile *models.ClientProfile, categories []models.Category) error
	ReplaceFollowedTags(profile *models.ClientProfile, tags []models.Tag) error
	ReplaceOfferedServices(profile *models.ArtisanProfile, services []models.Service) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetClientByUserID(userID uint) (*models.ClientProfile, error) {
	var profile models.ClientProfile
	result := r.db.Preload("PreferredCategories").Preload("FollowedTags").
		Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &profile, nil
}

func (r *profileRepository) GetArtisanByUserID(userID uint) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	result := r.db.Preload("OfferedServices").
		Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &profile, nil
}

func (r *profileRepository) GetArtisanByID(id uint) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	result := r.db.First(&profile, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &profile, nil
}

// EnsureClient fetches the client profile for a user, creating an empty
// one when none exists yet.
func (r *profileRepository) EnsureClient(userID uint) (*models.ClientProfile, error) {
	var profile models.ClientProfile
	result := r.db.Where(models.ClientProfile{UserID: userID}).FirstOrCreate(&profile)
	if result.Error != nil {
		return nil, ErrDatabaseOperation
	}
	return &profile, nil
}

func (r *profileRepository) EnsureArtisan(userID uint) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	result := r.db.Where(models.ArtisanProfile{UserID: userID}).FirstOrCreate(&profile)
	if result.Error != nil {
		return nil, ErrDatabaseOperation
	}
	return &profile, nil
}

// Deletes are hard deletes: a soft-deleted row would keep holding the
// unique user_id slot and block re-creation after a role flip back.
func (r *profileRepository) DeleteClient(userID uint) error {
	result := r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.ClientProfile{})
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *profileRepository) DeleteArtisan(userID uint) error {
	result := r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.ArtisanProfile{})
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *profileRepository) UpdateClient(profile *models.ClientProfile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *profileRepository) UpdateArtisan(profile *models.ArtisanProfile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *profileRepository) ReplacePreferredCategories(profile *models.ClientProfile, categories []models.Category) error {
	if err := r.db.Model(profile).Association("PreferredCategories").Replace(categories); err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *profileRepository) ReplaceFollowedTags(profile *models.ClientProfile, tags []models.Tag) error {
	if err := r.db.Model(profile).Association("FollowedTags").Replace(tags); err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *profileRepository) ReplaceOfferedServices(profile *models.ArtisanProfile, services []models.Service) error {
	if err := r.db.Model(profile).Association("OfferedServices").Replace(services); err != nil {
		return ErrDatabaseOperation
	}
	return nil
}
