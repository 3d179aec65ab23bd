// Package profile keeps the role-specific profile tables consistent
// with each user's role and owns the onboarding updates that fill them.
package profile

import (
	"time"

	"quickfiss/internal/apperrors"
	"quickfiss/internal/models"
	"quickfiss/internal/repositories"
)

type ClientOnboardingInput struct {
	FullName             string
	DateOfBirth          *time.Time
	Country              string
	State                string
	PreferredCategoryIDs []uint
	FollowedTagIDs       []uint
}

type ArtisanKYCInput struct {
	FullName    string
	DateOfBirth *time.Time
	Country     string
	State       string
	Profession  string
	Experience  string
	About       string
}

type ArtisanCustomizationInput struct {
	OfferedServiceIDs []uint
}

type Service interface {
	Sync(user *models.User) error
	GetClientProfile(userID uint) (*models.ClientProfile, error)
	GetArtisanProfile(userID uint) (*models.ArtisanProfile, error)
	UpdateClientOnboarding(userID uint, input ClientOnboardingInput) (*models.ClientProfile, error)
	UpdateArtisanKYC(userID uint, input ArtisanKYCInput) (*models.ArtisanProfile, error)
	CustomizeArtisan(userID uint, input ArtisanCustomizationInput) (*models.ArtisanProfile, error)
}

type service struct {
	profiles repositories.ProfileRepository
	catalog  repositories.CatalogRepository
}

func NewService(profiles repositories.ProfileRepository, catalog repositories.CatalogRepository) Service {
	return &service{
		profiles: profiles,
		catalog:  catalog,
	}
}

// Sync converges the profile tables onto the user's current role:
// exactly one profile for a client or artisan, none for an unassigned
// account. It is idempotent, so every account mutation path can call it
// unconditionally.
func (s *service) Sync(user *models.User) error {
	switch user.Role {
	case models.RoleClient:
		if _, err := s.profiles.EnsureClient(user.ID); err != nil {
			return err
		}
		return s.profiles.DeleteArtisan(user.ID)
	case models.RoleArtisan:
		if _, err := s.profiles.EnsureArtisan(user.ID); err != nil {
			return err
		}
		return s.profiles.DeleteClient(user.ID)
	default:
		if err := s.profiles.DeleteClient(user.ID); err != nil {
			return err
		}
		return s.profiles.DeleteArtisan(user.ID)
	}
}

func (s *service) GetClientProfile(userID uint) (*models.ClientProfile, error) {
	profile, err := s.profiles.GetClientByUserID(userID)
	if err == repositories.ErrProfileNotFound {
		return nil, apperrors.NotFound("Profile not found")
	}
	return profile, err
}

func (s *service) GetArtisanProfile(userID uint) (*models.ArtisanProfile, error) {
	profile, err := s.profiles.GetArtisanByUserID(userID)
	if err == repositories.ErrProfileNotFound {
		return nil, apperrors.NotFound("Profile not found")
	}
	return profile, err
}

// UpdateClientOnboarding applies a partial update: zero-valued fields
// leave the stored value untouched.
func (s *service) UpdateClientOnboarding(userID uint, input ClientOnboardingInput) (*models.ClientProfile, error) {
	profile, err := s.GetClientProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		profile.FullName = input.FullName
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = input.DateOfBirth
	}
	if input.Country != "" {
		profile.Country = input.Country
	}
	if input.State != "" {
		profile.State = input.State
	}

	if err := s.profiles.UpdateClient(profile); err != nil {
		return nil, err
	}

	if input.PreferredCategoryIDs != nil {
		categories, err := s.catalog.GetCategoriesByIDs(input.PreferredCategoryIDs)
		if err != nil {
			return nil, err
		}
		if err := s.profiles.ReplacePreferredCategories(profile, categories); err != nil {
			return nil, err
		}
	}
	if input.FollowedTagIDs != nil {
		tags, err := s.catalog.GetTagsByIDs(input.FollowedTagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.profiles.ReplaceFollowedTags(profile, tags); err != nil {
			return nil, err
		}
	}

	return s.GetClientProfile(userID)
}

func (s *service) UpdateArtisanKYC(userID uint, input ArtisanKYCInput) (*models.ArtisanProfile, error) {
	profile, err := s.GetArtisanProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		profile.FullName = input.FullName
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = input.DateOfBirth
	}
	if input.Country != "" {
		profile.Country = input.Country
	}
	if input.State != "" {
		profile.State = input.State
	}
	if input.Profession != "" {
		profile.Profession = input.Profession
	}
	if input.Experience != "" {
		profile.Experience = input.Experience
	}
	if input.About != "" {
		profile.About = input.About
	}

	if err := s.profiles.UpdateArtisan(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) CustomizeArtisan(userID uint, input ArtisanCustomizationInput) (*models.ArtisanProfile, error) {
	profile, err := s.GetArtisanProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.OfferedServiceIDs != nil {
		services, err := s.catalog.GetServicesByIDs(input.OfferedServiceIDs)
		if err != nil {
			return nil, err
		}
		if err := s.profiles.ReplaceOfferedServices(profile, services); err != nil {
			return nil, err
		}
	}

	return s.GetArtisanProfile(userID)
}
