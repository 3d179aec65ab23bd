// Package user is the account registry: it creates identities, enforces
// the credential policy and keeps role changes flowing into the profile
// synchronizer.
package user

import (
	"quickfiss/internal/apperrors"
	"quickfiss/internal/models"
	"quickfiss/internal/repositories"
	"quickfiss/internal/services/profile"
	"quickfiss/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Password2 string      `json:"password2"`
	Role      models.Role `json:"role"`
}

type Service interface {
	Register(input RegisterInput) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	SetRole(userID uint, role models.Role) (*models.User, error)
}

type service struct {
	repo     repositories.UserRepository
	profiles profile.Service
}

func NewService(repo repositories.UserRepository, profiles profile.Service) Service {
	return &service{
		repo:     repo,
		profiles: profiles,
	}
}

// Register creates an inactive account. The caller is responsible for
// kicking off OTP verification; the account cannot log in until it is
// activated.
func (s *service) Register(input RegisterInput) (*models.User, error) {
	email := validation.NormalizeEmail(input.Email)
	if !validation.ValidEmail(email) {
		return nil, apperrors.Validation("Invalid email format")
	}
	if err := validation.Password(input.Password); err != nil {
		return nil, err
	}
	if input.Password != input.Password2 {
		return nil, apperrors.Validation("Passwords do not match")
	}
	if !input.Role.Valid() {
		return nil, apperrors.Validation("Role must be client or artisan")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Password:     string(hashedPassword),
		Role:         input.Role,
		IsActive:     false,
		TokenVersion: 1,
	}

	if err := s.repo.Create(user); err != nil {
		if err == repositories.ErrDuplicateEmail {
			return nil, apperrors.Conflict("Email is already registered")
		}
		return nil, err
	}

	if err := s.profiles.Sync(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) GetByID(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err == repositories.ErrUserNotFound {
		return nil, apperrors.NotFound("No account with this id")
	}
	return user, err
}

func (s *service) GetByEmail(email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(validation.NormalizeEmail(email))
	if err == repositories.ErrUserNotFound {
		return nil, apperrors.NotFound("No account with this email")
	}
	return user, err
}

// SetRole flips the account's role and re-converges the profile tables.
func (s *service) SetRole(userID uint, role models.Role) (*models.User, error) {
	if !role.Valid() && role != models.RoleUnassigned {
		return nil, apperrors.Validation("Unknown role")
	}

	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	if err := s.repo.SetRole(userID, role); err != nil {
		return nil, err
	}
	user.Role = role

	if err := s.profiles.Sync(user); err != nil {
		return nil, err
	}
	return user, nil
}
