package repositories

import (
	"errors"

	"quickfiss/internal/models"
)

// Repository-level sentinel errors. Services translate these into the
// domain error taxonomy before they reach a handler.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDatabaseOperation = errors.New("database operation failed")
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePassword(userID uint, hashedPassword string) error
	Activate(userID uint) error
	SetRole(userID uint, role models.Role) error
	IncrementTokenVersion(userID uint) error
	GetTokenVersion(userID uint) (int, error)
	Delete(id uint) error
}
