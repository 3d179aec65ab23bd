// Package validation holds input validation rules shared by the
// registration and credential flows.
package validation

import (
	"regexp"
	"strings"

	"quickfiss/internal/apperrors"
)

const MinPasswordLength = 8

var (
	emailRegex   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// NormalizeEmail lower-cases and trims an address so uniqueness checks
// are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// HasSpecialChar checks if a string contains at least one special character
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}

// Password enforces the credential policy: minimum length plus at least
// one special character.
func Password(password string) error {
	if len(password) < MinPasswordLength {
		return apperrors.Validation("Password must be at least 8 characters")
	}
	if !HasSpecialChar(password) {
		return apperrors.Validation("Password must contain at least one special character")
	}
	return nil
}
