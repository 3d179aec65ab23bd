// Package otp issues and checks the one-time codes used to prove email
// possession. It is deliberately persistence-free: Issue returns a new
// record value and Verify inspects one, while storing, overwriting and
// deleting records stays with the caller.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"quickfiss/internal/apperrors"
	"quickfiss/internal/models"
)

const (
	// CodeLength is fixed for the deployment; changing it invalidates
	// nothing but makes previously issued codes unverifiable by length.
	CodeLength = 6

	// Window is how long a code stays valid after issuance.
	Window = 10 * time.Minute
)

var (
	ErrInvalidCode = apperrors.Validation("Invalid OTP")
	ErrExpired     = apperrors.Expired("OTP has expired")
)

// GenerateCode returns a uniformly random fixed-width numeric code.
// Leading zeros are preserved: "004217" is a valid 6-digit code.
func GenerateCode() (string, error) {
	bound := big.NewInt(1)
	for i := 0; i < CodeLength; i++ {
		bound.Mul(bound, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n), nil
}

// Issue produces a fresh code and the record value to persist for it.
// The caller upserts the record, so reissuing overwrites rather than
// accumulating history.
func Issue(userID uint, now time.Time) (string, models.OTPVerification, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", models.OTPVerification{}, err
	}
	rec := models.OTPVerification{
		UserID:   userID,
		Code:     code,
		IssuedAt: now,
	}
	return code, rec, nil
}

// Verify checks a submitted code against the stored record. The code
// comparison is an exact string match (no numeric coercion) and runs
// before the expiry check, so a wrong code on an expired record reports
// invalid rather than expired. Verify never mutates account state.
func Verify(rec *models.OTPVerification, submitted string, now time.Time) error {
	if rec == nil || rec.Code == "" {
		return ErrInvalidCode
	}
	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(submitted)) != 1 {
		return ErrInvalidCode
	}
	if IsExpired(rec, now) {
		return ErrExpired
	}
	return nil
}

// IsExpired reports whether the record's code is past its validity
// window at the given instant.
func IsExpired(rec *models.OTPVerification, now time.Time) bool {
	return now.Sub(rec.IssuedAt) >= Window
}
