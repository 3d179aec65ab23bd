package models

import "time"

// OTPVerification holds the single live one-time code for a user.
// The unique index on UserID is what guarantees "at most one live code
// per account": concurrent issue requests resolve as an upsert on that
// key rather than through in-process locking.
//
// No gorm.Model here: soft deletes would leave a tombstone row holding
// the unique user_id slot after a password reset consumes the code.
type OTPVerification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Code       string    `gorm:"not null" json:"-"`
	IssuedAt   time.Time `gorm:"not null" json:"issued_at"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
