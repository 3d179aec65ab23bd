package repositories

import (
	"errors"

	"quickfiss/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrOTPNotFound = errors.New("otp record not found")

type OTPRepository interface {
	Upsert(rec *models.OTPVerification) error
	GetByUserID(userID uint) (*models.OTPVerification, error)
	MarkVerified(userID uint) error
	DeleteByUserID(userID uint) error
}

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

// Upsert writes the record, overwriting any previous code for the same
// user. Two requests racing on the same user (resend vs verify) are
// serialized by the unique user_id constraint rather than a mutex, so
// exactly one live code survives either interleaving.
func (r *otpRepository) Upsert(rec *models.OTPVerification) error {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "issued_at", "is_verified", "updated_at"}),
	}).Create(rec)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *otpRepository) GetByUserID(userID uint) (*models.OTPVerification, error) {
	var rec models.OTPVerification
	result := r.db.Where("user_id = ?", userID).First(&rec)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &rec, nil
}

func (r *otpRepository) MarkVerified(userID uint) error {
	result := r.db.Model(&models.OTPVerification{}).
		Where("user_id = ?", userID).
		Update("is_verified", true)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrOTPNotFound
	}
	return nil
}

func (r *otpRepository) DeleteByUserID(userID uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.OTPVerification{})
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	return nil
}
