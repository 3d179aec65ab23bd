// Package verification orchestrates the account verification and
// credential-recovery state machines: registration → OTP → activation,
// resend, and the password-reset request/confirm pair. It composes the
// OTP engine with the repositories and hands email delivery to the
// mailer dispatcher; it never sends mail inline.
package verification

import (
	"time"

	"quickfiss/internal/apperrors"
	"quickfiss/internal/models"
	"quickfiss/internal/repositories"
	"quickfiss/internal/services/otp"
	"quickfiss/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Mailer is the deferred executor contract: enqueue and forget.
type Mailer interface {
	EnqueueOTP(to, code string)
}

type Service interface {
	StartRegistration(user *models.User) error
	ResendOTP(email string) error
	VerifyOTP(userID uint, code string) error
	RequestPasswordReset(email string) error
	ConfirmPasswordReset(email, code, password, confirmPassword string) error
}

type service struct {
	users repositories.UserRepository
	otps  repositories.OTPRepository
	mail  Mailer
	now   func() time.Time
}

func NewService(users repositories.UserRepository, otps repositories.OTPRepository, mail Mailer) Service {
	return &service{
		users: users,
		otps:  otps,
		mail:  mail,
		now:   time.Now,
	}
}

// issueAndDispatch generates a fresh code for the user, overwrites any
// previous record and queues the email.
func (s *service) issueAndDispatch(user *models.User) error {
	code, rec, err := otp.Issue(user.ID, s.now())
	if err != nil {
		return err
	}
	if err := s.otps.Upsert(&rec); err != nil {
		return err
	}
	s.mail.EnqueueOTP(user.Email, code)
	return nil
}

// StartRegistration kicks off verification for a freshly registered,
// inactive account.
func (s *service) StartRegistration(user *models.User) error {
	return s.issueAndDispatch(user)
}

// ResendOTP reissues the registration code, invalidating the previous
// one. Active accounts have nothing left to verify.
func (s *service) ResendOTP(email string) error {
	user, err := s.getUserByEmail(email)
	if err != nil {
		return err
	}
	if user.IsActive {
		return apperrors.Conflict("Email is already verified")
	}
	return s.issueAndDispatch(user)
}

// VerifyOTP activates the account on a correct, unexpired code. The
// record is kept (marked verified) so the registration trail survives;
// only the password-reset flow consumes records.
func (s *service) VerifyOTP(userID uint, code string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.NotFound("No account with this id")
		}
		return err
	}
	if user.IsActive {
		return apperrors.Conflict("Email is already verified")
	}

	rec, err := s.otps.GetByUserID(user.ID)
	if err != nil {
		if err == repositories.ErrOTPNotFound {
			return otp.ErrInvalidCode
		}
		return err
	}

	if err := otp.Verify(rec, code, s.now()); err != nil {
		return err
	}

	if err := s.otps.MarkVerified(user.ID); err != nil {
		return err
	}
	return s.users.Activate(user.ID)
}

// RequestPasswordReset issues a reset code for any known account,
// active or not.
func (s *service) RequestPasswordReset(email string) error {
	user, err := s.getUserByEmail(email)
	if err != nil {
		return err
	}
	return s.issueAndDispatch(user)
}

// ConfirmPasswordReset swaps the password hash after OTP proof and
// deletes the record: reset codes are single use.
func (s *service) ConfirmPasswordReset(email, code, password, confirmPassword string) error {
	if password != confirmPassword {
		return apperrors.Validation("Passwords do not match")
	}
	if err := validation.Password(password); err != nil {
		return err
	}

	user, err := s.getUserByEmail(email)
	if err != nil {
		return err
	}

	rec, err := s.otps.GetByUserID(user.ID)
	if err != nil {
		if err == repositories.ErrOTPNotFound {
			return apperrors.Validation("Invalid or expired OTP")
		}
		return err
	}

	if err := otp.Verify(rec, code, s.now()); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(user.ID, string(hashedPassword)); err != nil {
		return err
	}

	// Outstanding sessions die with the old password.
	if err := s.users.IncrementTokenVersion(user.ID); err != nil {
		return err
	}

	return s.otps.DeleteByUserID(user.ID)
}

func (s *service) getUserByEmail(email string) (*models.User, error) {
	user, err := s.users.GetByEmail(validation.NormalizeEmail(email))
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.NotFound("No account with this email")
		}
		return nil, err
	}
	return user, nil
}
