package verification

import (
	"sync"
	"testing"
	"time"

	"quickfiss/internal/apperrors"
	"quickfiss/internal/models"
	"quickfiss/internal/repositories"
	"quickfiss/internal/services/otp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) UpdatePassword(userID uint, hashedPassword string) error {
	args := m.Called(userID, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepo) Activate(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepo) SetRole(userID uint, role models.Role) error {
	args := m.Called(userID, role)
	return args.Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepo) GetTokenVersion(userID uint) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockOTPRepo struct {
	mock.Mock
}

func (m *MockOTPRepo) Upsert(rec *models.OTPVerification) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockOTPRepo) GetByUserID(userID uint) (*models.OTPVerification, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OTPVerification), args.Error(1)
}

func (m *MockOTPRepo) MarkVerified(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockOTPRepo) DeleteByUserID(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string
	codes []string
}

func (f *fakeMailer) EnqueueOTP(to, code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	f.codes = append(f.codes, code)
}

func newTestService(users *MockUserRepo, otps *MockOTPRepo, mail *fakeMailer, now time.Time) Service {
	return &service{
		users: users,
		otps:  otps,
		mail:  mail,
		now:   func() time.Time { return now },
	}
}

func inactiveUser(id uint, email string) *models.User {
	u := &models.User{Email: email, Role: models.RoleClient}
	u.ID = id
	return u
}

func TestStartRegistration(t *testing.T) {
	users := new(MockUserRepo)
	otps := new(MockOTPRepo)
	mail := &fakeMailer{}
	now := time.Now()

	var stored *models.OTPVerification
	otps.On("Upsert", mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(0).(*models.OTPVerification)
	}).Return(nil)

	svc := newTestService(users, otps, mail, now)
	require.NoError(t, svc.StartRegistration(inactiveUser(1, "jane@x.com")))

	require.NotNil(t, stored)
	assert.Equal(t, uint(1), stored.UserID)
	assert.Len(t, stored.Code, otp.CodeLength)
	assert.Equal(t, now, stored.IssuedAt)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "jane@x.com", mail.sent[0])
	assert.Equal(t, stored.Code, mail.codes[0])
}

func TestResendOTP(t *testing.T) {
	t.Run("reissues for inactive account", func(t *testing.T) {
		users := new(MockUserRepo)
		otps := new(MockOTPRepo)
		mail := &fakeMailer{}

		users.On("GetByEmail", "jane@x.com").Return(inactiveUser(1, "jane@x.com"), nil)
		otps.On("Upsert", mock.Anything).Return(nil)

		svc := newTestService(users, otps, mail, time.Now())
		require.NoError(t, svc.ResendOTP("Jane@X.com"))

		otps.AssertExpectations(t)
		assert.Len(t, mail.sent, 1)
	})

	t.Run("already verified", func(t *testing.T) {
		users := new(MockUserRepo)
		otps := new(MockOTPRepo)
		mail := &fakeMailer{}

		active := inactiveUser(1, "jane@x.com")
		active.IsActive = true
		users.On("GetByEmail", "jane@x.com").Return(active, nil)

		svc := newTestService(users, otps, mail, time.Now())
		err := svc.ResendOTP("jane@x.com")

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
		assert.Empty(t, mail.sent)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepo)
		otps := new(MockOTPRepo)
		mail := &fakeMailer{}

		users.On("GetByEmail", "ghost@x.com").Return(nil, repositories.ErrUserNotFound)

		svc := newTestService(users, otps, mail, time.Now())
		err := svc.ResendOTP("ghost@x.com")

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestVerifyOTP(t *testing.T) {
	now := time.Now()

	t.Run("correct code activates account", func(t *testing.T) {
		users := new(MockUserRepo)
		otps := new(MockOTPRepo)

		users.On("GetByID", uint(1)).Return(inactiveUser(1, "jane@x.com"), nil)
		otps.On("GetByUserID", uint(1)).Return(&models.OTPVerification{
			UserID: 1, Code: "123456", IssuedAt: now.Add(-time.Minute),
		}, nil)
		otps.On("MarkVerified", uint(1)).Return(nil)
		users.On("Activate", uint(1)).Return(nil)

		svc := newTestService(users, otps, &fakeMailer{}, now)
		require.NoError(t, svc.VerifyOTP(1, "123456"))

		users.AssertExpectations(t)
		otps.AssertExpectations(t)
		// The record is retained after activation; only password resets
		// delete it.
		otps.AssertNotCalled(t, "DeleteByUserID", mock.Anything)
	})

	t.Run("wrong code within window reports invalid", func(t *testing.T) {
		users := new(MockUserRepo)
		otps := new(MockOTPRepo)

		users.On("GetByID", uint(1)).Return(inactiveUser(1, "jane@x.com"), nil)
		otps.On("GetByUserID", uint(1)).Return(&models.OTPVerification{
			UserID: 1, Code: "123456", IssuedAt: now.Add(-time.Minute),
		}, nil)

		svc := newTestService(users, otps, &fakeMailer{}, now)
		err := svc.VerifyOTP(1, "000000")

		assert.ErrorIs(t, err, otp.ErrInvalidCode)
		users.AssertNotCalled(t, "Activate", mock.Anything)
	})

	t.Run("correct code after window reports expired", func(t *testing.T) {
		users := new(MockUserRepo)
		otps := new(MockOTPRepo)

		users.On("GetByID", uint(1)).Return(inactiveUser(1, "jane@x.com"), nil)
		otps.On("GetByUserID", uint(1)).Return(&models.OTPVerification{
			UserID: 1, Code: "123456", IssuedAt: now.Add(-11 * time.Minute),
		}, nil)

		svc := newTestService(users, otps, &fakeMailer{}, now)
		err := svc.VerifyOTP(1, "123456")

		assert.ErrorIs(t, err, otp.ErrExpired)
		assert.True(t, apperrors.IsKind(err, apperrors.KindExpired))
		users.AssertNotCalled(t, "Activate", mock.Anything)
	})

	t.Run("missing record reports invalid", func(t *testing.T) {
		users := new(MockUserRepo)
		otps := new(MockOTPRepo)

		users.On("GetByID", uint(1)).Return(inactiveUser(1, "jane@x.com"), nil)
		otps.On("GetByUserID", uint(1)).Return(nil, repositories.ErrOTPNotFound)

		svc := newTestService(users, otps, &fakeMailer{}, now)
		assert.ErrorIs(t, svc.VerifyOTP(1, "123456"), otp.ErrInvalidCode)
	})

	t.Run("already active account", func(t *testing.T) {
		users := new(MockUserRepo)
		otps := new(MockOTPRepo)

		active := inactiveUser(1, "jane@x.com")
		active.IsActive = true
		users.On("GetByID", uint(1)).Return(active, nil)

		svc := newTestService(users, otps, &fakeMailer{}, now)
		err := svc.VerifyOTP(1, "123456")

		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})
}

func TestRequestPasswordReset(t *testing.T) {
	t.Run("active account gets a code", func(t *testing.T) {
		users := new(MockUserRepo)
		otps := new(MockOTPRepo)
		mail := &fakeMailer{}

		active := inactiveUser(1, "jane@x.com")
		active.IsActive = true
		users.On("GetByEmail", "jane@x.com").Return(active, nil)
		otps.On("Upsert", mock.Anything).Return(nil)

		svc := newTestService(users, otps, mail, time.Now())
		require.NoError(t, svc.RequestPasswordReset("jane@x.com"))
		assert.Len(t, mail.sent, 1)
	})

	t.Run("unregistered email", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", "ghost@x.com").Return(nil, repositories.ErrUserNotFound)

		svc := newTestService(users, new(MockOTPRepo), &fakeMailer{}, time.Now())
		err := svc.RequestPasswordReset("ghost@x.com")

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestConfirmPasswordReset(t *testing.T) {
	now := time.Now()

	t.Run("success updates hash and consumes the record", func(t *testing.T) {
		users := new(MockUserRepo)
		otps := new(MockOTPRepo)

		active := inactiveUser(1, "jane@x.com")
		active.IsActive = true
		users.On("GetByEmail", "jane@x.com").Return(active, nil)
		otps.On("GetByUserID", uint(1)).Return(&models.OTPVerification{
			UserID: 1, Code: "123456", IssuedAt: now.Add(-time.Minute),
		}, nil)

		var newHash string
		users.On("UpdatePassword", uint(1), mock.Anything).Run(func(args mock.Arguments) {
			newHash = args.String(1)
		}).Return(nil)
		users.On("IncrementTokenVersion", uint(1)).Return(nil)
		otps.On("DeleteByUserID", uint(1)).Return(nil)

		svc := newTestService(users, otps, &fakeMailer{}, now)
		require.NoError(t, svc.ConfirmPasswordReset("jane@x.com", "123456", "new-pass!23", "new-pass!23"))

		users.AssertExpectations(t)
		otps.AssertExpectations(t)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new-pass!23")))
	})

	t.Run("password mismatch", func(t *testing.T) {
		svc := newTestService(new(MockUserRepo), new(MockOTPRepo), &fakeMailer{}, now)
		err := svc.ConfirmPasswordReset("jane@x.com", "123456", "new-pass!23", "other-pass!23")

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("weak replacement password", func(t *testing.T) {
		svc := newTestService(new(MockUserRepo), new(MockOTPRepo), &fakeMailer{}, now)
		err := svc.ConfirmPasswordReset("jane@x.com", "123456", "short!", "short!")

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("expired code", func(t *testing.T) {
		users := new(MockUserRepo)
		otps := new(MockOTPRepo)

		active := inactiveUser(1, "jane@x.com")
		active.IsActive = true
		users.On("GetByEmail", "jane@x.com").Return(active, nil)
		otps.On("GetByUserID", uint(1)).Return(&models.OTPVerification{
			UserID: 1, Code: "123456", IssuedAt: now.Add(-11 * time.Minute),
		}, nil)

		svc := newTestService(users, otps, &fakeMailer{}, now)
		err := svc.ConfirmPasswordReset("jane@x.com", "123456", "new-pass!23", "new-pass!23")

		assert.ErrorIs(t, err, otp.ErrExpired)
		users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
		otps.AssertNotCalled(t, "DeleteByUserID", mock.Anything)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", "ghost@x.com").Return(nil, repositories.ErrUserNotFound)

		svc := newTestService(users, new(MockOTPRepo), &fakeMailer{}, now)
		err := svc.ConfirmPasswordReset("ghost@x.com", "123456", "new-pass!23", "new-pass!23")

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}
