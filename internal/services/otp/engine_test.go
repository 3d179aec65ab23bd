package otp

import (
	"testing"
	"time"

	"quickfiss/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, CodeLength)
		for _, ch := range code {
			assert.True(t, ch >= '0' && ch <= '9', "non-digit in code %q", code)
		}
		seen[code] = true
	}
	// 100 draws from a million-value space colliding down to a handful
	// would mean the generator is broken.
	assert.Greater(t, len(seen), 90)
}

func TestIssue(t *testing.T) {
	now := time.Now()
	code, rec, err := Issue(42, now)
	require.NoError(t, err)

	assert.Equal(t, code, rec.Code)
	assert.Equal(t, uint(42), rec.UserID)
	assert.Equal(t, now, rec.IssuedAt)
	assert.False(t, rec.IsVerified)
}

func TestVerify(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		rec       *models.OTPVerification
		submitted string
		wantErr   error
	}{
		{
			name:      "correct code within window",
			rec:       &models.OTPVerification{Code: "123456", IssuedAt: now.Add(-time.Minute)},
			submitted: "123456",
			wantErr:   nil,
		},
		{
			name:      "wrong code reported as invalid not expired",
			rec:       &models.OTPVerification{Code: "123456", IssuedAt: now.Add(-time.Minute)},
			submitted: "000000",
			wantErr:   ErrInvalidCode,
		},
		{
			name:      "correct code after window",
			rec:       &models.OTPVerification{Code: "123456", IssuedAt: now.Add(-11 * time.Minute)},
			submitted: "123456",
			wantErr:   ErrExpired,
		},
		{
			name:      "no record",
			rec:       nil,
			submitted: "123456",
			wantErr:   ErrInvalidCode,
		},
		{
			name:      "no numeric coercion",
			rec:       &models.OTPVerification{Code: "012345", IssuedAt: now.Add(-time.Minute)},
			submitted: "12345",
			wantErr:   ErrInvalidCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.rec, tt.submitted, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Now()
	rec := &models.OTPVerification{Code: "123456", IssuedAt: now}

	assert.False(t, IsExpired(rec, now.Add(Window-time.Second)))
	assert.True(t, IsExpired(rec, now.Add(Window)))
	assert.True(t, IsExpired(rec, now.Add(Window+time.Second)))
}
