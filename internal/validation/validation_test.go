package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@x.com", NormalizeEmail("  Jane@X.Com "))
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "jane.doe@example.com", "x+tag@sub.domain.org"}
	invalid := []string{"", "plain", "a@b", "@x.com", "a b@x.com"}

	for _, e := range valid {
		assert.True(t, ValidEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), e)
	}
}

func TestPassword(t *testing.T) {
	assert.Error(t, Password("short!"))
	assert.Error(t, Password("longenoughbutplain"))
	assert.NoError(t, Password("longenough!"))
}
