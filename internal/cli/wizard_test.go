package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDurationMinutes(t *testing.T) {
	assert.NoError(t, validateDurationMinutes("20"))
	assert.NoError(t, validateDurationMinutes(" 1 "))
	assert.Error(t, validateDurationMinutes(""))
	assert.Error(t, validateDurationMinutes("0"))
	assert.Error(t, validateDurationMinutes("-5"))
	assert.Error(t, validateDurationMinutes("ten"))
	assert.Error(t, validateDurationMinutes("1.5"))
}

func TestParseDurationMinutes(t *testing.T) {
	assert.Equal(t, 1200, parseDurationMinutes("20"))
	assert.Equal(t, 60, parseDurationMinutes(" 1 "))
	assert.Equal(t, 0, parseDurationMinutes("junk"))
	assert.Equal(t, 0, parseDurationMinutes("-3"))
}

func TestValidateRequired(t *testing.T) {
	v := validateRequired("name")
	assert.NoError(t, v("Ada"))
	assert.Error(t, v(""))
	assert.Error(t, v("   "))
}
