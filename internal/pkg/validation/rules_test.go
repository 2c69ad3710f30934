package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"ayse@campus.edu",
		"m.demir+forum@uni.edu.tr",
		"a_b%c@dept.campus.org",
	}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), email)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"two@@campus.edu",
		"UPPER@campus.edu",
		"trailing@campus.",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), email)
	}
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("hello").WithMinLength(2).WithMaxLength(10).Validate())
	assert.False(t, NewStringValidation("h").WithMinLength(2).Validate())
	assert.False(t, NewStringValidation("too long for the limit").WithMaxLength(5).Validate())
	assert.False(t, NewStringValidation("").WithRequired(true).Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())
}
