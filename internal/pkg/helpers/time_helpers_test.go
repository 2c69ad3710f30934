package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 15*time.Minute, ParseDuration("15m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
}

func TestFormatMessageTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)

	today := time.Date(2025, 6, 15, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "09:05", FormatMessageTime(today, now))

	sameYear := time.Date(2025, 3, 2, 14, 45, 0, 0, time.UTC)
	assert.Equal(t, "02 Mar 14:45", FormatMessageTime(sameYear, now))

	lastYear := time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "31 Dec 2024", FormatMessageTime(lastYear, now))
}
