package query

import (
	"testing"
	"time"

	"MarketLens/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2021, time.March, 15, 13, 45, 0, 0, time.UTC)

func TestParseRange_Valid(t *testing.T) {
	rng, err := ParseRange("2021-01-01", "2021-01-31", now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), rng.Start())
	assert.Equal(t, time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC), rng.End())
	assert.Equal(t, 31, rng.Days())
	assert.Equal(t, int64(0), rng.StartMinute%model.MinutesPerDay)
}

func TestParseRange_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{"missing start", "", "2021-01-02"},
		{"bad format", "01/01/2021", "2021-01-02"},
		{"impossible date", "2021-02-30", "2021-03-02"},
		{"before coverage", "2013-04-27", "2013-05-01"},
		{"end in future", "2021-03-01", "2021-03-16"},
		{"same day", "2021-01-05", "2021-01-05"},
		{"reversed", "2021-01-05", "2021-01-04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRange(tt.start, tt.end, now)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestParseRange_Boundaries(t *testing.T) {
	_, err := ParseRange("2013-04-28", "2013-04-29", now)
	assert.NoError(t, err)

	_, err = ParseRange("2021-03-14", "2021-03-15", now)
	assert.NoError(t, err, "end may be today")
}

func TestTrailingRange(t *testing.T) {
	rng := TrailingRange(30, now)

	assert.Equal(t, 30, rng.Days())
	assert.Equal(t, time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC), rng.End())
	assert.Equal(t, time.Date(2021, 2, 14, 0, 0, 0, 0, time.UTC), rng.Start())

	assert.Equal(t, 1, TrailingRange(0, now).Days())
}
