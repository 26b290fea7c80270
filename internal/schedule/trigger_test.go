package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AcceptedLayouts(t *testing.T) {
	now := time.Date(2026, 1, 28, 12, 0, 0, 0, time.Local)

	tests := []struct {
		in         string
		wantSecond int
	}{
		{"2026-01-29T00:00:00", 0},
		{"2026-01-29T00:00:45", 45},
		{"2026-01-29T00:00", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			at, err := Parse(tt.in, now)
			require.NoError(t, err)
			assert.Equal(t, 2026, at.Year())
			assert.Equal(t, time.January, at.Month())
			assert.Equal(t, 29, at.Day())
			assert.Equal(t, 0, at.Hour())
			assert.Equal(t, 0, at.Minute())
			assert.Equal(t, tt.wantSecond, at.Second())
			assert.Equal(t, time.Local, at.Location())
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	now := time.Now()
	for _, offset := range []time.Duration{2 * time.Minute, 3 * time.Hour, 40 * 24 * time.Hour} {
		want := now.Add(offset).Truncate(time.Minute)
		for _, layout := range Layouts {
			at, err := Parse(want.Format(layout), now)
			require.NoError(t, err)
			assert.Equal(t, want.Year(), at.Year())
			assert.Equal(t, want.Month(), at.Month())
			assert.Equal(t, want.Day(), at.Day())
			assert.Equal(t, want.Hour(), at.Hour())
			assert.Equal(t, want.Minute(), at.Minute())
		}
	}
}

func TestParse_InvalidFormat(t *testing.T) {
	now := time.Now()
	for _, in := range []string{
		"",
		"tomorrow",
		"2026-01-29",
		"2026/01/29T00:00:00",
		"2026-01-29 00:00:00",
		"2026-13-01T00:00",
		"2026-01-29T25:00",
		"2026-01-29T00:00:00Z",
	} {
		_, err := Parse(in, now)
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", in)
	}
}

func TestParse_AlreadyPassed(t *testing.T) {
	now := time.Date(2026, 1, 29, 8, 30, 0, 0, time.Local)

	for _, in := range []string{"2026-01-29T08:30:00", "2026-01-29T08:29", "2020-01-01T00:00"} {
		_, err := Parse(in, now)
		assert.ErrorIs(t, err, ErrAlreadyPassed, "input %q", in)
		assert.NotErrorIs(t, err, ErrInvalidFormat)
	}

	_, err := Parse("2026-01-29T08:30:01", now)
	assert.NoError(t, err)
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatCountdown(0))
	assert.Equal(t, "00:00:00", FormatCountdown(-5*time.Second))
	assert.Equal(t, "00:01:59", FormatCountdown(119*time.Second+900*time.Millisecond))
	assert.Equal(t, "26:03:04", FormatCountdown(26*time.Hour+3*time.Minute+4*time.Second))
}
