// Package schedule delays a booking run until a configured trigger time.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidFormat is returned for trigger strings in neither accepted layout.
	ErrInvalidFormat = errors.New("invalid trigger time format")
	// ErrAlreadyPassed is returned for trigger times at or before now.
	ErrAlreadyPassed = errors.New("trigger time has already passed")
	// ErrCancelled is returned when a wait is interrupted.
	ErrCancelled = errors.New("wait cancelled")
)

// Layouts are the accepted trigger time layouts, tried in order. Times are
// interpreted in the local time zone.
var Layouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// DisplayLayout renders trigger times for humans.
const DisplayLayout = "2006-01-02 15:04:05"

// Parse converts s into a trigger instant, rejecting instants that are not
// after now.
func Parse(s string, now time.Time) (time.Time, error) {
	var (
		at     time.Time
		parsed bool
	)
	for _, layout := range Layouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			at, parsed = t, true
			break
		}
	}
	if !parsed {
		return time.Time{}, fmt.Errorf("%w: %q, use 2026-01-29T00:00:00 or 2026-01-29T00:00", ErrInvalidFormat, s)
	}
	if !at.After(now) {
		return time.Time{}, fmt.Errorf("%w: %s, current time %s", ErrAlreadyPassed, s, now.Format(Layouts[0]))
	}
	return at, nil
}

// FormatCountdown renders d as HH:MM:SS, truncating fractional seconds.
// Negative durations render as 00:00:00.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
