package schedule

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultSlice bounds a single sleep of the wait loop.
	DefaultSlice = 60 * time.Second
	// DefaultReportEvery is the interval between progress reports.
	DefaultReportEvery = 60 * time.Second
)

// Reporter receives the progress of a wait.
type Reporter interface {
	// Scheduled is called once, before the first sleep.
	Scheduled(at time.Time, remaining time.Duration)
	Remaining(remaining time.Duration)
	Cancelled()
}

// Waiter blocks until a trigger time in bounded sleeps. The remaining time is
// recomputed from the wall clock after every sleep, so clock adjustments and
// process suspension do not skew the wait.
type Waiter struct {
	Slice       time.Duration
	ReportEvery time.Duration
	Now         func() time.Time
}

// WaitUntil sleeps until at. Cancellation of ctx is observed at sleep slice
// boundaries and yields an error wrapping ErrCancelled.
func (w Waiter) WaitUntil(ctx context.Context, at time.Time, r Reporter) error {
	slice, every, now := w.Slice, w.ReportEvery, w.Now
	if slice <= 0 {
		slice = DefaultSlice
	}
	if every <= 0 {
		every = DefaultReportEvery
	}
	if now == nil {
		now = time.Now
	}

	current := now()
	remaining := at.Sub(current)
	r.Scheduled(at, remaining)
	lastReport := current

	for remaining > 0 {
		timer := time.NewTimer(min(slice, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			r.Cancelled()
			return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
		case <-timer.C:
		}

		current = now()
		remaining = at.Sub(current)
		if remaining > 0 && current.Sub(lastReport) >= every {
			r.Remaining(remaining)
			lastReport = current
		}
	}
	return nil
}
