package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	mu        sync.Mutex
	scheduled int
	remaining []time.Duration
	cancelled int
}

func (r *recordingReporter) Scheduled(time.Time, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled++
}

func (r *recordingReporter) Remaining(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remaining = append(r.remaining, d)
}

func (r *recordingReporter) Cancelled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled++
}

func TestWaitUntil_ShortWait(t *testing.T) {
	rep := &recordingReporter{}
	start := time.Now()
	at := start.Add(2 * time.Second)

	err := Waiter{}.WaitUntil(context.Background(), at, rep)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1, rep.scheduled)
	assert.Empty(t, rep.remaining, "no progress report for waits shorter than the report interval")
	assert.Zero(t, rep.cancelled)
}

func TestWaitUntil_PastInstantReturnsImmediately(t *testing.T) {
	rep := &recordingReporter{}

	err := Waiter{}.WaitUntil(context.Background(), time.Now().Add(-time.Second), rep)

	require.NoError(t, err)
	assert.Equal(t, 1, rep.scheduled)
}

func TestWaitUntil_ReportsAreWallClockGated(t *testing.T) {
	rep := &recordingReporter{}
	w := Waiter{Slice: 10 * time.Millisecond, ReportEvery: 100 * time.Millisecond}

	err := w.WaitUntil(context.Background(), time.Now().Add(350*time.Millisecond), rep)

	require.NoError(t, err)
	// Roughly 35 slices elapse but only one report per 100ms.
	assert.GreaterOrEqual(t, len(rep.remaining), 2)
	assert.LessOrEqual(t, len(rep.remaining), 3)
	for i := 1; i < len(rep.remaining); i++ {
		assert.Less(t, rep.remaining[i], rep.remaining[i-1])
	}
}

func TestWaitUntil_RecomputesFromClock(t *testing.T) {
	// A clock that jumps forward simulates suspension: the wait must end
	// after the first slice even though far less real time passed.
	base := time.Now()
	calls := 0
	clock := func() time.Time {
		calls++
		if calls == 1 {
			return base
		}
		return base.Add(time.Hour)
	}
	rep := &recordingReporter{}
	w := Waiter{Slice: 5 * time.Millisecond, Now: clock}

	start := time.Now()
	err := w.WaitUntil(context.Background(), base.Add(30*time.Minute), rep)

	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 2, calls)
}

func TestWaitUntil_Cancelled(t *testing.T) {
	rep := &recordingReporter{}
	ctx, cancel := context.WithCancel(context.Background())
	w := Waiter{Slice: 20 * time.Millisecond}

	done := make(chan error, 1)
	go func() { done <- w.WaitUntil(ctx, time.Now().Add(time.Hour), rep) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrCancelled)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("wait did not observe cancellation")
	}
	rep.mu.Lock()
	defer rep.mu.Unlock()
	assert.Equal(t, 1, rep.scheduled)
	assert.Equal(t, 1, rep.cancelled)
}

func TestWaitUntil_AlreadyCancelledContext(t *testing.T) {
	rep := &recordingReporter{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Waiter{}.WaitUntil(ctx, time.Now().Add(time.Minute), rep)

	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 1, rep.cancelled)
}
