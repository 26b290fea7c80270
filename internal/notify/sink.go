// Package notify renders booking progress and outcomes, either directly to a
// terminal or through callbacks supplied by a host application.
package notify

import "hsr-booker/internal/schedule"

// Sink receives every user-facing event of a booking run. The workflow emits
// the same events regardless of the implementation.
type Sink interface {
	schedule.Reporter

	Progress(msg string)
	Succeeded()
	Failed(reason string)
	// Finished is called after the browser has been released.
	Finished()
}

// Callbacks are the notification slots a host application may fill.
type Callbacks struct {
	OnSuccess func()
	OnError   func(message string)
	// OnStatus receives progress and scheduling messages. When nil, scheduling
	// messages fall back to OnError and progress is dropped.
	OnStatus func(message string)
}

// Empty reports whether neither terminal callback is set.
func (c Callbacks) Empty() bool {
	return c.OnSuccess == nil && c.OnError == nil
}

// New returns a callback sink for cb, or fallback when cb is empty.
func New(cb Callbacks, fallback Sink) Sink {
	if cb.Empty() {
		return fallback
	}
	return &CallbackSink{cb: cb}
}
