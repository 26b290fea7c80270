package notify

import (
	"time"

	"hsr-booker/internal/schedule"
)

// CallbackSink forwards events to host supplied callbacks.
type CallbackSink struct {
	cb Callbacks
}

var _ Sink = (*CallbackSink)(nil)

func (s *CallbackSink) Progress(msg string) {
	if s.cb.OnStatus != nil {
		s.cb.OnStatus(msg)
	}
}

func (s *CallbackSink) Scheduled(at time.Time, _ time.Duration) {
	s.status("Waiting until " + at.Format(schedule.DisplayLayout))
}

func (s *CallbackSink) Remaining(remaining time.Duration) {
	if s.cb.OnStatus != nil {
		s.cb.OnStatus("Time remaining: " + schedule.FormatCountdown(remaining))
	}
}

func (s *CallbackSink) Cancelled() {
	s.status("Cancelled by user")
}

func (s *CallbackSink) Succeeded() {
	if s.cb.OnSuccess != nil {
		s.cb.OnSuccess()
	}
}

func (s *CallbackSink) Failed(reason string) {
	if s.cb.OnError != nil {
		s.cb.OnError(reason)
	}
}

func (s *CallbackSink) Finished() {}

func (s *CallbackSink) status(msg string) {
	switch {
	case s.cb.OnStatus != nil:
		s.cb.OnStatus(msg)
	case s.cb.OnError != nil:
		s.cb.OnError(msg)
	}
}
