package booking

import "fmt"

// FailureKind groups failures by where they came from.
type FailureKind int

const (
	// KindResource is an unexpected driver error or panic.
	KindResource FailureKind = iota
	// KindNavigation is a page load timeout or network failure.
	KindNavigation
	// KindCaptcha means every captcha attempt was rejected.
	KindCaptcha
	// KindForm is an error reported by the site or a page that failed to advance.
	KindForm
)

func (k FailureKind) String() string {
	switch k {
	case KindNavigation:
		return "navigation"
	case KindCaptcha:
		return "captcha"
	case KindForm:
		return "form"
	default:
		return "resource"
	}
}

// Failure ends a booking run.
type Failure struct {
	Kind   FailureKind
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Reason, f.Err)
	}
	return f.Reason
}

func (f *Failure) Unwrap() error { return f.Err }

// Outcome is the result of one booking run. A nil Failure means the booking
// was confirmed.
type Outcome struct {
	Failure *Failure
}

// Succeeded reports whether the run reached the confirmation step.
func (o Outcome) Succeeded() bool { return o.Failure == nil }

// Reason returns the failure reason, or "" on success.
func (o Outcome) Reason() string {
	if o.Failure == nil {
		return ""
	}
	return o.Failure.Reason
}
