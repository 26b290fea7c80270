package booking

import "strings"

// ErrorClass is the category of a message shown by the site after submitting
// the search form.
type ErrorClass int

const (
	// ClassUnknown means no message was shown.
	ClassUnknown ErrorClass = iota
	// ClassCaptcha means the captcha answer was rejected and a retry may succeed.
	ClassCaptcha
	// ClassFatal is any other message; retrying will not help.
	ClassFatal
)

func (c ErrorClass) String() string {
	switch c {
	case ClassCaptcha:
		return "captcha"
	case ClassFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Classifier categorizes the site's error message.
type Classifier func(message string) ErrorClass

// CaptchaMarkers are the phrases that identify a rejected captcha. Matching is
// by substring, case-insensitive.
var CaptchaMarkers = []string{"驗證碼", "檢測碼", "security"}

// DefaultClassifier matches message against CaptchaMarkers.
func DefaultClassifier(message string) ErrorClass {
	return MarkerClassifier(CaptchaMarkers)(message)
}

// MarkerClassifier returns a Classifier that treats any message containing one
// of markers as a captcha error.
func MarkerClassifier(markers []string) Classifier {
	lowered := make([]string, len(markers))
	for i, m := range markers {
		lowered[i] = strings.ToLower(m)
	}
	return func(message string) ErrorClass {
		message = strings.TrimSpace(message)
		if message == "" {
			return ClassUnknown
		}
		lm := strings.ToLower(message)
		for _, m := range lowered {
			if strings.Contains(lm, m) {
				return ClassCaptcha
			}
		}
		return ClassFatal
	}
}
