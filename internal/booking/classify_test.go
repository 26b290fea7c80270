package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultClassifier(t *testing.T) {
	tests := []struct {
		message string
		want    ErrorClass
	}{
		{"", ClassUnknown},
		{"   ", ClassUnknown},
		{"檢測碼輸入錯誤，請確認後重新輸入", ClassCaptcha},
		{"驗證碼錯誤", ClassCaptcha},
		{"Incorrect security code", ClassCaptcha},
		{"SECURITY CODE EXPIRED", ClassCaptcha},
		{"去程查無可售車次", ClassFatal},
		{"The ID number is invalid", ClassFatal},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultClassifier(tt.message))
		})
	}
}

func TestMarkerClassifier_CustomTable(t *testing.T) {
	classify := MarkerClassifier([]string{"Captcha"})

	assert.Equal(t, ClassCaptcha, classify("wrong CAPTCHA"))
	assert.Equal(t, ClassFatal, classify("Incorrect security code"))
	assert.Equal(t, ClassUnknown, classify(""))
}

func TestErrorClassString(t *testing.T) {
	assert.Equal(t, "captcha", ClassCaptcha.String())
	assert.Equal(t, "fatal", ClassFatal.String())
	assert.Equal(t, "unknown", ClassUnknown.String())
}

func TestFailure(t *testing.T) {
	cause := errors.New("net::ERR_CONNECTION_RESET")
	f := &Failure{Kind: KindNavigation, Reason: "page load failure", Err: cause}

	assert.Equal(t, "page load failure: net::ERR_CONNECTION_RESET", f.Error())
	assert.ErrorIs(t, f, cause)
	assert.Equal(t, "navigation", f.Kind.String())

	out := Outcome{Failure: &Failure{Kind: KindForm, Reason: "no trains available"}}
	assert.False(t, out.Succeeded())
	assert.Equal(t, "no trains available", out.Reason())
	assert.Equal(t, "no trains available", out.Failure.Error())

	assert.True(t, Outcome{}.Succeeded())
	assert.Empty(t, Outcome{}.Reason())
}

func TestMask(t *testing.T) {
	assert.Equal(t, "A12***", mask("A123456789", 3))
	assert.Equal(t, "09***", mask("09", 4))
	assert.Equal(t, "王小***", mask("王小明", 2))
}
