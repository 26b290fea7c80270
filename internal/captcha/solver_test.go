package captcha

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

var sampleImage = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

func TestSafe_Recognize(t *testing.T) {
	var got []byte
	solver := SolverFunc(func(_ context.Context, image []byte) (string, error) {
		got = image
		return " ab12\n", nil
	})

	text := NewSafe(solver, zaptest.NewLogger(t)).Recognize(context.Background(), sampleImage)

	assert.Equal(t, "ab12", text)
	assert.Equal(t, sampleImage, got)
}

func TestSafe_ErrorYieldsEmpty(t *testing.T) {
	solver := SolverFunc(func(context.Context, []byte) (string, error) {
		return "partial", errors.New("model not loaded")
	})

	assert.Empty(t, NewSafe(solver, nil).Recognize(context.Background(), sampleImage))
}

func TestSafe_PanicYieldsEmpty(t *testing.T) {
	solver := SolverFunc(func(context.Context, []byte) (string, error) {
		panic("corrupt image")
	})

	assert.NotPanics(t, func() {
		assert.Empty(t, NewSafe(solver, zaptest.NewLogger(t)).Recognize(context.Background(), sampleImage))
	})
}

func TestSafe_EmptyImageSkipsSolver(t *testing.T) {
	called := false
	solver := SolverFunc(func(context.Context, []byte) (string, error) {
		called = true
		return "x", nil
	})

	assert.Empty(t, NewSafe(solver, nil).Recognize(context.Background(), nil))
	assert.False(t, called)
}
