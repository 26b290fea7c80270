// Package captcha turns a captcha image into its best-effort text.
package captcha

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Solver recognizes the text in a captcha image.
type Solver interface {
	Solve(ctx context.Context, image []byte) (string, error)
}

// SolverFunc adapts a function to Solver.
type SolverFunc func(ctx context.Context, image []byte) (string, error)

// Solve calls f.
func (f SolverFunc) Solve(ctx context.Context, image []byte) (string, error) {
	return f(ctx, image)
}

// Safe wraps a Solver so that failures never cross its boundary: errors and
// panics are logged and reported as an empty answer.
type Safe struct {
	solver Solver
	logger *zap.Logger
}

// NewSafe returns a Safe around solver.
func NewSafe(solver Solver, logger *zap.Logger) *Safe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Safe{solver: solver, logger: logger.Named("captcha")}
}

// Recognize returns the recognized text with surrounding whitespace removed,
// or "" when recognition failed.
func (s *Safe) Recognize(ctx context.Context, image []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("OCR panicked.", zap.String("panic", fmt.Sprint(r)))
			text = ""
		}
	}()

	if len(image) == 0 {
		s.logger.Warn("Empty captcha image.")
		return ""
	}
	res, err := s.solver.Solve(ctx, image)
	if err != nil {
		s.logger.Warn("OCR error.", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(res)
}
