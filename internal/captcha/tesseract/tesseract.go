// Package tesseract implements a captcha solver on the Tesseract OCR engine.
package tesseract

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/otiai10/gosseract/v2"
)

// Whitelist restricts recognition to the characters the booking captcha uses.
const Whitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Solver recognizes captcha text with Tesseract. A Solver is not safe for
// concurrent use.
type Solver struct {
	client *gosseract.Client
}

// New creates a Solver for the given tesseract language, e.g. "eng".
func New(language string) (*Solver, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			client.Close()
			return nil, fmt.Errorf("set language %q: %w", language, err)
		}
	}
	if err := client.SetWhitelist(Whitelist); err != nil {
		client.Close()
		return nil, fmt.Errorf("set whitelist: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_WORD); err != nil {
		client.Close()
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}
	return &Solver{client: client}, nil
}

// Solve returns the recognized text with whitespace stripped.
func (s *Solver) Solve(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("load captcha image: %w", err)
	}
	text, err := s.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize captcha: %w", err)
	}
	return normalize(text), nil
}

// Close releases the underlying tesseract handle.
func (s *Solver) Close() error {
	return s.client.Close()
}

func normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, text)
}
