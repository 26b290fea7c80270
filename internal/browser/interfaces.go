// Package browser is the page driver used by the booking workflow: a
// handle to one browser tab with navigation, element lookup and actions.
package browser

import (
	"context"
	"time"
)

// LaunchOptions configures a new browser session.
type LaunchOptions struct {
	Headless bool
	// SlowMo is inserted between browser operations.
	SlowMo    time.Duration
	UserAgent string
	Viewport  Viewport
	Args      []string
}

// Viewport is the page size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// Launcher starts browser sessions.
type Launcher interface {
	Launch(ctx context.Context, opts LaunchOptions) (Session, error)
}

// Session owns a browser and the single page opened in it.
type Session interface {
	Page() Page
	// Close releases the browser and the driver process behind it.
	Close() error
}

// Page is a single browser tab.
type Page interface {
	Goto(url string, timeout time.Duration) error
	WaitForDOMReady() error
	WaitForSelector(selector string, timeout time.Duration) error
	Locator(selector string) Locator
	// Evaluate runs expression in the page with arg passed to it.
	Evaluate(expression string, arg any) error
}

// Locator resolves to zero or more elements matching a selector.
type Locator interface {
	First() Locator
	Count() (int, error)
	IsVisible(timeout time.Duration) (bool, error)
	IsChecked() (bool, error)
	Click() error
	Fill(value string) error
	SelectOption(value string) error
	InnerText() (string, error)
	InputValue() (string, error)
	GetAttribute(name string) (string, error)
	Screenshot() ([]byte, error)
}
