package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// DefaultUserAgent is presented by launched browsers instead of the headless default.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultLaunchOptions returns the options used for booking sessions.
func DefaultLaunchOptions(headless bool, slowMo time.Duration) LaunchOptions {
	return LaunchOptions{
		Headless:  headless,
		SlowMo:    slowMo,
		UserAgent: DefaultUserAgent,
		Viewport:  Viewport{Width: 1280, Height: 800},
		Args:      []string{"--disable-blink-features=AutomationControlled"},
	}
}

// IsTimeout reports whether err is a driver timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, playwright.ErrTimeout)
}

// PlaywrightLauncher launches Chromium through playwright-go.
type PlaywrightLauncher struct {
	logger *zap.Logger
}

// NewPlaywrightLauncher returns a launcher that logs to logger.
func NewPlaywrightLauncher(logger *zap.Logger) *PlaywrightLauncher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlaywrightLauncher{logger: logger.Named("browser")}
}

var _ Launcher = (*PlaywrightLauncher)(nil)

// Launch starts the playwright driver, a Chromium browser, a context and one page.
// Anything started before a failure is torn down again.
func (l *PlaywrightLauncher) Launch(ctx context.Context, opts LaunchOptions) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
		Args:     opts.Args,
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{}
	if opts.UserAgent != "" {
		contextOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	if opts.Viewport.Width > 0 && opts.Viewport.Height > 0 {
		contextOpts.Viewport = &playwright.Size{Width: opts.Viewport.Width, Height: opts.Viewport.Height}
	}
	bctx, err := browser.NewContext(contextOpts)
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("could not create context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	l.logger.Debug("Browser launched.", zap.Bool("headless", opts.Headless), zap.Duration("slow_mo", opts.SlowMo))
	return &playwrightSession{pw: pw, browser: browser, page: &playwrightPage{page: page}, logger: l.logger}, nil
}

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    *playwrightPage
	logger  *zap.Logger
}

func (s *playwrightSession) Page() Page { return s.page }

func (s *playwrightSession) Close() error {
	var errs []error
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("could not close browser: %w", err))
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("could not stop playwright: %w", err))
		}
	}
	s.logger.Debug("Browser closed.")
	return errors.Join(errs...)
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Goto(url string, timeout time.Duration) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   milliseconds(timeout),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (p *playwrightPage) WaitForDOMReady() error {
	return p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	})
}

func (p *playwrightPage) WaitForSelector(selector string, timeout time.Duration) error {
	_, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: milliseconds(timeout),
	})
	return err
}

func (p *playwrightPage) Locator(selector string) Locator {
	return &playwrightLocator{loc: p.page.Locator(selector)}
}

func (p *playwrightPage) Evaluate(expression string, arg any) error {
	_, err := p.page.Evaluate(expression, arg)
	return err
}

type playwrightLocator struct {
	loc playwright.Locator
}

func (l *playwrightLocator) First() Locator { return &playwrightLocator{loc: l.loc.First()} }

func (l *playwrightLocator) Count() (int, error) { return l.loc.Count() }

func (l *playwrightLocator) IsVisible(timeout time.Duration) (bool, error) {
	return l.loc.IsVisible(playwright.LocatorIsVisibleOptions{Timeout: milliseconds(timeout)})
}

func (l *playwrightLocator) IsChecked() (bool, error) { return l.loc.IsChecked() }

func (l *playwrightLocator) Click() error { return l.loc.Click() }

func (l *playwrightLocator) Fill(value string) error { return l.loc.Fill(value) }

func (l *playwrightLocator) SelectOption(value string) error {
	_, err := l.loc.SelectOption(playwright.SelectOptionValues{Values: &[]string{value}})
	return err
}

func (l *playwrightLocator) InnerText() (string, error) { return l.loc.InnerText() }

func (l *playwrightLocator) InputValue() (string, error) { return l.loc.InputValue() }

func (l *playwrightLocator) GetAttribute(name string) (string, error) {
	return l.loc.GetAttribute(name)
}

func (l *playwrightLocator) Screenshot() ([]byte, error) { return l.loc.Screenshot() }

func milliseconds(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}
