// Package booking drives the ticket booking form from the search page to the
// reservation confirmation.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hsr-booker/internal/browser"
	"hsr-booker/internal/captcha"
	"hsr-booker/internal/config"
	"hsr-booker/internal/notify"
	"hsr-booker/internal/schedule"
)

// Page timeouts.
const (
	pageLoadTimeout    = 60 * time.Second
	cookieTimeout      = 2 * time.Second
	errorTimeout       = 1 * time.Second
	stepVisibleTimeout = 2 * time.Second
	trainListTimeout   = 10 * time.Second
)

// Delays are the settle pauses inserted after actions whose effect on the
// page is asynchronous.
type Delays struct {
	AfterCaptchaFill    time.Duration
	AfterSubmit         time.Duration
	CaptchaRefresh      time.Duration
	AfterTrainConfirm   time.Duration
	AfterBookingConfirm time.Duration
}

// DefaultDelays returns the delays used against the live site.
func DefaultDelays() Delays {
	return Delays{
		AfterCaptchaFill:    500 * time.Millisecond,
		AfterSubmit:         time.Second,
		CaptchaRefresh:      time.Second,
		AfterTrainConfirm:   time.Second,
		AfterBookingConfirm: 2 * time.Second,
	}
}

// Options tune a Workflow. The zero value is usable.
type Options struct {
	Logger     *zap.Logger
	Classifier Classifier
	// Delays defaults to DefaultDelays when zero.
	Delays Delays
	// Sleep performs settle delays, time.Sleep by default.
	Sleep  func(time.Duration)
	Waiter schedule.Waiter
	Now    func() time.Time
}

// Workflow runs one booking. It exclusively owns the browser session it
// launches and is not safe for concurrent use.
type Workflow struct {
	cfg      config.Config
	launcher browser.Launcher
	solver   *captcha.Safe
	sink     notify.Sink

	logger   *zap.Logger
	classify Classifier
	delays   Delays
	sleep    func(time.Duration)
	waiter   schedule.Waiter
	now      func() time.Time
}

// New returns a Workflow for cfg.
func New(cfg config.Config, launcher browser.Launcher, solver captcha.Solver, sink notify.Sink, opts Options) *Workflow {
	w := &Workflow{
		cfg:      cfg,
		launcher: launcher,
		sink:     sink,
		logger:   opts.Logger,
		classify: opts.Classifier,
		delays:   opts.Delays,
		sleep:    opts.Sleep,
		waiter:   opts.Waiter,
		now:      opts.Now,
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	w.logger = w.logger.Named("booking")
	if w.classify == nil {
		w.classify = DefaultClassifier
	}
	if w.delays == (Delays{}) {
		w.delays = DefaultDelays()
	}
	if w.sleep == nil {
		w.sleep = time.Sleep
	}
	if w.now == nil {
		w.now = time.Now
	}
	w.solver = captcha.NewSafe(solver, w.logger)
	return w
}

// Run waits for the configured trigger time, if any, and then books.
//
// The returned error is non-nil only when the run never reached the browser:
// an invalid or past trigger time (wrapping schedule.ErrInvalidFormat or
// schedule.ErrAlreadyPassed) or a cancelled wait (schedule.ErrCancelled).
// Otherwise the Outcome tells whether the booking succeeded. Every outcome is
// also reported to the sink exactly once.
func (w *Workflow) Run(ctx context.Context) (Outcome, error) {
	logger := w.logger.With(zap.String("run_id", uuid.NewString()))

	if w.cfg.TriggerTime != "" {
		at, err := schedule.Parse(w.cfg.TriggerTime, w.now())
		if err != nil {
			logger.Error("Invalid trigger time.", zap.String("trigger_time", w.cfg.TriggerTime), zap.Error(err))
			w.sink.Failed(err.Error())
			return Outcome{}, err
		}
		logger.Info("Waiting for trigger time.", zap.Time("trigger_at", at))
		if err := w.waiter.WaitUntil(ctx, at, w.sink); err != nil {
			logger.Info("Wait cancelled.", zap.Error(err))
			return Outcome{}, err
		}
	}

	// Interrupts only cancel the wait. Once the browser is up the run goes to
	// the end so the session is always released through the normal exit.
	out := w.book(context.WithoutCancel(ctx), logger)
	if out.Succeeded() {
		logger.Info("Booking complete.")
	} else {
		logger.Warn("Booking failed.",
			zap.Stringer("kind", out.Failure.Kind),
			zap.String("reason", out.Failure.Reason),
			zap.Error(out.Failure.Err))
	}
	return out, nil
}

// book launches the browser and drives the form. Every exit path reports the
// outcome once and then closes the session once.
func (w *Workflow) book(ctx context.Context, logger *zap.Logger) (out Outcome) {
	w.sink.Progress("Launching browser...")
	session, err := w.launcher.Launch(ctx, browser.DefaultLaunchOptions(
		w.cfg.Browser.Headless,
		time.Duration(w.cfg.Browser.SlowMo)*time.Millisecond,
	))
	if err != nil {
		out = fail(&Failure{Kind: KindResource, Reason: "browser launch failure", Err: err})
		w.sink.Failed(out.Failure.Error())
		w.sink.Finished()
		return out
	}
	w.sink.Progress("Browser launched successfully.")

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Booking panicked.", zap.Any("panic", r), zap.StackSkip("stack", 1))
			out = fail(&Failure{Kind: KindResource, Reason: fmt.Sprintf("unexpected error: %v", r)})
		}
		if out.Succeeded() {
			w.sink.Succeeded()
		} else {
			w.sink.Failed(out.Failure.Error())
		}
		if err := session.Close(); err != nil {
			logger.Warn("Failed to release browser.", zap.Error(err))
		}
		w.sink.Finished()
	}()

	if err := w.drive(ctx, session.Page(), logger); err != nil {
		var f *Failure
		if !errors.As(err, &f) {
			f = &Failure{Kind: KindResource, Reason: "unexpected error", Err: err}
		}
		return fail(f)
	}
	return Outcome{}
}

// drive walks the booking steps in order, stopping at the first failure.
func (w *Workflow) drive(ctx context.Context, page browser.Page, logger *zap.Logger) error {
	if err := w.openPage(page, logger); err != nil {
		return err
	}
	w.dismissCookieDialog(page, logger)

	if err := w.fillSearchForm(page, logger); err != nil {
		return err
	}
	if err := w.submitWithCaptcha(ctx, page, logger); err != nil {
		return err
	}

	if err := w.selectFirstTrain(page, logger); err != nil {
		return err
	}
	if err := w.confirmTrain(page); err != nil {
		return err
	}

	if !isVisible(page, selStep3Form, stepVisibleTimeout) {
		return &Failure{Kind: KindForm, Reason: "passenger info page not reached"}
	}
	if err := w.fillPassengerInfo(page, logger); err != nil {
		return err
	}
	return w.confirmBooking(page)
}

func fail(f *Failure) Outcome { return Outcome{Failure: f} }
