package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"hsr-booker/internal/booking"
	"hsr-booker/internal/browser"
	"hsr-booker/internal/captcha"
	"hsr-booker/internal/captcha/tesseract"
	"hsr-booker/internal/config"
	"hsr-booker/internal/notify"
	"hsr-booker/internal/observability"
	"hsr-booker/internal/schedule"
)

// Exit codes.
const (
	exitOK          = 0
	exitConfigError = 1
)

// ocr is a captcha solver holding native resources.
type ocr interface {
	captcha.Solver
	Close() error
}

// app holds the collaborators run builds the workflow from.
type app struct {
	stdout io.Writer
	stderr io.Writer

	initLogger  func(config.LoggerConfig) *zap.Logger
	newSolver   func(language string) (ocr, error)
	newLauncher func(*zap.Logger) browser.Launcher
	newSink     func() notify.Sink
}

func defaultApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		initLogger: func(cfg config.LoggerConfig) *zap.Logger {
			observability.InitializeLogger(cfg)
			return observability.GetLogger()
		},
		newSolver: func(language string) (ocr, error) { return tesseract.New(language) },
		newLauncher: func(logger *zap.Logger) browser.Launcher {
			return browser.NewPlaywrightLauncher(logger)
		},
		newSink: func() notify.Sink { return notify.NewConsole() },
	}
}

func main() {
	os.Exit(defaultApp().run(context.Background()))
}

// run returns the process exit code. A finished booking exits 0 whether it
// succeeded or not, and so does a cancelled wait.
func (a *app) run(parent context.Context) int {
	fmt.Fprintln(a.stdout, "Starting HSR Booking Assistant...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(a.stderr, "\nError: %v\n", err)
		return exitConfigError
	}

	logger := a.initLogger(cfg.Logger)
	defer observability.Sync()

	// Ctrl+C is only honoured while waiting for the trigger time; once the
	// browser is driving the form the run finishes on its own.
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	solver, err := a.newSolver(cfg.Captcha.Language)
	if err != nil {
		logger.Error("Could not initialise OCR.", zap.Error(err))
		return exitConfigError
	}
	defer solver.Close()

	wf := booking.New(*cfg, a.newLauncher(logger), solver, a.newSink(), booking.Options{
		Logger: logger,
	})
	_, err = wf.Run(ctx)
	switch {
	case errors.Is(err, schedule.ErrCancelled):
		return exitOK
	case err != nil:
		return exitConfigError
	}
	return exitOK
}
