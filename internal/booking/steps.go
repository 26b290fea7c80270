package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"hsr-booker/internal/browser"
	"hsr-booker/internal/config"
)

func (w *Workflow) openPage(page browser.Page, logger *zap.Logger) error {
	w.sink.Progress(fmt.Sprintf("Navigating to %s...", w.cfg.BaseURL))
	if err := page.Goto(w.cfg.BaseURL, pageLoadTimeout); err != nil {
		if browser.IsTimeout(err) {
			logger.Error("Page load timed out.", zap.Duration("timeout", pageLoadTimeout))
		}
		return &Failure{Kind: KindNavigation, Reason: "page load failure", Err: err}
	}
	if err := page.WaitForDOMReady(); err != nil {
		return &Failure{Kind: KindNavigation, Reason: "page load failure", Err: err}
	}
	w.sink.Progress("Page loaded successfully!")
	return nil
}

// dismissCookieDialog closes the consent banner when it shows up. Its absence
// is normal.
func (w *Workflow) dismissCookieDialog(page browser.Page, logger *zap.Logger) {
	btn := page.Locator(selCookieAccept)
	visible, err := btn.IsVisible(cookieTimeout)
	if err != nil || !visible {
		return
	}
	if err := btn.Click(); err != nil {
		logger.Debug("Cookie dialog click failed.", zap.Error(err))
		return
	}
	w.sink.Progress("Cookie dialog dismissed.")
}

func (w *Workflow) fillSearchForm(page browser.Page, logger *zap.Logger) error {
	w.sink.Progress("--- Filling Booking Form ---")
	trip := w.cfg.Trip

	w.sink.Progress("Selecting departure station: " + config.StationName(trip.StartStation))
	if err := page.Locator(selStartStation).SelectOption(trip.StartStation); err != nil {
		return fmt.Errorf("select start station: %w", err)
	}
	w.sink.Progress("Selecting destination station: " + config.StationName(trip.EndStation))
	if err := page.Locator(selEndStation).SelectOption(trip.EndStation); err != nil {
		return fmt.Errorf("select end station: %w", err)
	}

	if trip.TravelDate != "" {
		w.sink.Progress("Setting departure date: " + trip.TravelDate)
		// The picker hides the real input, so typing into it has no effect.
		if err := page.Evaluate(setDateScript, []any{selDepartureDate, trip.TravelDate}); err != nil {
			return fmt.Errorf("set departure date: %w", err)
		}
	}
	if trip.TravelTime != "" {
		code := config.TimeCode(trip.TravelTime)
		w.sink.Progress(fmt.Sprintf("Setting departure time: %s (%s)", trip.TravelTime, code))
		if err := page.Locator(selDepartureTime).SelectOption(code); err != nil {
			return fmt.Errorf("select departure time: %w", err)
		}
	}

	tickets := w.cfg.Tickets
	w.sink.Progress(fmt.Sprintf("Setting adult tickets: %d", tickets.Adult))
	if err := page.Locator(selAdultTickets).SelectOption(fmt.Sprintf("%dF", tickets.Adult)); err != nil {
		return fmt.Errorf("select adult tickets: %w", err)
	}
	// Only the adult selector is filled; other fare classes are accepted in
	// the configuration but not applied to the form.
	for _, fare := range []struct {
		class string
		count int
	}{
		{"child", tickets.Child},
		{"disabled", tickets.Disabled},
		{"elder", tickets.Elder},
		{"student", tickets.Student},
	} {
		if fare.count > 0 {
			logger.Warn("Fare class not applied to the form.", zap.String("class", fare.class), zap.Int("count", fare.count))
		}
	}

	w.sink.Progress("Form filled successfully!")
	return nil
}

// submitWithCaptcha solves and submits the captcha until the train selection
// page appears, at most Captcha.MaxAttempts times. Only captcha rejections are
// retried.
func (w *Workflow) submitWithCaptcha(ctx context.Context, page browser.Page, logger *zap.Logger) error {
	maxAttempts := w.cfg.Captcha.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		w.sink.Progress(fmt.Sprintf("=== Attempt %d/%d ===", attempt, maxAttempts))
		if err := w.solveCaptcha(ctx, page, logger); err != nil {
			return err
		}

		w.sink.Progress("--- Submitting Form ---")
		if err := page.Locator(selSubmit).Click(); err != nil {
			return fmt.Errorf("submit search form: %w", err)
		}
		if err := page.WaitForDOMReady(); err != nil {
			return fmt.Errorf("wait after submit: %w", err)
		}
		w.sleep(w.delays.AfterSubmit)

		if isVisible(page, selStep2Form, stepVisibleTimeout) {
			w.sink.Progress("Successfully reached train selection page!")
			return nil
		}

		message := readErrorMessage(page)
		class := w.classify(message)
		logger.Info("Search form rejected.",
			zap.Int("attempt", attempt),
			zap.String("message", message),
			zap.Stringer("class", class))

		switch class {
		case ClassCaptcha:
			w.sink.Progress("Captcha error - refreshing and retrying...")
			if err := page.Locator(selCaptchaReload).Click(); err != nil {
				return fmt.Errorf("refresh captcha: %w", err)
			}
			w.sleep(w.delays.CaptchaRefresh)
		case ClassFatal:
			return &Failure{Kind: KindForm, Reason: "non-captcha error: " + message}
		default:
			return &Failure{Kind: KindForm, Reason: "unknown error after form submission"}
		}
	}
	return &Failure{Kind: KindCaptcha, Reason: "captcha attempts exhausted"}
}

func (w *Workflow) solveCaptcha(ctx context.Context, page browser.Page, logger *zap.Logger) error {
	w.sink.Progress("--- Solving Captcha ---")
	image, err := page.Locator(selCaptchaImage).Screenshot()
	if err != nil {
		return fmt.Errorf("capture captcha: %w", err)
	}

	answer := w.solver.Recognize(ctx, image)
	w.sink.Progress("Captcha recognized: " + answer)

	input := page.Locator(selCaptchaInput)
	if err := input.Fill(answer); err != nil {
		return fmt.Errorf("fill captcha: %w", err)
	}
	w.sleep(w.delays.AfterCaptchaFill)

	if filled, err := input.InputValue(); err == nil {
		logger.Debug("Captcha input filled.", zap.String("value", filled))
	}
	return nil
}

// TrainInfo describes the selected train. It is informational only.
type TrainInfo struct {
	Code      string
	Departure string
	Arrival   string
}

// selectFirstTrain picks the first train in the result list, clicking it only
// when it is not already the checked option.
func (w *Workflow) selectFirstTrain(page browser.Page, logger *zap.Logger) error {
	w.sink.Progress("--- Selecting Train ---")
	if err := page.WaitForSelector(selTrainList, trainListTimeout); err != nil {
		return &Failure{Kind: KindForm, Reason: "train list not rendered", Err: err}
	}

	trains := page.Locator(selTrainRadio)
	count, err := trains.Count()
	if err != nil {
		return fmt.Errorf("count trains: %w", err)
	}
	w.sink.Progress(fmt.Sprintf("Found %d available trains", count))
	if count == 0 {
		return &Failure{Kind: KindForm, Reason: "no trains available"}
	}

	first := trains.First()
	checked, err := first.IsChecked()
	if err != nil {
		return fmt.Errorf("read train selection: %w", err)
	}
	if !checked {
		if err := first.Click(); err != nil {
			return fmt.Errorf("select train: %w", err)
		}
	}

	info := TrainInfo{
		Code:      attribute(first, "QueryCode"),
		Departure: attribute(first, "QueryDeparture"),
		Arrival:   attribute(first, "QueryArrival"),
	}
	logger.Info("Train selected.",
		zap.String("code", info.Code),
		zap.String("departure", info.Departure),
		zap.String("arrival", info.Arrival),
		zap.Bool("was_default", checked))
	w.sink.Progress(fmt.Sprintf("Selected train: %s (%s → %s)", info.Code, info.Departure, info.Arrival))
	return nil
}

func (w *Workflow) confirmTrain(page browser.Page) error {
	w.sink.Progress("Confirming train selection...")
	if err := page.Locator(selConfirmTrain).Click(); err != nil {
		return fmt.Errorf("confirm train: %w", err)
	}
	if err := page.WaitForDOMReady(); err != nil {
		return fmt.Errorf("wait after train confirm: %w", err)
	}
	w.sleep(w.delays.AfterTrainConfirm)
	w.sink.Progress("Train confirmed!")
	return nil
}

// fillPassengerInfo enters the non-empty identity fields and ticks the
// agreement box if it is not ticked yet.
func (w *Workflow) fillPassengerInfo(page browser.Page, logger *zap.Logger) error {
	w.sink.Progress("--- Filling Passenger Info ---")
	p := w.cfg.Passenger

	fields := []struct {
		selector string
		value    string
		shown    string
	}{
		{selPassengerID, p.ID, "ID: " + mask(p.ID, 3)},
		{selPassengerPhone, p.Phone, "phone: " + mask(p.Phone, 4)},
		{selPassengerEmail, p.Email, "email: " + p.Email},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		w.sink.Progress("Filling " + f.shown)
		if err := page.Locator(f.selector).Fill(f.value); err != nil {
			return fmt.Errorf("fill %s: %w", f.selector, err)
		}
	}

	w.sink.Progress("Checking agreement checkbox...")
	agree := page.Locator(selAgree)
	checked, err := agree.IsChecked()
	if err != nil {
		return fmt.Errorf("read agreement checkbox: %w", err)
	}
	if !checked {
		if err := agree.Click(); err != nil {
			return fmt.Errorf("check agreement: %w", err)
		}
	}
	logger.Debug("Passenger info filled.", zap.Bool("agreement_was_checked", checked))
	w.sink.Progress("Passenger info filled!")
	return nil
}

func (w *Workflow) confirmBooking(page browser.Page) error {
	w.sink.Progress("--- Confirming Booking ---")
	if err := page.Locator(selConfirmBooking).Click(); err != nil {
		return fmt.Errorf("confirm booking: %w", err)
	}
	if err := page.WaitForDOMReady(); err != nil {
		return fmt.Errorf("wait after booking confirm: %w", err)
	}
	w.sleep(w.delays.AfterBookingConfirm)
	w.sink.Progress("Booking confirmed!")
	return nil
}

// isVisible treats lookup errors as not visible.
func isVisible(page browser.Page, selector string, timeout time.Duration) bool {
	visible, err := page.Locator(selector).IsVisible(timeout)
	return err == nil && visible
}

// readErrorMessage returns the site's error text, or "" when none is shown.
func readErrorMessage(page browser.Page) string {
	el := page.Locator(selErrorMessage)
	visible, err := el.IsVisible(errorTimeout)
	if err != nil || !visible {
		return ""
	}
	text, err := el.InnerText()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func attribute(l browser.Locator, name string) string {
	v, err := l.GetAttribute(name)
	if err != nil {
		return ""
	}
	return v
}

// mask keeps the first n characters of s.
func mask(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "***"
}
