package booking

import (
	"context"
	"errors"
	"time"

	"hsr-booker/internal/browser"
)

// fakePage is a scripted page. Element state lives in maps keyed by selector;
// onClick hooks let a test change the page in response to an action.
type fakePage struct {
	gotoErr   error
	domErr    error
	listErr   error
	failClick map[string]error
	panicOn   string

	visible map[string]bool
	visErr  map[string]error
	checked map[string]bool
	texts   map[string]string
	counts  map[string]int
	attrs   map[string]map[string]string
	inputs  map[string]string
	onClick map[string]func()
	shot    []byte

	gotos   []string
	clicks  []string
	fills   []fillCall
	selects map[string]string
	evals   []any
	shots   int
}

type fillCall struct {
	selector string
	value    string
}

func newFakePage() *fakePage {
	return &fakePage{
		failClick: map[string]error{},
		visible:   map[string]bool{},
		visErr:    map[string]error{},
		checked:   map[string]bool{},
		texts:     map[string]string{},
		counts:    map[string]int{},
		attrs:     map[string]map[string]string{},
		inputs:    map[string]string{},
		onClick:   map[string]func(){},
		selects:   map[string]string{},
		shot:      []byte("captcha-png"),
	}
}

func (p *fakePage) Goto(url string, _ time.Duration) error {
	p.gotos = append(p.gotos, url)
	return p.gotoErr
}

func (p *fakePage) WaitForDOMReady() error { return p.domErr }

func (p *fakePage) WaitForSelector(string, time.Duration) error { return p.listErr }

func (p *fakePage) Locator(selector string) browser.Locator {
	return &fakeLocator{page: p, selector: selector}
}

func (p *fakePage) Evaluate(_ string, arg any) error {
	p.evals = append(p.evals, arg)
	return nil
}

func (p *fakePage) clicksOn(selector string) int {
	n := 0
	for _, c := range p.clicks {
		if c == selector {
			n++
		}
	}
	return n
}

func (p *fakePage) filled(selector string) (string, bool) {
	for _, f := range p.fills {
		if f.selector == selector {
			return f.value, true
		}
	}
	return "", false
}

type fakeLocator struct {
	page     *fakePage
	selector string
}

func (l *fakeLocator) check() {
	if l.page.panicOn == l.selector {
		panic("driver crashed on " + l.selector)
	}
}

func (l *fakeLocator) First() browser.Locator { return l }

func (l *fakeLocator) Count() (int, error) {
	l.check()
	return l.page.counts[l.selector], nil
}

func (l *fakeLocator) IsVisible(time.Duration) (bool, error) {
	l.check()
	if err := l.page.visErr[l.selector]; err != nil {
		return false, err
	}
	return l.page.visible[l.selector], nil
}

func (l *fakeLocator) IsChecked() (bool, error) {
	l.check()
	return l.page.checked[l.selector], nil
}

func (l *fakeLocator) Click() error {
	l.check()
	if err := l.page.failClick[l.selector]; err != nil {
		return err
	}
	l.page.clicks = append(l.page.clicks, l.selector)
	if hook := l.page.onClick[l.selector]; hook != nil {
		hook()
	}
	return nil
}

func (l *fakeLocator) Fill(value string) error {
	l.check()
	l.page.fills = append(l.page.fills, fillCall{l.selector, value})
	l.page.inputs[l.selector] = value
	return nil
}

func (l *fakeLocator) SelectOption(value string) error {
	l.check()
	l.page.selects[l.selector] = value
	return nil
}

func (l *fakeLocator) InnerText() (string, error) {
	l.check()
	return l.page.texts[l.selector], nil
}

func (l *fakeLocator) InputValue() (string, error) {
	l.check()
	return l.page.inputs[l.selector], nil
}

func (l *fakeLocator) GetAttribute(name string) (string, error) {
	l.check()
	v, ok := l.page.attrs[l.selector][name]
	if !ok {
		return "", errors.New("no attribute " + name)
	}
	return v, nil
}

func (l *fakeLocator) Screenshot() ([]byte, error) {
	l.check()
	l.page.shots++
	return l.page.shot, nil
}

type fakeSession struct {
	page   *fakePage
	closes int
}

func (s *fakeSession) Page() browser.Page { return s.page }

func (s *fakeSession) Close() error {
	s.closes++
	return nil
}

type fakeLauncher struct {
	session  *fakeSession
	err      error
	launches int
	opts     browser.LaunchOptions
}

func (l *fakeLauncher) Launch(_ context.Context, opts browser.LaunchOptions) (browser.Session, error) {
	l.launches++
	l.opts = opts
	if l.err != nil {
		return nil, l.err
	}
	return l.session, nil
}

// recordingSink records every notification.
type recordingSink struct {
	progress  []string
	scheduled int
	remaining int
	cancelled int
	successes int
	failures  []string
	finished  int
}

func (s *recordingSink) Progress(msg string) { s.progress = append(s.progress, msg) }
func (s *recordingSink) Scheduled(time.Time, time.Duration) { s.scheduled++ }
func (s *recordingSink) Remaining(time.Duration) { s.remaining++ }
func (s *recordingSink) Cancelled() { s.cancelled++ }
func (s *recordingSink) Succeeded() { s.successes++ }
func (s *recordingSink) Failed(reason string) { s.failures = append(s.failures, reason) }
func (s *recordingSink) Finished() { s.finished++ }
