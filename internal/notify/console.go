package notify

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"hsr-booker/internal/schedule"
)

// Console writes human-readable progress to a terminal. On success it keeps
// the browser open until the user presses Enter.
type Console struct {
	out         io.Writer
	in          io.Reader
	interactive bool

	ok   *color.Color
	bad  *color.Color
	info *color.Color
}

// NewConsole returns a Console on stdout that prompts on stdin when stdin is a terminal.
func NewConsole() *Console {
	return NewConsoleWith(os.Stdout, os.Stdin, term.IsTerminal(int(os.Stdin.Fd())))
}

// NewConsoleWith returns a Console on the given streams. The close prompt is
// only shown when interactive is true.
func NewConsoleWith(out io.Writer, in io.Reader, interactive bool) *Console {
	return &Console{
		out:         out,
		in:          in,
		interactive: interactive,
		ok:          color.New(color.FgGreen, color.Bold),
		bad:         color.New(color.FgRed, color.Bold),
		info:        color.New(color.FgCyan),
	}
}

var _ Sink = (*Console)(nil)

func (c *Console) Progress(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *Console) Scheduled(at time.Time, remaining time.Duration) {
	c.info.Fprintln(c.out, "Scheduled Execution Mode")
	fmt.Fprintf(c.out, "Trigger time: %s\n", at.Format(schedule.DisplayLayout))
	fmt.Fprintf(c.out, "Time until execution: %s\n", schedule.FormatCountdown(remaining))
	fmt.Fprintln(c.out, "Press Ctrl+C to cancel...")
}

func (c *Console) Remaining(remaining time.Duration) {
	c.info.Fprintf(c.out, "Time remaining: %s\n", schedule.FormatCountdown(remaining))
}

func (c *Console) Cancelled() {
	c.bad.Fprintln(c.out, "\nCancelled by user")
}

func (c *Console) Succeeded() {
	banner := strings.Repeat("=", 50)
	fmt.Fprintln(c.out, "\n"+banner)
	c.ok.Fprintln(c.out, "BOOKING COMPLETE!")
	fmt.Fprintln(c.out, banner)
	fmt.Fprintln(c.out, "\nPlease check the page for your booking confirmation.")
	if !c.interactive {
		return
	}
	fmt.Fprintln(c.out, "Press Enter to close the browser...")
	c.waitForEnter()
}

// waitForEnter consumes input up to and including the next newline. It reads
// byte by byte so nothing past the line is taken from in.
func (c *Console) waitForEnter() {
	b := make([]byte, 1)
	for {
		n, err := c.in.Read(b)
		if (n == 1 && b[0] == '\n') || err != nil {
			return
		}
	}
}

func (c *Console) Failed(reason string) {
	c.bad.Fprintf(c.out, "Booking failed: %s\n", reason)
}

func (c *Console) Finished() {
	fmt.Fprintln(c.out, "Assistant finished.")
}
