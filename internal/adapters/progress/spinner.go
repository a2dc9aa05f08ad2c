package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/chaincfg/internal/usecase"
)

// SpinnerSink reports progress with a terminal spinner
type SpinnerSink struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	out     io.Writer
}

// NewSpinnerSink creates a new spinner-based progress sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !event.Spinner {
		r.spinner.Stop()
		if event.Message != "" {
			fmt.Fprintln(r.out, event.Message)
		}
		return
	}

	r.spinner.Suffix = " " + event.Message
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.println(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.println(color.New(color.FgRed), message)
}

// Done stops the spinner
func (r *SpinnerSink) Done() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spinner.Stop()
}

func (r *SpinnerSink) println(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stop spinner temporarily
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
