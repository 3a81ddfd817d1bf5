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
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// SpinnerSink shows a spinner on stderr while waiting on the node and
// prints a line for every completed stage
type SpinnerSink struct {
	mu         sync.Mutex
	spinner    *spinner.Spinner
	out        io.Writer
	stage      string
	stageStart time.Time
	waiting    string // message of the running spinner stage
}

// NewSpinnerSink creates a new spinner-based progress sink
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

	if event.Stage != r.stage {
		r.completeStage()
		r.stage = event.Stage
		r.stageStart = time.Now()
	}

	if event.Spinner {
		r.waiting = event.Message
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// completeStage prints the stage that just finished. Only stages that
// waited on the node are worth a line.
func (r *SpinnerSink) completeStage() {
	if r.waiting == "" {
		return
	}
	if r.spinner.Active() {
		r.spinner.Stop()
	}

	elapsed := time.Since(r.stageStart).Round(time.Millisecond)
	fmt.Fprintf(r.out, "%s %s %s\n", color.GreenString("✓"), r.waiting, color.New(color.Faint).Sprintf("(%s)", elapsed))
	r.waiting = ""
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.withSpinnerPaused(func() {
		color.New(color.FgCyan).Fprintln(r.out, message)
	})
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.withSpinnerPaused(func() {
		color.New(color.FgRed).Fprintln(r.out, message)
	})
}

func (r *SpinnerSink) withSpinnerPaused(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	fn()
	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
