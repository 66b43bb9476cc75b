package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// SpinnerSink reports progress with a terminal spinner. When not interactive it
// prints each stage message on its own line instead.
type SpinnerSink struct {
	out         io.Writer
	interactive bool
	spinner     *spinner.Spinner
	stage       usecase.ExecutionStage
}

// NewSpinnerSink creates a new spinner progress sink writing to out
func NewSpinnerSink(out io.Writer, interactive bool) *SpinnerSink {
	return &SpinnerSink{
		out:         out,
		interactive: interactive,
	}
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.stage = event.Stage

	if !s.interactive {
		if event.Message != "" {
			fmt.Fprintln(s.out, event.Message)
		}
		return
	}

	if event.Stage == usecase.StageCompleted || !event.Spinner {
		s.stop()
		return
	}

	if s.spinner == nil {
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(s.out))
		_ = s.spinner.Color("cyan", "bold")
	}
	s.spinner.Suffix = " " + event.Message
	if !s.spinner.Active() {
		s.spinner.Start()
	}
}

func (s *SpinnerSink) stop() {
	if s.spinner != nil && s.spinner.Active() {
		s.spinner.Stop()
	}
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
