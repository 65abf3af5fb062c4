package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames is the braille animation cycle.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is the delay between animation frames.
const spinnerInterval = 80 * time.Millisecond

// spinner animates a progress indicator on stderr while a pipeline stage
// runs. It stops on Stop or when the parent context is cancelled. Stop is
// safe to call more than once.
type spinner struct {
	message string
	out     io.Writer
	cancel  context.CancelFunc
	halt    chan struct{}
	ran     chan struct{}
	once    sync.Once
}

// startSpinner starts a spinner on stderr.
func startSpinner(ctx context.Context, message string) *spinner {
	return startSpinnerTo(ctx, os.Stderr, message)
}

// startSpinnerTo starts a spinner writing to out.
func startSpinnerTo(ctx context.Context, out io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		message: message,
		out:     out,
		cancel:  cancel,
		halt:    make(chan struct{}),
		ran:     make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.ran)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clearLine()
			return
		case <-s.halt:
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.out, "\r%s %s", styleSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

// Stop halts the animation and clears the line. It blocks until the
// animation goroutine has exited, so no frame is written after it returns.
func (s *spinner) Stop() {
	s.once.Do(func() { close(s.halt) })
	s.cancel()
	<-s.ran
	s.clearLine()
}

func (s *spinner) clearLine() {
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
