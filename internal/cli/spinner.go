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

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line on stderr until stopped or until its
// context is cancelled.
type spinner struct {
	w       io.Writer
	message string
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	started bool

	mu       sync.Mutex
	stopOnce sync.Once
	stopped  chan struct{}
}

func newSpinner(ctx context.Context, message string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &spinner{
		w:       os.Stderr,
		message: message,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

func (s *spinner) start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), styleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// stop ends the animation and clears the line. It may be called repeatedly.
func (s *spinner) stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		if s.started {
			<-s.stopped
		}
	})
}

// fail stops the spinner and prints msg as an error.
func (s *spinner) fail(msg string) {
	s.stop()
	printError("%s", msg)
}

// interrupted reports whether the parent context was cancelled.
func (s *spinner) interrupted() bool {
	return s.parent.Err() != nil
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
