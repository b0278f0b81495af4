package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a status line on a terminal while a slow step runs.
// The message can change while it spins; Stop clears the line.
type Spinner struct {
	w io.Writer

	mu      sync.Mutex
	message string
	running bool

	quit     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:        w,
		message:  message,
		quit:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start launches the animation. Starting twice has no effect.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	go s.spin()
}

func (s *Spinner) spin() {
	defer close(s.finished)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.quit:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
			glyph := string(spinnerFrames[frame%len(spinnerFrames)])
			fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(glyph), Dim(s.currentMessage()))
		}
	}
}

func (s *Spinner) currentMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop ends the animation and waits for the line to be cleared. It is
// safe to call more than once, and before Start.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if running {
			<-s.finished
		}
	})
}
