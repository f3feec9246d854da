package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const spinnerFrames = `⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏`

// Spinner is the progress indicator shown while the cascades, the avatars
// and the video source are being prepared.
type Spinner struct {
	// StopMsg is printed by Stop in place of the animation.
	StopMsg string

	mu      sync.Mutex
	w       io.Writer
	message string
	delay   time.Duration
	width   int
	cursor  bool
	done    chan struct{}
}

// NewSpinner creates a spinner writing to the standard error.
func NewSpinner(msg string, d time.Duration) *Spinner {
	return &Spinner{
		w:       os.Stderr,
		message: msg,
		delay:   d,
		cursor:  ColorOutput && runtime.GOOS != "windows",
	}
}

// Start animates the spinner until Stop is called.
// It does nothing when the standard error is not a terminal.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil || !ColorOutput {
		return
	}
	s.done = make(chan struct{})
	if s.cursor {
		fmt.Fprint(s.w, "\033[?25l")
	}
	go s.animate(s.done)
}

func (s *Spinner) animate(done <-chan struct{}) {
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	frames := []rune(spinnerFrames)
	for i := 0; ; i = (i + 1) % len(frames) {
		s.mu.Lock()
		select {
		case <-done:
			s.mu.Unlock()
			return
		default:
		}
		line := fmt.Sprintf("\r%s%s %c%s", s.message, SuccessColor, frames[i], DefaultColor)
		fmt.Fprint(s.w, line)
		s.width = utf8.RuneCountInString(line)
		s.mu.Unlock()

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the animation and prints StopMsg. It can be called more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil {
		close(s.done)
		s.done = nil
		s.clearLine()
		s.RestoreCursor()
	}
	if s.StopMsg != "" {
		fmt.Fprint(s.w, s.StopMsg)
	}
}

// RestoreCursor makes the cursor visible again.
func (s *Spinner) RestoreCursor() {
	if s.cursor {
		fmt.Fprint(s.w, "\033[?25h")
	}
}

func (s *Spinner) clearLine() {
	fmt.Fprint(s.w, "\r"+strings.Repeat(" ", s.width)+"\r")
	s.width = 0
}
