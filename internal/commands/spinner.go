package commands

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C084FC")).Bold(true)
	spinnerText  = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B")).Italic(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true)
)

// spinner handles the animated loading indicator for one-shot queries.
type spinner struct {
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

func newSpinner(message string) *spinner {
	return &spinner{
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(os.Stderr, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(os.Stderr, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				frame := spinnerStyle.Render(spinnerFrames[s.frame%len(spinnerFrames)])
				fmt.Fprintf(os.Stderr, "\r\033[K %s %s", frame, spinnerText.Render(s.message+"..."))
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

func (s *spinner) halt() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.stop)
	<-s.done
}

// stopQuiet stops the animation leaving a clean line.
func (s *spinner) stopQuiet() {
	s.halt()
}

// stopWithError stops the animation and marks the line as failed.
func (s *spinner) stopWithError() {
	s.halt()
	fmt.Fprintln(os.Stderr, failStyle.Render(" ✗ ")+spinnerText.Render(s.message))
}
