package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/josephgoksu/taskrank/models"
)

// Spinner is a simple text-based spinner for CLI usage. As a run trigger it
// spins while the trigger is disabled and clears itself when re-enabled.
type Spinner struct {
	out      io.Writer
	chars    []string
	delay    time.Duration
	suffix   string
	stopChan chan struct{}
	wg       sync.WaitGroup
	active   bool
	mu       sync.Mutex
}

// NewSpinnerTo creates a spinner writing to w.
func NewSpinnerTo(w io.Writer, suffix string) *Spinner {
	return &Spinner{
		out:      w,
		chars:    []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		delay:    100 * time.Millisecond,
		suffix:   suffix,
		stopChan: make(chan struct{}),
	}
}

// SetEnabled stops the spinner when the trigger is enabled and starts it
// while disabled.
func (s *Spinner) SetEnabled(enabled bool) {
	if enabled {
		s.Stop()
		return
	}
	s.Start()
}

// Start starts the spinner in a background goroutine
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.stopChan = make(chan struct{})
	stop := s.stopChan
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.delay)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				i = (i + 1) % len(s.chars)
				_, _ = fmt.Fprintf(s.out, "\r%s %s", StylePrimary.Render(s.chars[i]), s.suffix)
			}
		}
	}()
}

// Stop stops the spinner and clears the line
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	_, _ = fmt.Fprint(s.out, "\r\033[K")
}

// Active reports whether the spinner is running.
func (s *Spinner) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ResultsRenderer is the renderer surface SpinnerRenderer wraps.
type ResultsRenderer interface {
	Render(tasks []models.RankedTask, strategy models.Strategy) error
	Reset()
	ShowError(msg string)
}

// SpinnerRenderer stops a spinner before anything reaches the wrapped
// renderer, so frames and results never share a line.
type SpinnerRenderer struct {
	next    ResultsRenderer
	spinner *Spinner
}

// NewSpinnerRenderer wraps next so s is stopped before each write.
func NewSpinnerRenderer(next ResultsRenderer, s *Spinner) *SpinnerRenderer {
	return &SpinnerRenderer{next: next, spinner: s}
}

func (r *SpinnerRenderer) Render(tasks []models.RankedTask, strategy models.Strategy) error {
	r.spinner.Stop()
	return r.next.Render(tasks, strategy)
}

func (r *SpinnerRenderer) Reset() {
	r.spinner.Stop()
	r.next.Reset()
}

func (r *SpinnerRenderer) ShowError(msg string) {
	r.spinner.Stop()
	r.next.ShowError(msg)
}
