package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/digitsum/internal/format"
	"github.com/agbru/digitsum/internal/orchestration"
	"github.com/agbru/digitsum/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// NewSpinner returns a spinner drawing on out. It is not started.
func NewSpinner(out io.Writer) Spinner {
	return newSpinner(spinner.WithWriter(out))
}

// DisplayProgress shows a spinner with a progress bar while the units of a
// run deliver their outcomes. It returns once updates is closed.
//
// Parameters:
//   - wg: Signalled when the display has stopped.
//   - updates: Unit outcomes from an orchestration.ProgressTracker.
//   - total: The number of segments of the run.
//   - out: The writer for the spinner.
func DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()
	if total <= 0 {
		for range updates {
		}
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + format.FormatProgressBarWithETA(0, 0, ProgressBarWidth))
	s.Start()
	defer s.Stop()

	failed := 0
	for u := range updates {
		if u.Err != nil {
			failed++
		}
		suffix := " " + format.FormatProgressBarWithETA(u.Fraction, u.ETA, ProgressBarWidth)
		if failed > 0 {
			suffix += fmt.Sprintf(" %s(%d failed)%s", ui.ColorRed(), failed, ui.ColorReset())
		}
		s.UpdateSuffix(suffix)
	}
}
