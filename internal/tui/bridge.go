package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/digitsum/internal/errors"
	"github.com/agbru/digitsum/internal/format"
	"github.com/agbru/digitsum/internal/orchestration"
	"github.com/agbru/digitsum/internal/report"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the units of a run can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIReporter implements report.Reporter by forwarding segment events to the
// dashboard. Every message is tagged with the run generation so the model
// can drop events of a run it has already replaced.
type TUIReporter struct {
	ref        *programRef
	progress   *format.SegmentProgress
	generation uint64
}

// Verify interface compliance.
var _ report.Reporter = (*TUIReporter)(nil)

// newTUIReporter creates a reporter expecting total unit outcomes.
func newTUIReporter(ref *programRef, total int, generation uint64) *TUIReporter {
	return &TUIReporter{ref: ref, progress: format.NewSegmentProgress(total), generation: generation}
}

// SegmentScheduled forwards a scheduled segment.
func (t *TUIReporter) SegmentScheduled(index int, segment string) {
	t.ref.Send(SegmentScheduledMsg{Index: index, Text: segment, Generation: t.generation})
}

// SegmentProcessed forwards a delivered partial result.
func (t *TUIReporter) SegmentProcessed(index int, partial uint64) {
	fraction, eta := t.progress.MarkDone()
	t.ref.Send(SegmentDoneMsg{Index: index, Partial: partial, Fraction: fraction, ETA: eta, Generation: t.generation})
}

// SegmentFailed forwards a unit failure.
func (t *TUIReporter) SegmentFailed(index int, err error) {
	fraction, eta := t.progress.MarkDone()
	t.ref.Send(SegmentDoneMsg{Index: index, Err: err, Fraction: fraction, ETA: eta, Generation: t.generation})
}

// FinalResult is a no-op: the presenter reports the final result.
func (t *TUIReporter) FinalResult(uint64) {}

// TUIResultPresenter implements orchestration.ResultPresenter.
// It sends result messages to the TUI instead of writing to stdout, tagged
// with the generation of the run it presents.
type TUIResultPresenter struct {
	ref        *programRef
	generation uint64
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends comparison results to the TUI.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: results, Generation: t.generation})
}

// PresentResult sends the final result to the TUI.
func (t *TUIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(FinalResultMsg{Result: result, Segments: opts.Segments, Generation: t.generation})
}

// FormatDuration delegates to the shared formatter.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError sends an error message to the TUI and returns the exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration, Generation: t.generation})
	return apperrors.HandleCalculationError(err, duration, io.Discard, nil)
}
