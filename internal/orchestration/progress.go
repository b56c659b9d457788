package orchestration

import (
	"sync"
	"time"

	"github.com/agbru/digitsum/internal/format"
	"github.com/agbru/digitsum/internal/report"
)

// ProgressUpdate describes one unit delivering its outcome.
type ProgressUpdate struct {
	// Index is the segment index of the unit.
	Index int
	// Partial is the partial result. It is zero when Err is set.
	Partial uint64
	// Err is the unit failure, if any.
	Err error
	// Done is the number of units finished so far.
	Done int
	// Total is the number of segments of the run.
	Total int
	// Fraction is Done/Total.
	Fraction float64
	// ETA estimates the time until the last unit finishes.
	ETA time.Duration
}

// ProgressTracker is a report.Reporter that turns unit completions into
// ProgressUpdate values. Both the CLI progress line and the TUI consume it.
//
// The update channel is buffered for one update per segment so units never
// block on a slow consumer.
type ProgressTracker struct {
	state   *format.SegmentProgress
	mu      sync.Mutex
	closed  bool
	updates chan ProgressUpdate
}

// Verify interface compliance.
var _ report.Reporter = (*ProgressTracker)(nil)

// NewProgressTracker creates a tracker for a run of total segments.
func NewProgressTracker(total int) *ProgressTracker {
	total = max(total, 0)
	return &ProgressTracker{
		state:   format.NewSegmentProgress(total),
		updates: make(chan ProgressUpdate, total),
	}
}

// Updates returns the channel of progress updates. It is closed by Close.
func (t *ProgressTracker) Updates() <-chan ProgressUpdate { return t.updates }

// Close closes the update channel. Outcomes reported afterwards, by units of
// a run that was no longer awaited, are dropped. Close is idempotent.
func (t *ProgressTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		close(t.updates)
	}
}

// Fraction returns the completed fraction of the run.
func (t *ProgressTracker) Fraction() float64 { return t.state.Fraction() }

// ETA returns the current remaining-time estimate.
func (t *ProgressTracker) ETA() time.Duration { return t.state.ETA() }

// SegmentScheduled is a no-op: only completions advance progress.
func (t *ProgressTracker) SegmentScheduled(int, string) {}

// SegmentProcessed records a delivered partial result.
func (t *ProgressTracker) SegmentProcessed(index int, partial uint64) {
	t.publish(ProgressUpdate{Index: index, Partial: partial})
}

// SegmentFailed records a unit failure.
func (t *ProgressTracker) SegmentFailed(index int, err error) {
	t.publish(ProgressUpdate{Index: index, Err: err})
}

// FinalResult is a no-op.
func (t *ProgressTracker) FinalResult(uint64) {}

func (t *ProgressTracker) publish(u ProgressUpdate) {
	u.Fraction, u.ETA = t.state.MarkDone()
	u.Done, u.Total = t.state.Done(), t.state.Total()
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	select {
	case t.updates <- u:
	default:
		// More outcomes than segments; drop rather than block a unit.
	}
}
