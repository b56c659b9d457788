package tui

import (
	"time"

	"github.com/agbru/digitsum/internal/orchestration"
	"github.com/agbru/digitsum/internal/sysmon"
)

// SegmentScheduledMsg is sent when a unit is scheduled for a segment.
type SegmentScheduledMsg struct {
	Index      int
	Text       string
	Generation uint64
}

// SegmentDoneMsg is sent when a unit delivers its outcome.
type SegmentDoneMsg struct {
	Index      int
	Partial    uint64
	Err        error
	Fraction   float64
	ETA        time.Duration
	Generation uint64
}

// ComparisonResultsMsg carries the outcome of every strategy.
type ComparisonResultsMsg struct {
	Results    []orchestration.CalculationResult
	Generation uint64
}

// FinalResultMsg carries the presented result.
type FinalResultMsg struct {
	Result     orchestration.CalculationResult
	Segments   int
	Generation uint64
}

// ErrorMsg carries a failure of the run.
type ErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// TickMsg refreshes the elapsed time and the runtime counters.
type TickMsg time.Time

// RuntimeStatsMsg carries sampled host and process counters.
type RuntimeStatsMsg struct {
	sysmon.Stats
}

// RunCompleteMsg is sent once every strategy has finished.
type RunCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
