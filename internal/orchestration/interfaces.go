package orchestration

import (
	"io"
	"time"
)

// CalculationResult encapsulates the outcome of one strategy run.
// It serves as the shared domain type between orchestration and presentation layers.
type CalculationResult struct {
	// Name is the strategy that produced the result (e.g., "parallel").
	Name string
	// Result is the Final Result. It is meaningless when Err is set.
	Result uint64
	// Duration is the time taken by the run.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	// Segments is the number of segments of the dataset.
	Segments int
	Verbose  bool
	Quiet    bool
}

// ResultPresenter defines the interface for presenting aggregation results.
// This interface decouples the orchestration layer from presentation concerns,
// allowing different output formats without modifying the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult displays the final aggregation result.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles aggregation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
