package aggregate

import (
	"context"

	"github.com/agbru/digitsum/internal/dataset"
	"github.com/agbru/digitsum/internal/digits"
)

// Sequential sums segments one at a time on the calling goroutine. Reports
// are strictly ordered: segment 0 is fully reported before segment 1.
type Sequential struct {
	opts options
}

// Verify interface compliance.
var _ Aggregator = (*Sequential)(nil)

// NewSequential creates a sequential aggregator.
func NewSequential(opts ...Option) *Sequential {
	return &Sequential{opts: buildOptions(opts)}
}

// Name returns StrategySequential.
func (s *Sequential) Name() string { return StrategySequential }

// Aggregate walks the segments in order and stops at the first failure.
func (s *Sequential) Aggregate(ctx context.Context, ds dataset.Dataset) (total uint64, err error) {
	_, finish := startRun(ctx, &s.opts, StrategySequential)
	defer func() { finish(total, err) }()

	rep := s.opts.reporter
	for i, segment := range ds.Segments() {
		rep.SegmentScheduled(i, segment)
		partial, sumErr := s.opts.sum(segment)
		if sumErr != nil {
			rep.SegmentFailed(i, sumErr)
			return 0, &SegmentError{Index: i, Segment: segment, Err: sumErr}
		}
		rep.SegmentProcessed(i, partial)
		s.opts.metrics.SegmentProcessed(StrategySequential)

		next, addErr := digits.Add(total, partial)
		if addErr != nil {
			return 0, &SegmentError{Index: i, Segment: segment, Err: addErr}
		}
		total = next
	}
	rep.FinalResult(total)
	return total, nil
}
