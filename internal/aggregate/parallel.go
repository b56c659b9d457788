package aggregate

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/digitsum/internal/dataset"
	"github.com/agbru/digitsum/internal/digits"
)

// Parallel is the fork-join aggregator. It schedules one unit of work per
// segment through its Spawner, keeps one handle per unit in scheduling order,
// and only then starts joining.
type Parallel struct {
	opts options
}

// Verify interface compliance.
var _ Aggregator = (*Parallel)(nil)

// NewParallel creates a fork-join aggregator. Without WithSpawner every
// segment gets its own goroutine.
func NewParallel(opts ...Option) *Parallel {
	return &Parallel{opts: buildOptions(opts)}
}

// Name returns StrategyParallel.
func (p *Parallel) Name() string { return StrategyParallel }

// handle is the join side of one unit of work. partial and err are written
// by the unit before done is closed and only read after.
type handle struct {
	index   int
	segment string
	done    chan struct{}
	partial uint64
	err     error
}

func (h *handle) join() (uint64, error) {
	<-h.done
	return h.partial, h.err
}

// Aggregate schedules every unit, then joins them according to the
// configured CollectOrder. Every handle is joined even after a failure, and
// the failure with the lowest segment index is returned.
func (p *Parallel) Aggregate(ctx context.Context, ds dataset.Dataset) (total uint64, err error) {
	ctx, finish := startRun(ctx, &p.opts, StrategyParallel)
	defer func() { finish(total, err) }()

	var completed chan *handle
	if p.opts.collect == CollectCompletionOrder {
		completed = make(chan *handle, ds.Count())
	}

	var handles []*handle
	for i, segment := range ds.Segments() {
		p.opts.reporter.SegmentScheduled(i, segment)
		handles = append(handles, p.schedule(ctx, i, segment, completed))
	}

	if completed != nil {
		total, err = collectCompletionOrder(completed, len(handles))
	} else {
		total, err = collectScheduleOrder(handles)
	}
	if err != nil {
		return 0, err
	}
	p.opts.reporter.FinalResult(total)
	return total, nil
}

func (p *Parallel) schedule(ctx context.Context, index int, segment string, completed chan<- *handle) *handle {
	h := &handle{index: index, segment: segment, done: make(chan struct{})}
	p.opts.spawner.Spawn(func() {
		p.runUnit(ctx, h)
		if completed != nil {
			completed <- h
		}
	})
	return h
}

// runUnit computes one partial result. A panic in the primitive or the
// reporter is recovered into a WorkerFailureError so the join never sees a
// silent zero.
func (p *Parallel) runUnit(ctx context.Context, h *handle) {
	_, span := tracer.Start(ctx, "aggregate.unit",
		trace.WithAttributes(attribute.Int("segment.index", h.index)))
	p.opts.metrics.UnitStarted(StrategyParallel)

	defer close(h.done)
	defer func() {
		if r := recover(); r != nil {
			h.partial = 0
			h.err = &WorkerFailureError{Err: &SegmentError{
				Index: h.index, Segment: h.segment, Err: fmt.Errorf("unit panicked: %v", r),
			}}
		}
		if h.err != nil {
			span.RecordError(h.err)
			span.SetStatus(codes.Error, h.err.Error())
		}
		p.opts.metrics.UnitFinished(StrategyParallel)
		span.End()
	}()

	partial, err := p.opts.sum(h.segment)
	if err != nil {
		h.err = &WorkerFailureError{Err: &SegmentError{Index: h.index, Segment: h.segment, Err: err}}
		p.opts.reporter.SegmentFailed(h.index, err)
		return
	}
	h.partial = partial
	p.opts.metrics.SegmentProcessed(StrategyParallel)
	p.opts.reporter.SegmentProcessed(h.index, partial)
}

func collectScheduleOrder(handles []*handle) (uint64, error) {
	var total uint64
	var firstErr error
	for _, h := range handles {
		partial, err := h.join()
		if firstErr != nil {
			continue
		}
		if err != nil {
			firstErr = err
			continue
		}
		if total, err = digits.Add(total, partial); err != nil {
			firstErr = &SegmentError{Index: h.index, Segment: h.segment, Err: err}
		}
	}
	if firstErr != nil {
		return 0, firstErr
	}
	return total, nil
}

// collectCompletionOrder joins n units as they finish. Overflow does not
// depend on the order because every partial is non-negative.
func collectCompletionOrder(completed <-chan *handle, n int) (uint64, error) {
	var total uint64
	var failed *handle
	var overflow error
	for range n {
		h := <-completed
		partial, err := h.join()
		if err != nil {
			if failed == nil || h.index < failed.index {
				failed = h
			}
			continue
		}
		if overflow != nil {
			continue
		}
		if total, err = digits.Add(total, partial); err != nil {
			overflow = err
		}
	}
	switch {
	case failed != nil:
		return 0, failed.err
	case overflow != nil:
		return 0, fmt.Errorf("combining partial results: %w", overflow)
	}
	return total, nil
}
