package aggregate

import (
	"github.com/agbru/digitsum/internal/digits"
	"github.com/agbru/digitsum/internal/metrics"
	"github.com/agbru/digitsum/internal/report"
)

// SumFunc computes the partial result of one segment.
type SumFunc func(segment string) (uint64, error)

// CollectOrder selects how the parallel aggregator joins its units.
type CollectOrder int

const (
	// CollectScheduleOrder joins handles in the order units were scheduled.
	// A slow early unit delays the join of faster later ones.
	CollectScheduleOrder CollectOrder = iota
	// CollectCompletionOrder joins whichever unit finishes first. It costs a
	// pre-count of the segments and a shared completion channel.
	CollectCompletionOrder
)

// String returns the flag spelling of o.
func (o CollectOrder) String() string {
	if o == CollectCompletionOrder {
		return "completion"
	}
	return "schedule"
}

type options struct {
	reporter report.Reporter
	sum      SumFunc
	metrics  *metrics.Recorder
	spawner  Spawner
	collect  CollectOrder
}

func defaultOptions() options {
	return options{
		reporter: report.NullReporter{},
		sum:      digits.Sum,
		spawner:  GoroutineSpawner{},
	}
}

// Option configures an aggregator during construction.
type Option func(*options)

// WithReporter sets the diagnostic reporter shared by every unit.
func WithReporter(r report.Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithSumFunc replaces the digit-sum primitive.
func WithSumFunc(f SumFunc) Option {
	return func(o *options) {
		if f != nil {
			o.sum = f
		}
	}
}

// WithMetrics records run and unit metrics into m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(o *options) { o.metrics = m }
}

// WithSpawner sets how the parallel aggregator submits units of work.
// Ignored by the sequential aggregator.
func WithSpawner(s Spawner) Option {
	return func(o *options) {
		if s != nil {
			o.spawner = s
		}
	}
}

// WithCollectOrder sets the join order of the parallel aggregator.
// Ignored by the sequential aggregator.
func WithCollectOrder(c CollectOrder) Option {
	return func(o *options) { o.collect = c }
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
