package aggregate

import (
	"context"
	"fmt"
	"math"

	"github.com/agbru/digitsum/internal/dataset"
)

// Strategy keys accepted by New and the -strategy flag.
const (
	StrategySequential = "sequential"
	StrategyParallel   = "parallel"
	StrategyAuto       = "auto"
	StrategyAll        = "all"
)

// DefaultCrossover is the segment count from which the fork-join strategy
// beats the sequential loop on typical multi-core hosts. Below it the cost of
// spawning units dominates the work they do.
const DefaultCrossover = 7

// NeverParallel is a crossover no realistic dataset reaches.
const NeverParallel = math.MaxInt

// Names returns the concrete strategy keys in sorted order.
func Names() []string {
	return []string{StrategyParallel, StrategySequential}
}

// New builds the aggregator registered under name.
func New(name string, opts ...Option) (Aggregator, error) {
	switch name {
	case StrategySequential:
		return NewSequential(opts...), nil
	case StrategyParallel:
		return NewParallel(opts...), nil
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}

// Auto delegates each run to the sequential or the parallel aggregator
// depending on how many segments the dataset has.
type Auto struct {
	crossover  int
	sequential Aggregator
	parallel   Aggregator
}

// Verify interface compliance.
var _ Aggregator = (*Auto)(nil)

// NewAuto creates an Auto aggregator. Datasets with fewer than crossover
// segments run sequentially. A non-positive crossover selects
// DefaultCrossover.
func NewAuto(crossover int, opts ...Option) *Auto {
	if crossover <= 0 {
		crossover = DefaultCrossover
	}
	return &Auto{
		crossover:  crossover,
		sequential: NewSequential(opts...),
		parallel:   NewParallel(opts...),
	}
}

// Name returns StrategyAuto.
func (a *Auto) Name() string { return StrategyAuto }

// Crossover returns the segment count from which Auto runs in parallel.
func (a *Auto) Crossover() int { return a.crossover }

// Choose returns the aggregator Auto would use for segments segments.
func (a *Auto) Choose(segments int) Aggregator {
	if segments < a.crossover {
		return a.sequential
	}
	return a.parallel
}

// Aggregate counts the segments of ds and runs the chosen strategy.
func (a *Auto) Aggregate(ctx context.Context, ds dataset.Dataset) (uint64, error) {
	return a.Choose(ds.Count()).Aggregate(ctx, ds)
}
