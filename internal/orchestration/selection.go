package orchestration

import (
	"github.com/agbru/digitsum/internal/aggregate"
	"github.com/agbru/digitsum/internal/config"
)

// GetAggregatorsToRun determines which aggregators should be executed based
// on the configuration. "all" yields every concrete strategy in sorted order;
// "auto" yields an Auto aggregator using the configured crossover.
//
// Parameters:
//   - cfg: The application configuration containing the strategy selection.
//   - opts: Options applied to every aggregator.
//
// Returns:
//   - []aggregate.Aggregator: The aggregators to execute.
//   - error: An error if the strategy is unknown.
func GetAggregatorsToRun(cfg config.AppConfig, opts ...aggregate.Option) ([]aggregate.Aggregator, error) {
	switch cfg.Strategy {
	case aggregate.StrategyAll:
		names := aggregate.Names()
		aggregators := make([]aggregate.Aggregator, 0, len(names))
		for _, name := range names {
			agg, err := aggregate.New(name, opts...)
			if err != nil {
				return nil, err
			}
			aggregators = append(aggregators, agg)
		}
		return aggregators, nil
	case aggregate.StrategyAuto:
		return []aggregate.Aggregator{aggregate.NewAuto(cfg.Threshold, opts...)}, nil
	}
	agg, err := aggregate.New(cfg.Strategy, opts...)
	if err != nil {
		return nil, err
	}
	return []aggregate.Aggregator{agg}, nil
}
