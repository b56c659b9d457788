package config

import (
	"runtime"

	"github.com/agbru/digitsum/internal/aggregate"
)

// Crossover resolution chain (highest priority first):
//   1. CLI flag (--threshold)
//   2. Environment variable (DIGITSUM_THRESHOLD)
//   3. YAML config file (threshold)
//   4. Cached calibration profile (~/.digitsum_calibration.json)
//   5. Adaptive hardware estimation (this file)

// ApplyAdaptiveThresholds fills a zero Threshold with a hardware estimate.
// A user-specified threshold is preserved.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = EstimateOptimalCrossover()
	}
	return cfg
}

// EstimateOptimalCrossover provides a heuristic estimate of the segment count
// from which the parallel aggregator wins, without running benchmarks.
func EstimateOptimalCrossover() int {
	return estimateCrossover(runtime.NumCPU())
}

func estimateCrossover(numCPU int) int {
	if numCPU <= 1 {
		return aggregate.NeverParallel // No parallelism
	}
	return aggregate.DefaultCrossover
}
