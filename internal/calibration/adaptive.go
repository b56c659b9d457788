// This file implements adaptive candidate generation based on hardware characteristics.

package calibration

import (
	"runtime"

	"github.com/agbru/digitsum/internal/config"
)

// ─────────────────────────────────────────────────────────────────────────────
// Adaptive Segment Count Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateSegmentCounts generates the dataset sizes, in segments, at which
// the sequential and parallel strategies are compared.
//
// The rationale:
// - Single-core: no candidate, parallelism has no benefit
// - 2-4 cores: dense sampling around the expected crossover
// - 8+ cores: wider datasets, where more cores keep paying off
// - 16+ cores: very wide datasets
func GenerateSegmentCounts() []int {
	return segmentCountsFor(runtime.NumCPU())
}

func segmentCountsFor(numCPU int) []int {
	if numCPU <= 1 {
		return nil
	}

	// Dense around the documented crossover.
	counts := []int{2, 3, 4, 5, 6, 7, 8, 10, 12, 16}

	switch {
	case numCPU <= 4:
	case numCPU <= 8:
		counts = append(counts, 24, 32)
	case numCPU <= 16:
		counts = append(counts, 24, 32, 48)
	default:
		counts = append(counts, 24, 32, 48, 64, 128)
	}
	return counts
}

// GenerateQuickSegmentCounts generates a smaller set of segment counts for
// quick calibration.
func GenerateQuickSegmentCounts() []int {
	return quickSegmentCountsFor(runtime.NumCPU())
}

func quickSegmentCountsFor(numCPU int) []int {
	switch {
	case numCPU <= 1:
		return nil
	case numCPU <= 4:
		return []int{2, 4, 7, 8, 16}
	default:
		return []int{2, 4, 7, 8, 16, 32}
	}
}

// EstimateOptimalCrossover delegates to config.EstimateOptimalCrossover.
func EstimateOptimalCrossover() int { return config.EstimateOptimalCrossover() }
