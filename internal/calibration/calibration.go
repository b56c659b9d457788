// Package calibration measures, on the current host, the segment count from
// which the parallel aggregator beats the sequential one, and persists it in
// a calibration profile reused by later runs.
package calibration

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/agbru/digitsum/internal/aggregate"
	"github.com/agbru/digitsum/internal/cli"
	"github.com/agbru/digitsum/internal/config"
	"github.com/agbru/digitsum/internal/dataset"
	apperrors "github.com/agbru/digitsum/internal/errors"
)

// Options tunes a calibration run.
type Options struct {
	// Counts are the dataset sizes, in segments, to measure.
	Counts []int
	// SegmentLength is the number of digits per synthetic segment.
	SegmentLength int
	// Rounds is the number of timed runs per strategy and count.
	Rounds int
	// Workers caps the parallel strategy like the -workers flag.
	Workers int
	// Seed makes the synthetic datasets reproducible.
	Seed uint64
}

// DefaultOptions returns the options of a full calibration.
func DefaultOptions() Options {
	return Options{
		Counts:        GenerateSegmentCounts(),
		SegmentLength: 32,
		Rounds:        25,
		Seed:          1,
	}
}

// calibrationResult holds the timings of both strategies for one count.
type calibrationResult struct {
	Segments         int
	Sequential       time.Duration
	SequentialStdDev time.Duration
	Parallel         time.Duration
	ParallelStdDev   time.Duration
	Err              error
}

// Speedup returns sequential time over parallel time.
func (r calibrationResult) Speedup() float64 {
	if r.Parallel <= 0 {
		return 0
	}
	return float64(r.Sequential) / float64(r.Parallel)
}

// SyntheticDataset builds a dataset of segments runs of length random digits
// separated by single spaces.
func SyntheticDataset(segments, length int, seed uint64) dataset.Dataset {
	rng := rand.New(rand.NewPCG(seed, uint64(segments)))
	var b strings.Builder
	b.Grow(segments * (length + 1))
	for i := range segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		for range length {
			b.WriteByte(byte('0' + rng.IntN(10)))
		}
	}
	return dataset.New(b.String())
}

// Calibrate times both strategies at every count of opts and returns the
// measurements with the crossover derived from them. onProgress, when not
// nil, is called after each count. The context is checked between counts.
func Calibrate(ctx context.Context, opts Options, onProgress func(done, total int)) ([]calibrationResult, int, error) {
	var aggOpts []aggregate.Option
	if opts.Workers > 0 {
		aggOpts = append(aggOpts, aggregate.WithSpawner(aggregate.NewPoolSpawner(opts.Workers)))
	}
	sequential := aggregate.NewSequential()
	parallel := aggregate.NewParallel(aggOpts...)
	rounds := max(opts.Rounds, 1)

	results := make([]calibrationResult, 0, len(opts.Counts))
	for i, n := range opts.Counts {
		if err := ctx.Err(); err != nil {
			return results, FindCrossover(results), err
		}
		ds := SyntheticDataset(n, max(opts.SegmentLength, 1), opts.Seed)
		res := calibrationResult{Segments: n}
		res.Sequential, res.SequentialStdDev, res.Err = measure(ctx, sequential, ds, rounds)
		if res.Err == nil {
			res.Parallel, res.ParallelStdDev, res.Err = measure(ctx, parallel, ds, rounds)
		}
		results = append(results, res)
		if onProgress != nil {
			onProgress(i+1, len(opts.Counts))
		}
	}
	return results, FindCrossover(results), nil
}

// measure runs agg once to warm up, then rounds times, and returns the mean
// and standard deviation of the timed runs.
func measure(ctx context.Context, agg aggregate.Aggregator, ds dataset.Dataset, rounds int) (mean, stddev time.Duration, err error) {
	if _, err := agg.Aggregate(ctx, ds); err != nil {
		return 0, 0, err
	}
	samples := make([]float64, 0, rounds)
	for range rounds {
		start := time.Now()
		if _, err := agg.Aggregate(ctx, ds); err != nil {
			return 0, 0, err
		}
		samples = append(samples, float64(time.Since(start)))
	}
	m, sd := stat.MeanStdDev(samples, nil)
	if len(samples) < 2 || math.IsNaN(sd) {
		sd = 0
	}
	return time.Duration(m), time.Duration(sd), nil
}

// FindCrossover returns the smallest measured count from which the parallel
// strategy is faster at every larger measured count. It returns
// aggregate.NeverParallel when parallel never settles ahead.
func FindCrossover(results []calibrationResult) int {
	valid := make([]calibrationResult, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			valid = append(valid, r)
		}
	}
	slices.SortFunc(valid, func(a, b calibrationResult) int { return a.Segments - b.Segments })

	crossover := aggregate.NeverParallel
	for i := len(valid) - 1; i >= 0; i-- {
		if valid[i].Parallel >= valid[i].Sequential {
			break
		}
		crossover = valid[i].Segments
	}
	return crossover
}

// RunCalibration runs a full calibration, prints the measurements and saves
// the resulting profile.
//
// Parameters:
//   - ctx: Bounds the calibration.
//   - cfg: The application configuration (workers, profile path).
//   - out: The writer for progress and results.
//
// Returns:
//   - int: The process exit code.
func RunCalibration(ctx context.Context, cfg config.AppConfig, out io.Writer) int {
	fmt.Fprintln(out, "--- Calibration Mode: Measuring the sequential/parallel crossover ---")
	opts := DefaultOptions()
	opts.Workers = cfg.Workers
	if len(opts.Counts) == 0 {
		fmt.Fprintln(out, "Single logical processor: the parallel strategy cannot win.")
	}

	start := time.Now()
	s := cli.NewSpinner(out)
	s.UpdateSuffix(" Measuring...")
	s.Start()
	results, best, err := Calibrate(ctx, opts, func(done, total int) {
		s.UpdateSuffix(fmt.Sprintf(" Measuring segment counts %d/%d", done, total))
	})
	s.Stop()
	if err != nil {
		return apperrors.HandleCalculationError(err, time.Since(start), out, cli.CLIColorProvider{})
	}

	printCalibrationResults(out, results, best)

	profile := NewProfile()
	profile.OptimalCrossover = best
	profile.CalibrationSegmentLength = opts.SegmentLength
	profile.CalibrationRounds = opts.Rounds
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()

	path := cfg.CalibrationProfile
	if path == "" {
		path = GetDefaultProfilePath()
	}
	if err := profile.SaveProfile(path); err != nil {
		fmt.Fprintf(out, "Warning: %v\n", err)
	} else {
		fmt.Fprintf(out, "Profile saved to %s\n", path)
	}
	fmt.Fprintln(out, profile.String())
	return apperrors.ExitSuccess
}

// LoadCachedCalibration sets the crossover from a saved profile when the user
// did not set one and the profile matches this host and is recent.
//
// Returns the updated configuration and whether the profile was used.
func LoadCachedCalibration(cfg config.AppConfig, profilePath string) (config.AppConfig, bool) {
	if cfg.Threshold != 0 {
		return cfg, false
	}
	if profilePath == "" {
		profilePath = GetDefaultProfilePath()
	}
	profile, loaded := LoadOrCreateProfile(profilePath)
	if !loaded || profile.IsStale(MaxProfileAge) || profile.OptimalCrossover <= 0 {
		return cfg, false
	}
	cfg.Threshold = profile.OptimalCrossover
	return cfg, true
}
