package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/digitsum/internal/aggregate"
	"github.com/agbru/digitsum/internal/dataset"
	apperrors "github.com/agbru/digitsum/internal/errors"
)

// ExecuteStrategies runs every aggregator over ds one after another and
// collects one CalculationResult per aggregator, in the order of aggregators.
// Runs do not overlap, so each duration is measured without another
// strategy competing for the CPU.
//
// Aggregators never observe cancellation: once scheduled, their units run to
// completion. When ctx ends first, the pending result is reported as the
// context error and the run is left to finish in the background.
//
// Parameters:
//   - ctx: The context bounding how long results are awaited.
//   - aggregators: The aggregators to execute.
//   - ds: The dataset shared read-only by every run.
//
// Returns:
//   - []CalculationResult: A slice containing the result of each aggregator.
func ExecuteStrategies(ctx context.Context, aggregators []aggregate.Aggregator, ds dataset.Dataset) []CalculationResult {
	var g errgroup.Group
	g.SetLimit(1)
	results := make([]CalculationResult, len(aggregators))

	for i, agg := range aggregators {
		g.Go(func() error {
			results[i] = Run(ctx, agg, ds)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Run executes a single aggregator and times it. The result is awaited until
// ctx is done.
func Run(ctx context.Context, agg aggregate.Aggregator, ds dataset.Dataset) CalculationResult {
	type outcome struct {
		total uint64
		err   error
	}
	startTime := time.Now()
	done := make(chan outcome, 1)
	go func() {
		total, err := agg.Aggregate(ctx, ds)
		done <- outcome{total, err}
	}()

	res := CalculationResult{Name: agg.Name()}
	select {
	case o := <-done:
		res.Result, res.Err = o.total, o.err
	case <-ctx.Done():
		res.Err = ctx.Err()
	}
	res.Duration = time.Since(startTime)
	if res.Err != nil {
		res.Result = 0
	}
	return res
}

// AnalyzeComparisonResults processes the results from multiple strategies and
// generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful runs, and displays a comparative table. Any disagreement between
// successful strategies is a critical error since every strategy must return a
// bit-identical Final Result.
//
// Parameters:
//   - results: The slice of results to analyze.
//   - opts: Presentation options for the final result.
//   - presenter: The result presenter for display formatting.
//   - errHandler: The handler mapping a failure to an exit code.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *CalculationResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the aggregation.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Result != firstValidResult.Result {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The strategies disagree: %s=%d, %s=%d.\n",
				firstValidResult.Name, firstValidResult.Result, res.Name, res.Result)
			return apperrors.ExitErrorMismatch
		}
	}

	if firstError != nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. Strategies disagree on whether the dataset is valid.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All results are consistent.\n")
	presenter.PresentResult(*firstValidResult, opts, out)
	return apperrors.ExitSuccess
}
