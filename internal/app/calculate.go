package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/agbru/digitsum/internal/aggregate"
	"github.com/agbru/digitsum/internal/cli"
	"github.com/agbru/digitsum/internal/dataset"
	apperrors "github.com/agbru/digitsum/internal/errors"
	"github.com/agbru/digitsum/internal/orchestration"
	"github.com/agbru/digitsum/internal/report"
	"github.com/agbru/digitsum/internal/ui"
)

// runCalculate orchestrates the execution of the CLI aggregation command.
func (a *Application) runCalculate(ctx context.Context, ds dataset.Dataset, out io.Writer) int {
	ctx, stop := lifecycle(ctx, a.Config)
	defer stop()

	segments := ds.Count()
	reporter, finish := a.newReporter(segments*runsPerSegment(a.Config.Strategy), out)

	aggregators, err := orchestration.GetAggregatorsToRun(a.Config, append(a.baseOptions(), aggregate.WithReporter(reporter))...)
	if err != nil {
		finish()
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, segments, out)
		cli.PrintExecutionMode(aggregators, segments, out)
	}

	results := orchestration.ExecuteStrategies(ctx, aggregators, ds)
	finish()

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
	}
	return a.analyzeResultsWithOutput(results, segments, outputCfg, out)
}

// baseOptions returns the aggregator options derived from the configuration,
// without a reporter.
func (a *Application) baseOptions() []aggregate.Option {
	opts := []aggregate.Option{
		aggregate.WithCollectOrder(a.Config.CollectOrder()),
		aggregate.WithMetrics(a.Metrics),
	}
	if a.Config.Workers > 0 {
		opts = append(opts, aggregate.WithSpawner(aggregate.NewPoolSpawner(a.Config.Workers)))
	}
	return opts
}

// newReporter selects the diagnostic channel of a run expecting total unit
// outcomes. The returned function stops any progress display and must be
// called once the results have been collected.
//
//   - quiet: nothing is reported.
//   - log: structured entries on the logger and a progress line on out.
//   - verbose: diagnostic lines on out plus structured entries.
//   - default: diagnostic lines on out.
func (a *Application) newReporter(total int, out io.Writer) (report.Reporter, func()) {
	switch {
	case a.Config.Quiet:
		return report.NullReporter{}, func() {}
	case a.Config.Log:
		tracker := orchestration.NewProgressTracker(total)
		var wg sync.WaitGroup
		wg.Add(1)
		go cli.DisplayProgress(&wg, tracker.Updates(), total, out)
		return report.Multi(report.NewLogReporter(a.Logger), tracker), func() {
			tracker.Close()
			wg.Wait()
		}
	case a.Config.Verbose:
		lines := report.NewLineReporter(out)
		return report.Multi(lines, report.NewLogReporter(a.Logger)), a.checkLines(lines)
	default:
		lines := report.NewLineReporter(out)
		return lines, a.checkLines(lines)
	}
}

func (a *Application) checkLines(lines *report.LineReporter) func() {
	return func() {
		if err := lines.Err(); err != nil {
			a.Logger.Error("diagnostic output incomplete", err)
		}
	}
}

// runsPerSegment returns how many units each segment gets for strategy.
func runsPerSegment(strategy string) int {
	if strategy == aggregate.StrategyAll {
		return len(aggregate.Names())
	}
	return 1
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, segments int, outputCfg cli.OutputConfig, out io.Writer) int {
	presOpts := orchestration.PresentationOptions{
		Segments: segments,
		Verbose:  a.Config.Verbose,
		Quiet:    a.Config.Quiet,
	}

	presenter := cli.CLIResultPresenter{}
	var exitCode int
	if outputCfg.Quiet {
		// stdout carries the Final Result only; the summary goes to stderr.
		exitCode = orchestration.AnalyzeComparisonResults(results, presOpts, quietPresenter{out: out}, presenter, a.ErrWriter)
	} else {
		exitCode = orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, out)
	}
	if exitCode != apperrors.ExitSuccess {
		return exitCode
	}

	bestResult := findBestResult(results)
	if bestResult == nil || outputCfg.OutputFile == "" {
		return exitCode
	}
	if err := cli.WriteResultToFile(bestResult.Result, segments, bestResult.Duration, bestResult.Name, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !outputCfg.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}
	return exitCode
}

// quietPresenter prints the bare Final Result and nothing else.
type quietPresenter struct {
	out io.Writer
}

func (quietPresenter) PresentComparisonTable([]orchestration.CalculationResult, io.Writer) {}

func (p quietPresenter) PresentResult(result orchestration.CalculationResult, _ orchestration.PresentationOptions, _ io.Writer) {
	cli.DisplayQuietResult(p.out, result.Result)
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}
