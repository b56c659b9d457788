package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/digitsum/internal/aggregate"
	"github.com/agbru/digitsum/internal/config"
	"github.com/agbru/digitsum/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the dataset, timeout, environment details and the crossover.
//
// Parameters:
//   - cfg: The application configuration.
//   - segments: The number of segments in the dataset.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, segments int, out io.Writer) {
	source := cfg.Input
	switch source {
	case "":
		source = "built-in sample"
	case "-":
		source = "stdin"
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Summing digits of %s%d%s segments from %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), segments, ui.ColorReset(), ui.ColorCyan(), source, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Crossover: %s%s%s, workers: %s%s%s, collect: %s%s%s.\n",
		ui.ColorCyan(), FormatCrossover(cfg.Threshold), ui.ColorReset(),
		ui.ColorCyan(), formatWorkers(cfg.Workers), ui.ColorReset(),
		ui.ColorCyan(), cfg.Collect, ui.ColorReset())
}

// FormatCrossover renders a crossover threshold for display.
func FormatCrossover(threshold int) string {
	if threshold >= aggregate.NeverParallel {
		return "never parallel"
	}
	return fmt.Sprintf("%d segments", threshold)
}

func formatWorkers(workers int) string {
	if workers <= 0 {
		return "one goroutine per segment"
	}
	return fmt.Sprintf("%d", workers)
}

// PrintExecutionMode displays the execution mode (single strategy vs comparison).
//
// Parameters:
//   - aggregators: The aggregators that will be executed.
//   - segments: The number of segments in the dataset.
//   - out: The writer for standard output.
func PrintExecutionMode(aggregators []aggregate.Aggregator, segments int, out io.Writer) {
	var modeDesc string
	switch {
	case len(aggregators) > 1:
		modeDesc = "Comparison of all strategies"
	case aggregators[0].Name() == aggregate.StrategyAuto:
		chosen := aggregators[0]
		if auto, ok := chosen.(*aggregate.Auto); ok {
			chosen = auto.Choose(segments)
		}
		modeDesc = fmt.Sprintf("Automatic selection, %s%s%s strategy",
			ui.ColorGreen(), chosen.Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Single run with the %s%s%s strategy",
			ui.ColorGreen(), aggregators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
