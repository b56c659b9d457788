package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/digitsum/internal/cli"
	"github.com/agbru/digitsum/internal/config"
	"github.com/agbru/digitsum/internal/format"
	"github.com/agbru/digitsum/internal/ui"
)

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, results []calibrationResult, crossover int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sSegments%s\t│ %sSequential%s\t│ %sParallel%s\t│ %sSpeedup%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s\n", strings.Repeat("─", 60))
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(tw, "  %s%d%s\t│ %sN/A (%v)%s\t│\t│\n", ui.ColorCyan(), res.Segments, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		highlight := ""
		if res.Segments == crossover {
			highlight = fmt.Sprintf(" %s(Crossover)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%d%s\t│ %s%s ± %s%s\t│ %s%s ± %s%s\t│ %.2fx%s\n",
			ui.ColorCyan(), res.Segments, ui.ColorReset(),
			ui.ColorYellow(), format.FormatExecutionDuration(res.Sequential), format.FormatExecutionDuration(res.SequentialStdDev), ui.ColorReset(),
			ui.ColorYellow(), format.FormatExecutionDuration(res.Parallel), format.FormatExecutionDuration(res.ParallelStdDev), ui.ColorReset(),
			res.Speedup(), highlight)
	}
	tw.Flush()
	fmt.Fprintf(out, "\nMeasured crossover: %s%s%s\n", ui.ColorGreen(), cli.FormatCrossover(crossover), ui.ColorReset())
}

// PrintCalibrationOutput prints the crossover loaded from a cached profile.
//
// Parameters:
//   - cfg: The configuration updated with the cached crossover.
//   - out: The writer for output.
func PrintCalibrationOutput(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%sCached calibration%s: crossover=%s%s%s\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), cli.FormatCrossover(cfg.Threshold), ui.ColorReset())
}
