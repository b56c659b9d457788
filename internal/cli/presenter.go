package cli

import (
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/digitsum/internal/errors"
	"github.com/agbru/digitsum/internal/format"
	"github.com/agbru/digitsum/internal/orchestration"
	"github.com/agbru/digitsum/internal/ui"
)

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for aggregation results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable displays the comparison summary table with
// strategy names, durations, results and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := 8     // "Strategy" header length
	maxDurationLen := 8 // "Duration" header length
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len([]rune(format.FormatExecutionDuration(res.Duration))))
	}

	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-8),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success (%s)%s", ui.ColorGreen(), format.FormatUint(res.Result), ui.ColorReset())
		}
		duration := format.FormatExecutionDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len([]rune(duration))),
			status)
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the final aggregation result.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietResult(out, result.Result)
		return
	}
	DisplayResult(result, opts.Segments, opts.Verbose, out)
}

// FormatDuration formats a duration for display using the CLI's standard
// duration formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError handles aggregation errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

// Verify interface compliance.
var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayResult prints the summary of a successful run.
//
// Parameters:
//   - result: The run to summarize.
//   - segments: The number of segments of the dataset.
//   - verbose: Also print the ungrouped value and the per-segment mean.
//   - out: The output writer.
func DisplayResult(result orchestration.CalculationResult, segments int, verbose bool, out io.Writer) {
	fmt.Fprintf(out, "\n--- Results ---\n")
	fmt.Fprintf(out, "Strategy:  %s%s%s\n", ui.ColorGreen(), result.Name, ui.ColorReset())
	fmt.Fprintf(out, "Segments:  %s%d%s\n", ui.ColorCyan(), segments, ui.ColorReset())
	fmt.Fprintf(out, "Duration:  %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
	fmt.Fprintf(out, "Digit sum: %s%s%s\n", ui.ColorBold(), format.FormatUint(result.Result), ui.ColorReset())
	if verbose {
		fmt.Fprintf(out, "Throughput: %s\n", format.FormatThroughput(segments, result.Duration))
		fmt.Fprintf(out, "Raw value: %d\n", result.Result)
		if segments > 0 {
			fmt.Fprintf(out, "Mean per segment: %.2f\n", float64(result.Result)/float64(segments))
		}
	}
}
