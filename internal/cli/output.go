// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatCrossover].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/agbru/digitsum/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything but the result.
	Quiet bool
}

// WriteResultToFile writes a Final Result to a file with a commented header.
//
// Parameters:
//   - result: The Final Result.
//   - segments: The number of segments of the dataset.
//   - duration: The run duration.
//   - strategy: The strategy name used.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result uint64, segments int, duration time.Duration, strategy string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Digit-Sum Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Strategy: %s\n", strategy)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Segments: %d\n", segments)
	fmt.Fprintf(file, "\n")
	if _, err := fmt.Fprintf(file, "Final sum result: %d\n", result); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return file.Close()
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single-line result suitable for scripting.
func FormatQuietResult(result uint64) string {
	return strconv.FormatUint(result, 10)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, result uint64) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig prints the result of a run and saves it when an
// output file is configured.
//
// Parameters:
//   - out: The output writer.
//   - result: The Final Result.
//   - segments: The number of segments.
//   - duration: The run duration.
//   - strategy: The strategy name.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result uint64, segments int, duration time.Duration, strategy string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, segments, duration, strategy, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
