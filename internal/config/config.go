// Package config parses and validates the digitsum configuration from the
// command line, DIGITSUM_* environment variables and an optional YAML file.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/agbru/digitsum/internal/aggregate"
	apperrors "github.com/agbru/digitsum/internal/errors"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "DIGITSUM_"

// DefaultTimeout bounds a whole invocation.
const DefaultTimeout = 1 * time.Minute

// AppConfig aggregates every parameter of an invocation.
type AppConfig struct {
	// Strategy is one of auto, sequential, parallel or all.
	Strategy string
	// Input is a dataset path, "-" for stdin, or empty for the built-in sample.
	Input string
	// Threshold is the segment count from which auto runs in parallel.
	// Zero means "estimate from the hardware".
	Threshold int
	// Workers caps concurrently running units. Zero means one goroutine per
	// segment with no cap.
	Workers int
	// Collect is the parallel join order: schedule or completion.
	Collect string
	// Timeout bounds the invocation.
	Timeout time.Duration
	// Quiet prints the Final Result only.
	Quiet bool
	// Verbose also routes diagnostics to the structured logger.
	Verbose bool
	// Log replaces the diagnostic lines with structured log entries.
	Log bool
	// Metrics dumps Prometheus metrics after the run.
	Metrics bool
	// Calibrate runs the crossover calibration instead of a computation.
	Calibrate bool
	// CalibrationProfile is the path of the calibration profile.
	CalibrationProfile string
	// ConfigFile is an optional YAML configuration file.
	ConfigFile string
	// TUI launches the interactive dashboard.
	TUI bool
	// OutputFile receives the Final Result when set.
	OutputFile string
}

// strategies lists the accepted -strategy values.
var strategies = []string{aggregate.StrategyAuto, aggregate.StrategySequential, aggregate.StrategyParallel, aggregate.StrategyAll}

// CollectOrder converts the Collect field.
func (c AppConfig) CollectOrder() aggregate.CollectOrder {
	if c.Collect == aggregate.CollectCompletionOrder.String() {
		return aggregate.CollectCompletionOrder
	}
	return aggregate.CollectScheduleOrder
}

// ParseConfig parses args into an AppConfig and validates it.
//
// Priority: CLI flags > environment variables > config file > defaults.
//
// Parameters:
//   - programName: Name shown in usage output.
//   - args: Command-line arguments without the program name.
//   - errWriter: Destination of usage and error messages.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp for -h, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	config := AppConfig{}
	fs.StringVar(&config.Strategy, "strategy", aggregate.StrategyAuto, "Aggregation strategy: auto, sequential, parallel or all.")
	fs.StringVar(&config.Input, "input", "", "Dataset file ('-' for stdin). Defaults to the built-in sample.")
	fs.StringVar(&config.Input, "i", "", "Shorthand for -input.")
	fs.IntVar(&config.Threshold, "threshold", 0, "Segment count from which auto runs in parallel (0 = estimate).")
	fs.IntVar(&config.Workers, "workers", 0, "Maximum concurrently running units (0 = one goroutine per segment).")
	fs.StringVar(&config.Collect, "collect", aggregate.CollectScheduleOrder.String(), "Parallel join order: schedule or completion.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the invocation.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print the final result only.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Also log diagnostics as structured entries.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&config.Log, "log", false, "Emit diagnostics as structured log entries instead of lines.")
	fs.BoolVar(&config.Metrics, "metrics", false, "Print Prometheus metrics after the run.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Measure the sequential/parallel crossover and save it.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Path of the calibration profile.")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML configuration file.")
	fs.BoolVar(&config.TUI, "tui", false, "Launch the interactive dashboard.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the final result to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for -output.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		file, err := LoadFile(config.ConfigFile)
		if err != nil {
			fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
			return AppConfig{}, apperrors.NewConfigError("%v", err)
		}
		file.apply(&config, fs)
	}
	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the consistency of the configuration.
func (c AppConfig) Validate() error {
	if !slices.Contains(strategies, c.Strategy) {
		return apperrors.NewConfigError("unknown strategy %q (want one of %v)", c.Strategy, strategies)
	}
	if c.Collect != aggregate.CollectScheduleOrder.String() && c.Collect != aggregate.CollectCompletionOrder.String() {
		return apperrors.NewConfigError("unknown collect order %q (want schedule or completion)", c.Collect)
	}
	if c.Threshold < 0 {
		return apperrors.NewConfigError("threshold must not be negative, got %d", c.Threshold)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers must not be negative, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("-quiet and -tui are mutually exclusive")
	}
	return nil
}
