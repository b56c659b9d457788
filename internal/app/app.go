// Package app wires configuration, datasets, aggregators and presentation
// into the digitsum command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/digitsum/internal/calibration"
	"github.com/agbru/digitsum/internal/config"
	"github.com/agbru/digitsum/internal/dataset"
	apperrors "github.com/agbru/digitsum/internal/errors"
	"github.com/agbru/digitsum/internal/logging"
	"github.com/agbru/digitsum/internal/metrics"
	"github.com/agbru/digitsum/internal/tui"
	"github.com/agbru/digitsum/internal/ui"
)

// Application represents the digitsum application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Stdin     io.Reader
	Logger    logging.Logger
	Metrics   *metrics.Recorder
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithStdin sets the reader used for the "-" input.
func WithStdin(r io.Reader) AppOption {
	return func(a *Application) { a.Stdin = r }
}

// WithLogger sets the structured logger used by -log and -verbose.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, Stdin: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "digitsum"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	if cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = cfgWithProfile
	} else {
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}

	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "digitsum")
	}
	if cfg.Metrics {
		app.Metrics = metrics.NewRecorder()
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level := zerolog.InfoLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(false)

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	ds, err := a.loadDataset()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error loading dataset: %v\n", err)
		return apperrors.ExitErrorInput
	}

	var code int
	if a.Config.TUI {
		code = a.runTUI(ctx, ds)
	} else {
		code = a.runCalculate(ctx, ds, out)
	}

	if a.Metrics != nil {
		metricsOut := out
		if a.Config.Quiet {
			// stdout carries the Final Result only.
			metricsOut = a.ErrWriter
		}
		fmt.Fprintln(metricsOut, "\n--- Metrics ---")
		if err := a.Metrics.WriteText(metricsOut); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
		}
	}
	return code
}

// loadDataset reads the configured input: the built-in sample, stdin or a file.
func (a *Application) loadDataset() (dataset.Dataset, error) {
	switch a.Config.Input {
	case "":
		return dataset.New(dataset.Sample), nil
	case "-":
		return dataset.Load(a.Stdin)
	default:
		return dataset.LoadFile(a.Config.Input)
	}
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, stop := lifecycle(ctx, a.Config)
	defer stop()
	return calibration.RunCalibration(ctx, a.Config, out)
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context, ds dataset.Dataset) int {
	ctx, stop := lifecycle(ctx, a.Config)
	defer stop()
	return tui.Run(ctx, ds, a.Config, Version, a.baseOptions()...)
}

// lifecycle bounds ctx with the configured timeout and the interrupt signals.
func lifecycle(ctx context.Context, cfg config.AppConfig) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
