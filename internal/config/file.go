package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML form of the configuration. Pointer fields
// distinguish an absent key from a zero value.
type FileConfig struct {
	Strategy           *string `yaml:"strategy"`
	Input              *string `yaml:"input"`
	Threshold          *int    `yaml:"threshold"`
	Workers            *int    `yaml:"workers"`
	Collect            *string `yaml:"collect"`
	Timeout            *string `yaml:"timeout"`
	Quiet              *bool   `yaml:"quiet"`
	Verbose            *bool   `yaml:"verbose"`
	Log                *bool   `yaml:"log"`
	Metrics            *bool   `yaml:"metrics"`
	CalibrationProfile *string `yaml:"calibration_profile"`
	Output             *string `yaml:"output"`

	timeout time.Duration
}

// LoadFile reads and decodes a YAML configuration file. Unknown keys are
// rejected.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return parseFile(data)
}

func parseFile(data []byte) (*FileConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding config file: %w", err)
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", *fc.Timeout, err)
		}
		fc.timeout = d
	}
	return &fc, nil
}

// apply copies every present key into config unless its flag was set.
func (fc *FileConfig) apply(config *AppConfig, fs *flag.FlagSet) {
	setString(fs, []string{"strategy"}, fc.Strategy, &config.Strategy)
	setString(fs, []string{"input", "i"}, fc.Input, &config.Input)
	setString(fs, []string{"collect"}, fc.Collect, &config.Collect)
	setString(fs, []string{"calibration-profile"}, fc.CalibrationProfile, &config.CalibrationProfile)
	setString(fs, []string{"output", "o"}, fc.Output, &config.OutputFile)
	setInt(fs, "threshold", fc.Threshold, &config.Threshold)
	setInt(fs, "workers", fc.Workers, &config.Workers)
	setBool(fs, []string{"quiet", "q"}, fc.Quiet, &config.Quiet)
	setBool(fs, []string{"verbose", "v"}, fc.Verbose, &config.Verbose)
	setBool(fs, []string{"log"}, fc.Log, &config.Log)
	setBool(fs, []string{"metrics"}, fc.Metrics, &config.Metrics)
	if fc.Timeout != nil && !isFlagSet(fs, "timeout") {
		config.Timeout = fc.timeout
	}
}

func setString(fs *flag.FlagSet, flags []string, v *string, dst *string) {
	if v != nil && !isFlagSetAny(fs, flags...) {
		*dst = *v
	}
}

func setInt(fs *flag.FlagSet, name string, v *int, dst *int) {
	if v != nil && !isFlagSet(fs, name) {
		*dst = *v
	}
}

func setBool(fs *flag.FlagSet, flags []string, v *bool, dst *bool) {
	if v != nil && !isFlagSetAny(fs, flags...) {
		*dst = *v
	}
}
