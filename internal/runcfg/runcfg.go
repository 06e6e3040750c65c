// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package runcfg loads and validates the run configuration of the vsim
// command.
//
package runcfg

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stremme1/vsim"
	"github.com/stremme1/vsim/internal/telemetry"
	"gopkg.in/yaml.v3"
)

// RunConfig is the configuration of a simulation run.
//
//	design: debouncer
//	instance: TOP
//	until: 0
//	iteration_cap: 100
//	reset: random
//	seed: 42
//	log:
//	  level: info
//	  format: console
//	  output: stderr
//
type RunConfig struct {
	Design       string `yaml:"design" validate:"required"`
	Instance     string `yaml:"instance"`
	Until        uint64 `yaml:"until"`
	IterationCap int    `yaml:"iteration_cap" validate:"gte=1,lte=1000000"`
	Reset        string `yaml:"reset" validate:"oneof=zero ones random"`
	Seed         uint64 `yaml:"seed"`
	Metrics      bool   `yaml:"metrics"`
	Log          Log    `yaml:"log"`
}

// Log is the logging section of a RunConfig.
//
type Log struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
	Output string `yaml:"output"`
}

// Default returns the default run configuration.
//
func Default() RunConfig {
	return RunConfig{
		Design:       "counter",
		IterationCap: vsim.DefaultIterationCap,
		Reset:        vsim.ResetZero.String(),
		Log: Log{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}

var validate = validator.New()

// Load reads a YAML configuration file. Settings absent from the file keep
// their default value.
//
func Load(path string) (RunConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read run configuration")
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse %s", path)
	}
	return cfg, nil
}

// Validate checks the configuration.
//
func (c *RunConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid run configuration")
	}
	return nil
}

// Logging returns the logger configuration.
//
func (c *RunConfig) Logging() telemetry.LoggingConfig {
	return telemetry.LoggingConfig{Level: c.Log.Level, Format: c.Log.Format, Output: c.Log.Output}
}

// ModelConfig converts the run configuration into a model configuration.
//
func (c *RunConfig) ModelConfig(log *zerolog.Logger, m *vsim.Metrics) (vsim.Config, error) {
	r, err := vsim.ParseReset(c.Reset)
	if err != nil {
		return vsim.Config{}, err
	}
	return vsim.Config{
		Name:         c.Instance,
		IterationCap: c.IterationCap,
		Reset:        r,
		Seed:         c.Seed,
		Logger:       log,
		Metrics:      m,
	}, nil
}
