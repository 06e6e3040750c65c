// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package telemetry builds the loggers and metrics registries used by the
// vsim command.
//
package telemetry

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// LoggingConfig configures NewLogger.
//
type LoggingConfig struct {
	Level  string // trace, debug, info, warn, error
	Format string // console or json
	Output string // stdout, stderr or a file path
}

// NewLogger creates a logger for the given configuration. The returned close
// function releases the output file, if any.
//
func NewLogger(cfg LoggingConfig) (zerolog.Logger, func() error, error) {
	var w io.Writer
	closeFn := func() error { return nil }
	switch cfg.Output {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, errors.Wrap(err, "failed to open log output")
		}
		w, closeFn = f, f.Close
	}

	switch cfg.Format {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "json":
	default:
		closeFn()
		return zerolog.Nop(), nil, errors.Errorf("unknown log format %q", cfg.Format)
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		closeFn()
		return zerolog.Nop(), nil, err
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), closeFn, nil
}

// ParseLevel parses a log level name. An empty name means info.
//
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	l, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "invalid log level %q", name)
	}
	return l, nil
}

// Gather collects all metrics from g and logs their values at info level.
//
func Gather(log *zerolog.Logger, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather metrics")
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			ev := log.Info().Str("metric", mf.GetName())
			for _, lp := range m.GetLabel() {
				ev = ev.Str(lp.GetName(), lp.GetValue())
			}
			switch {
			case m.Counter != nil:
				ev = ev.Float64("value", m.Counter.GetValue())
			case m.Gauge != nil:
				ev = ev.Float64("value", m.Gauge.GetValue())
			case m.Histogram != nil:
				ev = ev.Uint64("count", m.Histogram.GetSampleCount()).Float64("sum", m.Histogram.GetSampleSum())
			}
			ev.Msg("metric")
		}
	}
	return nil
}
