// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/stremme1/vsim"
	"github.com/stremme1/vsim/hwlib"
	"github.com/stremme1/vsim/internal/runcfg"
	"github.com/stremme1/vsim/internal/telemetry"
)

// newLogger is replaced in tests.
var newLogger = telemetry.NewLogger

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vsim",
		Short:         "vsim - discrete-event simulator for compiled logic designs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand(), newDesignsCommand())
	return root
}

func newDesignsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "designs",
		Short: "List available designs",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, n := range hwlib.Designs() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
		},
	}
}

func newRunCommand() *cobra.Command {
	var configPath string
	cfg := runcfg.Default()

	cmd := &cobra.Command{
		Use:   "run [design]",
		Short: "Run a design until it finishes",
		Example: `  # Run the counter for 100 ticks
  vsim run counter --until 100

  # Run the debouncer testbench with random initial values
  vsim run debouncer --reset random --seed 42 --log-level debug`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				fc, err := runcfg.Load(configPath)
				if err != nil {
					return err
				}
				applyFlags(cmd, &fc, &cfg)
				cfg = fc
			}
			if len(args) > 0 {
				cfg.Design = args[0]
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd, &cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "run configuration file (YAML)")
	f.StringVar(&cfg.Instance, "instance", cfg.Instance, "instance name")
	f.Uint64Var(&cfg.Until, "until", cfg.Until, "stop before the first event after this time (0: no limit)")
	f.IntVar(&cfg.IterationCap, "cap", cfg.IterationCap, "maximum iterations per region")
	f.StringVar(&cfg.Reset, "reset", cfg.Reset, "initial value policy: zero, ones or random")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for random initial values")
	f.BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "log kernel metrics at the end of the run")
	f.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	f.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log format: console or json")
	f.StringVar(&cfg.Log.Output, "log-output", cfg.Log.Output, "log output: stdout, stderr or a file")
	return cmd
}

// applyFlags copies the flags set on the command line over the values loaded
// from a configuration file.
//
func applyFlags(cmd *cobra.Command, dst, flags *runcfg.RunConfig) {
	set := func(name string, f func()) {
		if cmd.Flags().Changed(name) {
			f()
		}
	}
	set("instance", func() { dst.Instance = flags.Instance })
	set("until", func() { dst.Until = flags.Until })
	set("cap", func() { dst.IterationCap = flags.IterationCap })
	set("reset", func() { dst.Reset = flags.Reset })
	set("seed", func() { dst.Seed = flags.Seed })
	set("metrics", func() { dst.Metrics = flags.Metrics })
	set("log-level", func() { dst.Log.Level = flags.Log.Level })
	set("log-format", func() { dst.Log.Format = flags.Log.Format })
	set("log-output", func() { dst.Log.Output = flags.Log.Output })
}

func run(cmd *cobra.Command, cfg *runcfg.RunConfig) (err error) {
	log, closeLog, err := newLogger(cfg.Logging())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeLog(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close log output")
		}
	}()
	log = log.With().Str("run_id", uuid.NewString()).Logger()

	spec, err := hwlib.Design(cfg.Design)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := vsim.NewMetrics(reg)
	if err != nil {
		return errors.Wrap(err, "failed to register metrics")
	}
	mc, err := cfg.ModelConfig(&log, metrics)
	if err != nil {
		return err
	}
	m, err := vsim.New(spec, mc)
	if err != nil {
		return err
	}

	log.Info().Str("design", cfg.Design).Str("reset", cfg.Reset).Uint64("until", cfg.Until).Msg("starting simulation")
	err = vsim.Run(cmd.Context(), m, cfg.Until)
	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Uint64("time", m.Time()).Bool("finished", m.Finished()).Msg("simulation ended")

	if cfg.Metrics {
		if gerr := telemetry.Gather(&log, reg); gerr != nil && err == nil {
			err = gerr
		}
	}
	return err
}
