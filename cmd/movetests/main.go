// Command movetests generates and checks test data for chess move generators.
//
// Usage:
//
//	movetests generate INPUT OUTPUT [--minify]
//	movetests verify SUITE
//	movetests watch INPUT OUTPUT
//	movetests seed OUTPUT [--count N] [--seed S]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/garlicgarrison/chess-move-tests/config"
	"github.com/garlicgarrison/chess-move-tests/logging"
	"github.com/garlicgarrison/chess-move-tests/metrics"
	"github.com/garlicgarrison/chess-move-tests/runner"
	"github.com/garlicgarrison/chess-move-tests/suite"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

type options struct {
	configPath  string
	workers     int
	logLevel    string
	logFormat   string
	metricsFile string
	keepOrder   bool
}

// app is what every subcommand needs once flags and config are resolved.
type app struct {
	cfg     config.Config
	runner  *runner.Runner
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var minify bool

	rootCmd := &cobra.Command{
		Use:           "movetests [INPUT OUTPUT]",
		Short:         "Generate test data for chess move generators",
		Version:       version,
		Args:          cobra.MatchAll(cobra.RangeArgs(0, 2), rootArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			a, err := opts.app(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("minify") {
				a.cfg.Minify = minify
			}
			return a.generate(cmd.Context(), args[0], args[1])
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.IntVar(&opts.workers, "workers", 0, "Positions generated in parallel (default: number of CPUs)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (console, json)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after each run")
	flags.BoolVar(&opts.keepOrder, "keep-order", false, "Keep the move generation order instead of sorting by UCI")
	rootCmd.Flags().BoolVarP(&minify, "minify", "m", false, "Minify the output JSON file")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newVerifyCmd(opts),
		newWatchCmd(opts),
		newSeedCmd(opts),
	)

	return rootCmd
}

func rootArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return fmt.Errorf("expected INPUT and OUTPUT, got %d argument", len(args))
	}
	return nil
}

// app loads the config file and lets explicitly set flags override it.
func (o *options) app(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = o.metricsFile
	}
	if flags.Changed("keep-order") {
		cfg.KeepOrder = o.keepOrder
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logging.Configure(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	}); err != nil {
		return nil, err
	}

	logger := logging.WithComponent("runner")
	m := metrics.New()

	return &app{
		cfg: cfg,
		runner: runner.New(runner.Config{
			Workers:   cfg.Workers,
			KeepOrder: cfg.KeepOrder,
		}, m, logger),
		metrics: m,
		logger:  logging.WithComponent("cli"),
	}, nil
}

func (a *app) format() suite.Format {
	return suite.Format{Minify: a.cfg.Minify, Indent: a.cfg.Indent}
}

func (a *app) writeMetrics() {
	if a.cfg.MetricsFile == "" {
		return
	}
	if err := a.metrics.WriteFile(a.cfg.MetricsFile); err != nil {
		a.logger.Warn().Err(err).Str("path", a.cfg.MetricsFile).Msg("write metrics")
	}
}
