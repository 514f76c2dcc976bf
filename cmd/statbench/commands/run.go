package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	internal "github.com/ZanzyTHEbar/statbench/statbench"
	"github.com/ZanzyTHEbar/statbench/statbench/bench"
	"github.com/ZanzyTHEbar/statbench/statbench/config"
	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/stat"
	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/tree"
	"github.com/ZanzyTHEbar/statbench/statbench/metrics"
	"github.com/ZanzyTHEbar/statbench/statbench/report"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the tree and run the benchmark (default)",
	Long: `Build the benchmark tree, then time every configured provider through the
warmup and test phases. Timings go to stdout; logs go to stderr.

Examples:
  # Run with defaults
  statbench run

  # Only compare two providers, deeper tree
  STATBENCH_TREE_DEPTH=3 statbench run --config bench.yaml

  # Export the timings for the node_exporter textfile collector
  STATBENCH_REPORT_METRICSFILE=/var/lib/node_exporter/statbench.prom statbench run`,
	RunE: runBench,
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(GetConfigFile())
	if err != nil {
		return err
	}
	logger := internal.GetLogger(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runBenchmark(ctx, cfg, cmd.OutOrStdout(), logger)
}

// runBenchmark prepares the fixture, runs the configured plan and writes the
// optional reports.
func runBenchmark(ctx context.Context, cfg *config.Config, out io.Writer, logger zerolog.Logger) error {
	fx, err := tree.Prepare(cfg.Tree, logger)
	if err != nil {
		return err
	}
	if cfg.Tree.Cleanup {
		defer func() {
			if cerr := fx.Cleanup(); cerr != nil {
				logger.Warn().Err(cerr).Msg("Failed to remove benchmark tree")
			}
		}()
	}

	providers, err := stat.NewAll(cfg.Bench.Providers, stat.Options{Fs: afero.NewOsFs()})
	if err != nil {
		return err
	}

	var observers []bench.Observer
	var recorder *metrics.Recorder
	if cfg.Report.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		observers = append(observers, recorder)
	}

	runner := bench.NewRunner(bench.NewDriver(out, logger), logger, observers...)
	plan := bench.BuildPlan(cfg.Bench.Stat, cfg.Bench.Walk)

	results, err := runner.Run(ctx, plan, providers, bench.Targets{WalkRoot: fx.Root, Stat: fx.Targets()})
	if err != nil {
		return err
	}

	if cfg.Report.Summary {
		if err := report.PrintSummary(out, bench.Summarize(results)); err != nil {
			return fmt.Errorf("failed to print summary: %w", err)
		}
	}

	if recorder != nil {
		if err := recorder.WriteTextfile(cfg.Report.MetricsFile); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.Report.MetricsFile).Msg("Metrics written")
	}

	return nil
}
