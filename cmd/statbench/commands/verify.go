package commands

import (
	"fmt"
	"io"

	internal "github.com/ZanzyTHEbar/statbench/statbench"
	"github.com/ZanzyTHEbar/statbench/statbench/bench"
	"github.com/ZanzyTHEbar/statbench/statbench/config"
	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/stat"
	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/tree"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every provider sees the same tree",
	Long: `Build the benchmark tree and check, once per provider, that the three stat
targets have the expected kinds and that a walk finds the expected number of
directories and files. Exits non-zero if any provider disagrees.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(GetConfigFile())
		if err != nil {
			return err
		}
		return verifyProviders(cfg, cmd.OutOrStdout(), internal.GetLogger(cfg.Logging.Level))
	},
}

func verifyProviders(cfg *config.Config, out io.Writer, logger zerolog.Logger) error {
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

	dirs, files := tree.Expected(cfg.Tree.Depth, cfg.Tree.Fanout)
	want := bench.Expectation{
		Dirs:     dirs,
		Files:    files + 1, // sentinel
		FileSize: int64(len(cfg.Tree.Content)),
	}

	if err := bench.Verify(providers, bench.Targets{WalkRoot: fx.Root, Stat: fx.Targets()}, want); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d providers agree: %d directories, %d files under %s\n", len(providers), want.Dirs, want.Files, fx.Root)
	return nil
}
