// Package commands implements the statbench CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

// rootCmd runs the benchmark when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "statbench",
	Short: "Compare file metadata providers on a synthetic tree",
	Long: `statbench builds a small directory tree and times how fast each metadata
provider can stat three paths (a directory, a file and a missing path) and walk
the whole tree.

Every option can be set in config.yaml or overridden through the environment,
e.g. STATBENCH_TREE_DEPTH=3 or STATBENCH_LOGGING_LEVEL=debug.`,
	RunE:          runBench,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or $HOME/.config/statbench/config.yaml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// GetConfigFile returns the config file path from the global flag.
func GetConfigFile() string {
	return cfgFile
}
