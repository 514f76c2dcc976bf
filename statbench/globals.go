package internal

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// DefaultAppName is used for config lookup and the env prefix
	DefaultAppName    = "statbench"
	DefaultEnvPrefix  = strings.ToUpper(DefaultAppName)
	DefaultConfigPath = filepath.Join(getHomeDir(), ".config", DefaultAppName)

	// Benchmark fixture layout
	DefaultWorkDir     = filepath.Join("build", "work")
	DefaultTreeDirName = "test-dir"
	DefaultSentinel    = "test-file"
	DefaultMissing     = "missing"
	DefaultContent     = "content"
	DefaultTreeDepth   = 2
	DefaultTreeFanout  = 5
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			log.Printf("Unable to get home or working directory, using /tmp: %v", err)
			return "/tmp"
		}
		log.Printf("Unable to get home directory, using current working directory: %v", err)
		return cwd
	}
	return homeDir
}

// GetLogger returns a zerolog logger writing to stderr at the given level.
// Unknown or empty levels fall back to info.
func GetLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
