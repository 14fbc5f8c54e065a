// outpost is a terminal incremental game: grow resources at base, survey
// the surroundings and walk the sites you find.
//
// Usage:
//
//	outpost play             - Play in the terminal
//	outpost map              - Print a generated site as ASCII
//	outpost journal          - Show past expeditions
//	outpost config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Frames per second (default: 30)
//	--config <path>       - Custom config YAML
//	--db <path>           - Journal database (default: ~/.outpost/journal.db)
//	--log-file <path>     - Log destination (default: ~/.outpost/outpost.log)
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "outpost",
	Short: "Outpost - an incremental game in your terminal",
	Long: `Outpost is a small incremental game. Energy builds up at base;
spend it to survey the surroundings, then embark to walk the sites you find.

Available commands:
  play     - Play in the terminal
  map      - Print a generated site
  journal  - Show past expeditions
  config   - Print the effective configuration

Examples:
  outpost play
  outpost play --fps 60 --log-level debug
  outpost map --width 20 --height 8
  outpost journal --limit 5
  outpost config --config ./my-outpost.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Frames per second")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.outpost/journal.db", "Path to expedition journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.outpost/outpost.log", "Path to log file (empty disables logging)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger opens the log file from the global flags. The returned closer
// must be called when the command finishes.
func newLogger() (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	if flagLogFile == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}

	path, err := expandHome(flagLogFile)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "outpost",
		Level:           level,
	})
	return logger, f, nil
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
