// Package cli is the thin cobra front end for the driftship binary: it
// resolves configuration and collaborators, then delegates to
// internal/ship for every decision. Grounded on the teacher's
// internal/cli/root.go (global flags, PersistentPreRunE config load,
// versionInfo, Execute/ExecuteContext shape), narrowed from the teacher's
// lipgloss/bubbletea wizard front end to the handful of commands
// SPEC_FULL.md §2 names (ship, plan, version) and switched from
// charmbracelet/log to log/slog per SPEC_FULL.md §2's ambient-stack
// decision.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/driftship/driftship/internal/config"
	"github.com/driftship/driftship/internal/security"
	"github.com/driftship/driftship/internal/version"
)

var (
	versionInfo struct {
		Version string
		Commit  string
		Date    string
	}

	cfgFile    string
	outputJSON bool
	logLevel   string

	logger *slog.Logger
)

// SetVersionInfo sets the version information reported by the version
// command, supplied by main at build time via ldflags.
func SetVersionInfo(v, commit, date string) {
	versionInfo.Version = v
	versionInfo.Commit = commit
	versionInfo.Date = date
}

var rootCmd = &cobra.Command{
	Use:   "driftship",
	Short: "Ship orchestrator: preflight, version, test, bump, publish, git, release",
	Long: `driftship drives a single release through preflight checks, version
resolution, test, bump, publish, git, and GitHub release phases, firing
configured hooks at each phase boundary.

Run 'driftship ship' to execute a release, or 'driftship plan' to see what
it would do without making changes.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a context for graceful
// shutdown.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// Cleanup releases any resources the CLI layer opened (none currently; a
// hook for main's shutdown sequence to call unconditionally).
func Cleanup() {}

func init() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	security.EnableInCI()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: search for .driftship.{yaml,yml,json,toml})")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output results as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(shipCmd)
	rootCmd.AddCommand(planCmd)
}

func configureLogLevel() {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves the on-disk configuration for root into a
// ship.Config, honoring an explicit --config path when set.
func loadConfig(root string) (*config.Config, error) {
	loader := config.NewLoader()
	if cfgFile != "" {
		loader.WithConfigPath(cfgFile)
	} else {
		loader.WithSearchPaths(root)
	}
	return loader.Load()
}
