// Package cli implements the cargo-abc command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cargo-abc/pkg/buildinfo"
	"github.com/matzehuels/cargo-abc/pkg/manifest"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "cargo-abc"

	// envPrefix prefixes environment variables that override config keys,
	// e.g. CARGO_ABC_DRY_RUN.
	envPrefix = "CARGO_ABC"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives results; Err receives logs, progress and failures.
	Out io.Writer
	Err io.Writer
}

// New creates a new CLI instance. Logs and progress go to errw.
func New(out, errw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errw, level),
		Out:    out,
		Err:    errw,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command. The root command itself sorts
// manifests; completion and version are registered as subcommands.
func (c *CLI) RootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "cargo-abc",
		Short: "cargo-abc sorts the dependencies of every Cargo.toml in a tree",
		Long: `cargo-abc walks a directory tree, finds every Cargo.toml and sorts the keys of
its [dependencies] and [dev-dependencies] tables alphabetically.

Comments, blank lines, quoting and value formatting are kept exactly as written;
only the order of entries changes. Files that are already sorted are not touched.

Only regular files are considered: symlinked Cargo.toml files and symlinked
directories are skipped, so a manifest is never visited twice.`,
		Example: `  cargo-abc
  cargo-abc --path ~/src/workspace --exclude 'target/**'
  cargo-abc --check --diff`,
		Version:       buildinfo.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), configFile)
			if err != nil {
				return c.fail(err)
			}
			c.Logger.Debug("configuration loaded", "file", cfg.File, "path", cfg.Path, "tables", cfg.Tables)
			return c.runSort(cmd.Context(), cfg)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.Flags()
	flags.String(keyPath, ".", "root directory to scan")
	flags.StringSlice(keyTables, manifest.DefaultTables(), "top-level tables to sort")
	flags.StringSlice(keyExclude, nil, "doublestar patterns of directories to skip (e.g. 'target/**')")
	flags.Bool(keyCheck, false, "do not write; exit 1 if any manifest is unsorted")
	flags.Bool(keyDiff, false, "print a unified diff of every change")
	flags.Bool(keyDryRun, false, "report changes without writing them")
	flags.Bool(keyFailFast, false, "stop at the first manifest that cannot be sorted")
	flags.StringVar(&configFile, "config", "", "config file (default: <path>/.cargo-abc.toml or $XDG_CONFIG_HOME/cargo-abc/config.toml)")

	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// versionCommand prints build information.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(c.Out, buildinfo.String())
		},
	}
}
