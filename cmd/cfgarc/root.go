// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for cfgarc.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/cfgarc/cfgarc/internal/config"
	"github.com/cfgarc/cfgarc/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the persistent flag values shared by every subcommand.
// Handlers receive a pointer to the same instance the root command binds,
// so values are available once Cobra has parsed the command line.
type rootFlags struct {
	verbose bool
	cfgFile string
	noColor bool
}

// newRootCommand builds the cfgarc command tree. All subcommands are
// constructed here so tests can execute the full tree without going
// through fang.
func newRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "cfgarc",
		Short: "Inspect and unpack packed config containers",
		Long: TitleStyle.Render("cfgarc") + SubtitleStyle.Render(" - Inspect and unpack packed config containers") + `

cfgarc reads packed config containers (the binary bundle format used to
ship device configuration trees) and turns them back into something a
human can work with: YAML files on disk, entry listings, and header
summaries.

` + SubtitleStyle.Render("Examples:") + `
  cfgarc list bundle.mmp              List the entries in a container
  cfgarc info bundle.mmp              Show header and size details
  cfgarc show bundle.mmp app.cfg      Print a single entry as YAML
  cfgarc unpack bundle.mmp -o out     Unpack every entry under out/
  cfgarc config show                  Show current configuration`,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.cfgFile, "config", "", "config file (default is $HOME/.config/cfgarc/config.cue)")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable styled output")

	rootCmd.AddCommand(newUnpackCommand(app, flags))
	rootCmd.AddCommand(newListCommand(app, flags))
	rootCmd.AddCommand(newInfoCommand(app, flags))
	rootCmd.AddCommand(newShowCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(flags))

	return rootCmd
}

// loadCommandConfig loads configuration for a command handler and applies
// the resolved color mode before any styled output is produced. Load
// failures without an explicit --config degrade to defaults with a warning.
func loadCommandConfig(cmd *cobra.Command, app *App, flags *rootFlags) (*config.Config, error) {
	cfg, err := loadConfigWithFallback(cmd.Context(), app.Config, flags.cfgFile, cmd.ErrOrStderr(), flags.verbose)
	if err != nil {
		return nil, err
	}

	applyColorMode(resolveColorMode(cfg, flags.noColor))
	return cfg, nil
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it through fang.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithoutCompletions(),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(renderExecuteError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.Code
			if code.Validate() != nil {
				code = types.ExitFailure
			}
			os.Exit(int(code))
		}
		os.Exit(1)
	}
}

// renderExecuteError keeps fang from double-reporting failures the handler
// already explained. An ExitError without a cause means a styled message
// (usually an issue card) went to stderr and only the exit code remains to
// be carried out.
func renderExecuteError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
