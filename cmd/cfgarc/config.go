// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cfgarc/cfgarc/internal/config"
	"github.com/cfgarc/cfgarc/internal/issue"
)

// newConfigCommand creates the `cfgarc config` command tree.
func newConfigCommand(flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cfgarc configuration",
		Long: `Manage cfgarc configuration.

The configuration file lives at:
  - Linux: ~/.config/cfgarc/config.cue
  - macOS: ~/Library/Application Support/cfgarc/config.cue
  - Windows: %APPDATA%\cfgarc\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, flags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented starter config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, flags)
		},
	})

	return cfgCmd
}

// showConfig prints the merged configuration and where it came from.
func showConfig(cmd *cobra.Command, flags *rootFlags) error {
	cfg, source, err := config.LoadWithSource(cmd.Context(), config.LoadOptions{ConfigFilePath: flags.cfgFile})
	if err != nil {
		styleName := glamourStyle(resolveColorMode(nil, flags.noColor))
		return reportIssue(cmd, err, issue.ConfigLoadFailedId, styleName)
	}

	applyColorMode(resolveColorMode(cfg, flags.noColor))

	stdout := cmd.OutOrStdout()
	fmt.Fprintln(stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(stdout)

	origin := SubtitleStyle.Render("(using defaults)")
	if source != "" {
		origin = source
	}
	fmt.Fprintf(stdout, "%s: %s\n", ValueStyle.Render("Config file"), origin)
	fmt.Fprintln(stdout)

	for _, kv := range [][2]string{
		{"output_dir", cfg.OutputDir.String()},
		{"format", string(cfg.Format)},
		{"color", string(cfg.Color)},
		{"manifest_name", cfg.ManifestName.String()},
	} {
		fmt.Fprintf(stdout, "%s: %s\n", ValueStyle.Render(kv[0]), SuccessStyle.Render(kv[1]))
	}

	return nil
}

// initConfig writes the default config file, refusing to overwrite one
// that already exists.
func initConfig(cmd *cobra.Command, flags *rootFlags) error {
	applyColorMode(resolveColorMode(nil, flags.noColor))
	stdout := cmd.OutOrStdout()

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to determine config directory: %w", err)
	}
	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)

	if _, statErr := os.Stat(cfgPath); statErr == nil {
		fmt.Fprintf(stdout, "%s Config file already exists at %s (not overwriting)\n",
			WarningStyle.Render("!"), ValueStyle.Render(cfgPath))
		return nil
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), ValueStyle.Render(cfgPath))
	fmt.Fprintf(stdout, "  Edit it, or run %s to view the result\n", ValueStyle.Render("cfgarc config show"))
	return nil
}
