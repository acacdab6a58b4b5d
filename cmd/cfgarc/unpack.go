// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cfgarc/cfgarc/internal/config"
	"github.com/cfgarc/cfgarc/internal/issue"
	"github.com/cfgarc/cfgarc/internal/logging"
	"github.com/cfgarc/cfgarc/internal/unpack"
)

// newUnpackCommand creates the `cfgarc unpack` command.
func newUnpackCommand(app *App, flags *rootFlags) *cobra.Command {
	var (
		outputDir string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "unpack <container>",
		Short: "Unpack a container into YAML files",
		Long: `Unpack every entry of a packed config container into YAML files.

Each entry becomes one file under the output directory, mirroring the
entry path hierarchy, with the entry's stored modification time applied.
Entry paths are sanitized first: drive letters and root prefixes are
stripped, and no entry may escape the output directory.

Examples:
  cfgarc unpack bundle.mmp                    Unpack into the current directory
  cfgarc unpack bundle.mmp -o out             Unpack under out/
  cfgarc unpack bundle.mmp --dry-run          Validate without writing
  cfgarc unpack bundle.mmp --manifest         Also write manifest.toml
  cfgarc unpack bundle.mmp --manifest=m.toml  Manifest under a custom name`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(cmd, app, flags, args[0], outputDir, dryRun)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (default from config, else the current directory)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "decode and validate without writing files")
	cmd.Flags().String("manifest", "", "write a TOML manifest after unpacking (optionally naming the file)")
	// A bare --manifest selects the configured manifest name.
	cmd.Flags().Lookup("manifest").NoOptDefVal = config.DefaultManifestName

	return cmd
}

func runUnpack(cmd *cobra.Command, app *App, flags *rootFlags, containerPath, outputDir string, dryRun bool) error {
	cfg, err := loadCommandConfig(cmd, app, flags)
	if err != nil {
		return err
	}
	styleName := glamourStyle(resolveColorMode(cfg, flags.noColor))

	c, err := loadContainer(cmd, containerPath, styleName)
	if err != nil {
		return err
	}

	if outputDir == "" {
		outputDir = cfg.OutputDir.String()
	}
	manifestFlag, _ := cmd.Flags().GetString("manifest")
	manifestName := resolveManifestName(cmd.Flags().Changed("manifest"), manifestFlag, cfg.ManifestName.String())

	res, err := unpack.Extract(c, unpack.Options{
		Source:       containerPath,
		OutputDir:    outputDir,
		DryRun:       dryRun,
		ManifestName: manifestName,
		Logger:       logging.New(cmd.ErrOrStderr(), flags.verbose),
	})
	if err != nil {
		wrapped := issue.NewErrorContext().
			WithOperation("unpack container").
			WithResource(containerPath).
			Wrap(err).
			BuildError()
		return reportIssue(cmd, wrapped, classifyUnpackError(err), styleName)
	}

	stdout := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintf(stdout, "%s Dry run: %d file(s) validated, nothing written\n",
			WarningStyle.Render("!"), len(res.Entries))
		return nil
	}

	fmt.Fprintf(stdout, "%s Unpacked %d file(s) to %s\n",
		SuccessStyle.Render("✓"), len(res.Entries), ValueStyle.Render(res.OutputDir))
	if res.ManifestPath != "" {
		fmt.Fprintf(stdout, "%s Wrote manifest %s\n",
			SuccessStyle.Render("✓"), ValueStyle.Render(res.ManifestPath))
	}
	return nil
}

// classifyUnpackError distinguishes output filesystem trouble from
// container trouble. Write failures surface as *os.PathError; anything
// else came from decoding.
func classifyUnpackError(err error) issue.Id {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return issue.OutputNotWritableId
	}
	return classifyDecodeError(err)
}

// resolveManifestName maps the --manifest flag state to the manifest file
// name. An unset flag means no manifest. A bare --manifest resolves to
// the configured name; an explicit value wins. The bare form is
// indistinguishable from typing the default name, so an explicit
// --manifest=manifest.toml also resolves to the configured name.
func resolveManifestName(changed bool, flagValue, configured string) string {
	if !changed {
		return ""
	}
	if flagValue == config.DefaultManifestName && configured != "" {
		return configured
	}
	return flagValue
}
