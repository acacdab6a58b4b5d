// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/cfgarc/cfgarc/internal/config"
	"github.com/cfgarc/cfgarc/internal/format"
	"github.com/cfgarc/cfgarc/internal/issue"
	"github.com/cfgarc/cfgarc/pkg/arcfile"
)

// listColumns are the per-entry metadata columns, in output order.
var listColumns = []string{"path", "size", "checksum", "modified"}

// newListCommand creates the `cfgarc list` command.
func newListCommand(app *App, flags *rootFlags) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "list <container>",
		Short: "List the entries in a container",
		Long: `List every entry of a packed config container without unpacking it.

Each row shows the entry path as stored, the declared payload size, the
stored checksum (hex), and the modification time. Decoding still walks
every payload byte, so a listing that completes also validates the
container.

Examples:
  cfgarc list bundle.mmp                 Aligned table
  cfgarc list bundle.mmp --format json   One JSON object per entry
  cfgarc list bundle.mmp -f csv          CSV with a header row`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, flags, args[0], formatFlag)
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "output format: table, json, or csv (default from config)")

	return cmd
}

func runList(cmd *cobra.Command, app *App, flags *rootFlags, containerPath, formatFlag string) error {
	cfg, err := loadCommandConfig(cmd, app, flags)
	if err != nil {
		return err
	}
	mode := resolveColorMode(cfg, flags.noColor)
	styleName := glamourStyle(mode)

	formatID := formatFlag
	if formatID == "" {
		formatID = cfg.Format.String()
	}

	c, err := loadContainer(cmd, containerPath, styleName)
	if err != nil {
		return err
	}

	f, err := format.NewFormat(formatID, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if tf, ok := f.(*format.TableFormat); ok {
		switch mode {
		case config.ColorAlways:
			tf.SetColorProfile(termenv.TrueColor)
		case config.ColorNever:
			tf.SetColorProfile(termenv.Ascii)
		}
	}

	if err := f.WriteHeader(listColumns); err != nil {
		return err
	}
	walkErr := c.Walk(func(e arcfile.Entry) (arcfile.Handler, error) {
		return nil, f.Write([]any{
			e.Path,
			e.Size,
			fmt.Sprintf("%08x", e.Checksum),
			e.Modified.Format(time.RFC3339),
		})
	})
	if walkErr != nil {
		wrapped := issue.NewErrorContext().
			WithOperation("decode container").
			WithResource(containerPath).
			Wrap(walkErr).
			BuildError()
		return reportIssue(cmd, wrapped, classifyDecodeError(walkErr), styleName)
	}

	return f.Close()
}
