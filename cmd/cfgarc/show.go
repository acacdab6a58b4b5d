// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cfgarc/cfgarc/internal/issue"
	"github.com/cfgarc/cfgarc/internal/render"
	"github.com/cfgarc/cfgarc/pkg/arcfile"
)

// errStopWalk aborts a walk once the requested entry has been rendered.
var errStopWalk = errors.New("stop walk")

// newShowCommand creates the `cfgarc show` command.
func newShowCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <container> <entry-path>",
		Short: "Print a single entry as YAML",
		Long: `Print one entry of a packed config container to stdout as YAML.

The entry is chosen by its stored path. Matching is forgiving: slashes
and backslashes are interchangeable, drive letters and leading slashes
are ignored, and case does not matter.

Examples:
  cfgarc show bundle.mmp app/server.cfg
  cfgarc show bundle.mmp 'C:\app\server.cfg'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app, flags, args[0], args[1])
		},
	}
}

func runShow(cmd *cobra.Command, app *App, flags *rootFlags, containerPath, entryPath string) error {
	cfg, err := loadCommandConfig(cmd, app, flags)
	if err != nil {
		return err
	}
	styleName := glamourStyle(resolveColorMode(cfg, flags.noColor))

	c, err := loadContainer(cmd, containerPath, styleName)
	if err != nil {
		return err
	}

	want := normalizeEntryPath(entryPath)
	found := false
	walkErr := c.Walk(func(e arcfile.Entry) (arcfile.Handler, error) {
		if found {
			// The requested entry has been fully rendered; nothing
			// after it can change the output.
			return nil, errStopWalk
		}
		if normalizeEntryPath(e.Path) == want {
			found = true
			return render.NewYAML(cmd.OutOrStdout()), nil
		}
		return nil, nil
	})
	if walkErr != nil && !errors.Is(walkErr, errStopWalk) {
		wrapped := issue.NewErrorContext().
			WithOperation("decode container").
			WithResource(containerPath).
			Wrap(walkErr).
			BuildError()
		return reportIssue(cmd, wrapped, classifyDecodeError(walkErr), styleName)
	}

	if !found {
		notFound := fmt.Errorf("entry %q not found in %s", entryPath, containerPath)
		return reportIssue(cmd, notFound, issue.EntryNotFoundId, styleName)
	}
	return nil
}
