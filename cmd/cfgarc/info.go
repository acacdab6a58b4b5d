// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cfgarc/cfgarc/internal/issue"
	"github.com/cfgarc/cfgarc/pkg/arcfile"
)

// containerSummary is everything info prints about a container.
type containerSummary struct {
	Path            string
	ByteOrder       string
	Version         uint8
	Compression     string
	Encryption      string
	Entries         int
	Strings         int
	DeclaredPayload int64
}

// newInfoCommand creates the `cfgarc info` command.
func newInfoCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info <container>",
		Short: "Show container header details",
		Long: `Show the header and size details of a packed config container.

The whole container is decoded to count entries and total the declared
payload sizes, so info doubles as a validity check: if it prints, the
container parses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, app, flags, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, app *App, flags *rootFlags, containerPath string) error {
	cfg, err := loadCommandConfig(cmd, app, flags)
	if err != nil {
		return err
	}
	styleName := glamourStyle(resolveColorMode(cfg, flags.noColor))

	c, err := loadContainer(cmd, containerPath, styleName)
	if err != nil {
		return err
	}

	sum, walkErr := summarize(containerPath, c)
	if walkErr != nil {
		wrapped := issue.NewErrorContext().
			WithOperation("decode container").
			WithResource(containerPath).
			Wrap(walkErr).
			BuildError()
		return reportIssue(cmd, wrapped, classifyDecodeError(walkErr), styleName)
	}

	stdout := cmd.OutOrStdout()
	fmt.Fprintln(stdout, TitleStyle.Render("Container Details"))
	fmt.Fprintln(stdout)
	printField(stdout, "Container", sum.Path)
	printField(stdout, "Byte order", sum.ByteOrder)
	printField(stdout, "Version", fmt.Sprintf("%d", sum.Version))
	printField(stdout, "Compression", sum.Compression)
	printField(stdout, "Encryption", sum.Encryption)
	printField(stdout, "Entries", fmt.Sprintf("%d", sum.Entries))
	printField(stdout, "Strings", fmt.Sprintf("%d", sum.Strings))
	printField(stdout, "Declared payload", formatFileSize(sum.DeclaredPayload))
	return nil
}

// printField writes one aligned "key: value" line. Padding is applied
// before styling so ANSI escapes do not skew the column.
func printField(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s: %s\n", SubtitleStyle.Render(fmt.Sprintf("%-16s", key)), ValueStyle.Render(value))
}

// summarize decodes the remainder of c, totting up declared entry sizes.
// It consumes the container's single walk.
func summarize(path string, c *arcfile.Container) (containerSummary, error) {
	sum := containerSummary{
		Path:        path,
		ByteOrder:   c.Header.ByteOrderName(),
		Version:     c.Header.Version,
		Compression: c.Header.Compression.String(),
		Encryption:  c.Header.Encryption.String(),
		Entries:     c.EntryCount(),
		Strings:     c.StringCount(),
	}

	err := c.Walk(func(e arcfile.Entry) (arcfile.Handler, error) {
		sum.DeclaredPayload += int64(e.Size)
		return nil, nil
	})
	if err != nil {
		return containerSummary{}, err
	}
	return sum, nil
}

// formatFileSize formats a file size in bytes to a human-readable string.
func formatFileSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
