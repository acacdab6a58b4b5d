// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cfgarc/cfgarc/internal/issue"
	"github.com/cfgarc/cfgarc/pkg/arcfile"
	"github.com/cfgarc/cfgarc/pkg/types"
)

// classifyDecodeError maps a container load failure to the issue card that
// explains it. A format violation at offset 0 is almost always a file that
// is not a container at all, so it gets the magic-number card.
func classifyDecodeError(err error) issue.Id {
	if errors.Is(err, os.ErrNotExist) {
		return issue.ContainerNotFoundId
	}

	var unsupported *arcfile.UnsupportedFeatureError
	if errors.As(err, &unsupported) {
		if unsupported.Feature == arcfile.FeatureEncryption {
			return issue.EncryptedContainerId
		}
		return issue.CompressedContainerId
	}

	var format *arcfile.FormatError
	if errors.As(err, &format) && format.Offset == 0 {
		return issue.BadMagicId
	}

	return issue.ContainerCorruptId
}

// renderIssueCard writes the guidance card for id to w, falling back to
// the raw markdown when glamour cannot render.
func renderIssueCard(w io.Writer, id issue.Id, styleName string) {
	card := issue.Get(id)
	if card == nil {
		return
	}

	out, err := card.Render(styleName)
	if err != nil {
		out = string(card.MarkdownMsg())
	}
	fmt.Fprintln(w, out)
}

// reportIssue prints err and its guidance card to stderr, silences Cobra's
// own reporting, and returns the exit code carrier.
func reportIssue(cmd *cobra.Command, err error, id issue.Id, styleName string) error {
	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+err.Error())
	renderIssueCard(stderr, id, styleName)

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: types.ExitFailure}
}

// loadContainer reads and decodes a container file. Failures are reported
// through reportIssue; the returned error then carries only the exit code.
func loadContainer(cmd *cobra.Command, path, styleName string) (*arcfile.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		wrapped := issue.NewErrorContext().
			WithOperation("read container").
			WithResource(path).
			Wrap(err).
			BuildError()
		return nil, reportIssue(cmd, wrapped, classifyDecodeError(err), styleName)
	}

	c, err := arcfile.Decode(data)
	if err != nil {
		wrapped := issue.NewErrorContext().
			WithOperation("decode container").
			WithResource(path).
			Wrap(err).
			BuildError()
		return nil, reportIssue(cmd, wrapped, classifyDecodeError(err), styleName)
	}

	return c, nil
}

// normalizeEntryPath reduces a container entry path to a canonical form
// for matching: backslashes become slashes, a drive prefix and leading
// slashes are stripped, and case is folded. Stored paths originate on a
// case-insensitive filesystem, so matching follows suit.
func normalizeEntryPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if len(p) >= 2 && p[1] == ':' {
		p = p[2:]
	}
	p = strings.TrimLeft(p, "/")
	return strings.ToLower(p)
}
