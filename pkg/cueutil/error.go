// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// FormatError rewrites a CUE error into one line per finding, each
// prefixed with the file path and the JSON path of the offending value:
//
//	config.cue: format: 2 errors in empty disjunction
//	config.cue: output_dir: conflicting values 42 and string
//
// Errors that did not come out of the CUE evaluator are wrapped with the
// file path only.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	findings := errors.Errors(err)
	if len(findings) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(findings))
	for _, e := range findings {
		lines = append(lines, findingLine(e))
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// findingLine renders one CUE finding as "path: message", deduplicating
// the path CUE often repeats at the front of the message.
func findingLine(e errors.Error) string {
	pathStr := formatPath(errors.Path(e))
	msg := e.Error()
	if pathStr == "" {
		return msg
	}
	if rest, ok := strings.CutPrefix(msg, pathStr); ok {
		msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	}
	return pathStr + ": " + msg
}

// formatPath renders a CUE error path in JSON-path notation: purely
// numeric elements become indices ("entries", "0", "path" turns into
// entries[0].path), everything else joins with dots.
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && allDigits(part):
			b.WriteString("[" + part + "]")
		case i > 0:
			b.WriteString("." + part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize rejects data larger than maxSize before it reaches the
// CUE evaluator, which would otherwise happily build an arbitrarily
// large value from it.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
