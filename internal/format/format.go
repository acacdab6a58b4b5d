// SPDX-License-Identifier: MPL-2.0

// Package format renders entry listings in the output formats the list
// command accepts: an aligned terminal table, one JSON object per line,
// or CSV.
package format

import (
	"fmt"
	"io"
)

// Accepted format identifiers.
const (
	Table = "table"
	JSON  = "json"
	CSV   = "csv"
)

// Format writes one header row followed by data rows. Close flushes
// any buffered output and must be called once after the final Write.
type Format interface {
	WriteHeader(headers []string) error
	Write(line []any) error
	Close() error
}

// NewFormat returns the Format named by id, writing to w.
func NewFormat(id string, w io.Writer) (Format, error) {
	switch id {
	case Table:
		return NewTableFormat(w), nil
	case JSON:
		return NewJSONFormat(w), nil
	case CSV:
		return NewCSVFormat(w), nil
	default:
		return nil, fmt.Errorf("invalid output format %q (accepted: %s, %s, %s)", id, Table, JSON, CSV)
	}
}
