// SPDX-License-Identifier: MPL-2.0

package format

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVFormat writes rows as RFC 4180 CSV with a header record.
type CSVFormat struct {
	cw *csv.Writer
}

func NewCSVFormat(w io.Writer) *CSVFormat {
	return &CSVFormat{cw: csv.NewWriter(w)}
}

func (f *CSVFormat) WriteHeader(headers []string) error {
	return f.cw.Write(headers)
}

func (f *CSVFormat) Write(line []any) error {
	row := make([]string, 0, len(line))
	for _, v := range line {
		row = append(row, fmt.Sprintf("%v", v))
	}
	return f.cw.Write(row)
}

func (f *CSVFormat) Close() error {
	f.cw.Flush()
	return f.cw.Error()
}
