// SPDX-License-Identifier: MPL-2.0

package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// TableFormat buffers every row and writes an aligned table at Close,
// once the final column widths are known. Headers are uppercased and
// rendered bold when the destination supports styling.
type TableFormat struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	header   lipgloss.Style
	headers  []string
	rows     [][]string
}

func NewTableFormat(w io.Writer) *TableFormat {
	// A renderer scoped to w keeps styling out of pipes and files.
	r := lipgloss.NewRenderer(w)
	return &TableFormat{w: w, renderer: r, header: r.NewStyle().Bold(true)}
}

// SetColorProfile overrides the writer-based terminal detection, forcing
// styled (termenv.TrueColor) or plain (termenv.Ascii) headers.
func (f *TableFormat) SetColorProfile(p termenv.Profile) {
	f.renderer.SetColorProfile(p)
}

func (f *TableFormat) WriteHeader(headers []string) error {
	f.headers = make([]string, 0, len(headers))
	for _, h := range headers {
		f.headers = append(f.headers, strings.ToUpper(h))
	}
	return nil
}

func (f *TableFormat) Write(line []any) error {
	row := make([]string, 0, len(line))
	for _, v := range line {
		row = append(row, fmt.Sprintf("%v", v))
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *TableFormat) Close() error {
	if len(f.headers) == 0 && len(f.rows) == 0 {
		return nil
	}

	widths := make([]int, len(f.headers))
	for i, h := range f.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range f.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	styled := make([]string, 0, len(f.headers))
	for _, h := range f.headers {
		styled = append(styled, f.header.Render(h))
	}
	if err := writeRow(f.w, styled, widths); err != nil {
		return err
	}
	for _, row := range f.rows {
		if err := writeRow(f.w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

// writeRow pads every cell but the last to its column width, with a
// two-space gutter between columns.
func writeRow(w io.Writer, cells []string, widths []int) error {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		if i < len(cells)-1 && i < len(widths) {
			if gap := widths[i] - lipgloss.Width(c); gap > 0 {
				c += strings.Repeat(" ", gap)
			}
		}
		b.WriteString(c)
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
