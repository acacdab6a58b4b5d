// SPDX-License-Identifier: MPL-2.0

package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestNewFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	for _, id := range []string{Table, JSON, CSV} {
		if _, err := NewFormat(id, &buf); err != nil {
			t.Errorf("NewFormat(%q) error = %v", id, err)
		}
	}
	if _, err := NewFormat("yaml", &buf); err == nil {
		t.Error("NewFormat(\"yaml\") succeeded, want error")
	}
}

func writeRows(t *testing.T, f Format, headers []string, rows [][]any) {
	t.Helper()
	if err := f.WriteHeader(headers); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	for _, row := range rows {
		if err := f.Write(row); err != nil {
			t.Fatalf("Write(%v) error = %v", row, err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestJSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writeRows(t, NewJSONFormat(&buf), []string{"path", "size"}, [][]any{
		{"a.cfg", 1},
		{"b.cfg", 22},
	})

	want := "{\"path\":\"a.cfg\",\"size\":1}\n{\"path\":\"b.cfg\",\"size\":22}\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestCSVFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writeRows(t, NewCSVFormat(&buf), []string{"path", "size"}, [][]any{
		{"a.cfg", 1},
		{"with,comma.cfg", 2},
	})

	want := "path,size\na.cfg,1\n\"with,comma.cfg\",2\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTableFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writeRows(t, NewTableFormat(&buf), []string{"path", "size"}, [][]any{
		{"app/server.cfg", 123},
		{"d.cfg", 9},
	})

	want := "PATH            SIZE\n" +
		"app/server.cfg  123\n" +
		"d.cfg           9\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTableFormatForcedColorProfile(t *testing.T) {
	t.Parallel()

	// A bytes.Buffer is not a terminal, so headers render plain unless the
	// profile is forced.
	var plain bytes.Buffer
	writeRows(t, NewTableFormat(&plain), []string{"path"}, [][]any{{"a.cfg"}})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("unforced output contains ANSI escapes: %q", plain.String())
	}

	var styled bytes.Buffer
	f := NewTableFormat(&styled)
	f.SetColorProfile(termenv.ANSI)
	writeRows(t, f, []string{"path"}, [][]any{{"a.cfg"}})
	if !strings.Contains(styled.String(), "\x1b[") {
		t.Errorf("forced output lacks ANSI escapes: %q", styled.String())
	}
}

func TestTableFormatEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := NewTableFormat(&buf)
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}
