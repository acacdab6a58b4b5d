// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"

	"cuelang.org/go/cue/cuecontext"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()
		if err := FormatError(nil, "test.cue"); err != nil {
			t.Errorf("FormatError(nil) = %v, want nil", err)
		}
	})

	t.Run("plain error gains the file path", func(t *testing.T) {
		t.Parallel()
		err := FormatError(errors.New("read failed"), "test.cue")
		if err == nil {
			t.Fatal("FormatError() = nil, want error")
		}
		for _, want := range []string{"test.cue", "read failed"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q should contain %q", err, want)
			}
		}
	})

	t.Run("single CUE conflict renders one line with the path", func(t *testing.T) {
		t.Parallel()
		v := cuecontext.New().CompileString(`x: int & "no"`)
		err := FormatError(v.Validate(), "bad.cue")
		if err == nil {
			t.Fatal("FormatError() = nil, want error")
		}
		msg := err.Error()
		if !strings.HasPrefix(msg, "bad.cue: ") {
			t.Errorf("error %q should start with the file path", msg)
		}
		if !strings.Contains(msg, "x") || !strings.Contains(msg, "conflicting") {
			t.Errorf("error %q should name the field and the conflict", msg)
		}
		if strings.Contains(msg, "validation failed") {
			t.Errorf("single finding should not use the multi-line form: %q", msg)
		}
	})

	t.Run("multiple CUE findings fold into a list", func(t *testing.T) {
		t.Parallel()
		v := cuecontext.New().CompileString("a: int & \"x\"\nb: string & 3\n")
		err := FormatError(v.Validate(), "bad.cue")
		if err == nil {
			t.Fatal("FormatError() = nil, want error")
		}
		msg := err.Error()
		if !strings.Contains(msg, "validation failed") {
			t.Errorf("error %q should use the multi-line form", msg)
		}
		for _, field := range []string{"a:", "b:"} {
			if !strings.Contains(msg, field) {
				t.Errorf("error %q should carry a line for %q", msg, field)
			}
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		elems []string
		want  string
	}{
		{nil, ""},
		{[]string{"format"}, "format"},
		{[]string{"manifest", "name"}, "manifest.name"},
		{[]string{"entries", "0", "path"}, "entries[0].path"},
		{[]string{"entries", "3", "values", "12", "text"}, "entries[3].values[12].text"},
		// A leading numeric element is a field name, not an index.
		{[]string{"0", "path"}, "0.path"},
	}

	for _, tt := range tests {
		if got := formatPath(tt.elems); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.elems, got, tt.want)
		}
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		max     int64
		wantErr bool
	}{
		{name: "under the limit", size: 11, max: 100},
		{name: "exactly at the limit", size: 100, max: 100},
		{name: "empty data", size: 0, max: 100},
		{name: "one byte over", size: 101, max: 100, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CheckFileSize(make([]byte, tt.size), tt.max, "test.cue")
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckFileSize(%d bytes, max %d) error = %v, wantErr %v",
					tt.size, tt.max, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			for _, want := range []string{"test.cue", "101", "100"} {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q should contain %q", err, want)
				}
			}
		})
	}
}
