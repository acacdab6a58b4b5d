// SPDX-License-Identifier: MPL-2.0

package unpack

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"github.com/cfgarc/cfgarc/internal/testutil"
	"github.com/cfgarc/cfgarc/pkg/arcfile"
)

func TestExtractWritesTree(t *testing.T) {
	t.Parallel()

	mod1 := time.Date(2023, 5, 4, 3, 2, 1, 0, time.UTC)
	mod2 := time.Date(2021, 12, 31, 23, 59, 59, 0, time.UTC)
	data := testutil.NewContainer().
		TableString(1, "true").
		TableString(2, "beta").
		File("app/server.cfg", mod1, testutil.Map{
			{Key: testutil.Str("host"), Value: testutil.Str("example.com")},
			{Key: testutil.Str("enabled"), Value: testutil.Ref(1)},
		}).
		File("defaults.cfg", mod2, testutil.Seq{testutil.Str("alpha"), testutil.Ref(2)}).
		Bytes()

	c, err := arcfile.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dir := t.TempDir()
	res, err := Extract(c, Options{Source: "settings.acfg", OutputDir: dir})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("len(res.Entries) = %d, want 2", len(res.Entries))
	}
	if res.ManifestPath != "" {
		t.Errorf("res.ManifestPath = %q, want empty", res.ManifestPath)
	}

	wantFiles := []struct {
		rel     string
		content string
		mod     time.Time
	}{
		{"app/server.cfg.yaml", "host: example.com\nenabled: \"true\"\n", mod1},
		{"defaults.cfg.yaml", "- alpha\n- beta\n", mod2},
	}
	for i, want := range wantFiles {
		path := filepath.Join(dir, filepath.FromSlash(want.rel))
		if res.Entries[i].OutputPath != path {
			t.Errorf("res.Entries[%d].OutputPath = %q, want %q", i, res.Entries[i].OutputPath, path)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", want.rel, err)
		}
		if string(got) != want.content {
			t.Errorf("%s content = %q, want %q", want.rel, got, want.content)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat(%s) error = %v", want.rel, err)
		}
		if info.ModTime().Unix() != want.mod.Unix() {
			t.Errorf("%s mtime = %v, want %v", want.rel, info.ModTime(), want.mod)
		}
	}
}

func TestExtractDryRun(t *testing.T) {
	t.Parallel()

	data := testutil.NewContainer().
		File("only.cfg", time.Unix(1700000000, 0).UTC(), testutil.Str("value")).
		Bytes()
	c, err := arcfile.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dir := t.TempDir()
	res, err := Extract(c, Options{OutputDir: dir, DryRun: true, ManifestName: "unpack.toml"})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("len(res.Entries) = %d, want 1", len(res.Entries))
	}
	if res.ManifestPath != "" {
		t.Errorf("res.ManifestPath = %q, want empty on dry run", res.ManifestPath)
	}

	listing, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(listing) != 0 {
		t.Errorf("output directory has %d entries after dry run, want 0", len(listing))
	}
}

func TestExtractManifest(t *testing.T) {
	t.Parallel()

	mod := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	stamp := time.Date(2024, 6, 7, 8, 9, 10, 0, time.UTC)
	data := testutil.NewContainer().
		File("svc/web.cfg", mod, testutil.Map{
			{Key: testutil.Str("mode"), Value: testutil.Str("fast")},
		}).
		Bytes()
	c, err := arcfile.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dir := t.TempDir()
	res, err := Extract(c, Options{
		Source:       "web.acfg",
		OutputDir:    dir,
		ManifestName: "unpack.toml",
		Now:          func() time.Time { return stamp },
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if want := filepath.Join(dir, "unpack.toml"); res.ManifestPath != want {
		t.Fatalf("res.ManifestPath = %q, want %q", res.ManifestPath, want)
	}

	raw, err := os.ReadFile(res.ManifestPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var m manifest
	if err := toml.Unmarshal(raw, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if m.Source != "web.acfg" {
		t.Errorf("m.Source = %q, want %q", m.Source, "web.acfg")
	}
	if m.ByteOrder != "little-endian" {
		t.Errorf("m.ByteOrder = %q, want %q", m.ByteOrder, "little-endian")
	}
	if !m.UnpackedAt.Equal(stamp) {
		t.Errorf("m.UnpackedAt = %v, want %v", m.UnpackedAt, stamp)
	}
	if len(m.Entries) != 1 {
		t.Fatalf("len(m.Entries) = %d, want 1", len(m.Entries))
	}
	e := m.Entries[0]
	if e.Path != "svc/web.cfg" {
		t.Errorf("entry path = %q, want %q", e.Path, "svc/web.cfg")
	}
	if want := filepath.Join(dir, "svc", "web.cfg.yaml"); e.Output != want {
		t.Errorf("entry output = %q, want %q", e.Output, want)
	}
	if want := fmt.Sprintf("%08x", res.Entries[0].Checksum); e.Checksum != want {
		t.Errorf("entry checksum = %q, want %q", e.Checksum, want)
	}
	if !e.Modified.Equal(mod) {
		t.Errorf("entry modified = %v, want %v", e.Modified, mod)
	}
}

func TestExtractDecodeErrorPropagates(t *testing.T) {
	t.Parallel()

	data := testutil.NewContainer().
		File("good.cfg", time.Unix(1600000000, 0).UTC(), testutil.Str("ok")).
		File("bad.cfg", time.Unix(1600000001, 0).UTC(), testutil.Str("cut")).
		Bytes()
	// Cut into the final entry's payload.
	data = data[:len(data)-2]

	c, err := arcfile.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	_, err = Extract(c, Options{OutputDir: t.TempDir()})
	var ferr *arcfile.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("Extract() error = %v, want a FormatError", err)
	}
}

func TestExtractWarnsReservedNames(t *testing.T) {
	t.Parallel()

	mod := time.Unix(1700000000, 0).UTC()
	data := testutil.NewContainer().
		File("con/aux.cfg", mod, testutil.Str("v")).
		File("plain.cfg", mod, testutil.Str("v")).
		Bytes()
	c, err := arcfile.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	var buf bytes.Buffer
	_, err = Extract(c, Options{OutputDir: t.TempDir(), DryRun: true, Logger: log.New(&buf)})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	out := buf.String()
	if n := strings.Count(out, "reserved Windows device name"); n != 2 {
		t.Errorf("warned %d times, want 2: %q", n, out)
	}
	for _, seg := range []string{"segment=con", "segment=aux.cfg"} {
		if !strings.Contains(out, seg) {
			t.Errorf("output lacks %q: %q", seg, out)
		}
	}
}

func TestEntryDestPath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	tests := []struct {
		name    string
		stored  string
		want    string
		wantErr bool
	}{
		{name: "relative", stored: "app/server.cfg", want: "app/server.cfg.yaml"},
		{name: "backslash separators", stored: `a\b\c.cfg`, want: "a/b/c.cfg.yaml"},
		{name: "drive letter stripped", stored: `C:\cfg\x.cfg`, want: "cfg/x.cfg.yaml"},
		{name: "rooted path stripped", stored: "/abs/y.cfg", want: "abs/y.cfg.yaml"},
		{name: "parent escape", stored: "../evil", wantErr: true},
		{name: "nested escape", stored: "a/../../evil", wantErr: true},
		{name: "bare drive", stored: `C:\`, wantErr: true},
		{name: "empty", stored: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := entryDestPath(base, tt.stored)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("entryDestPath(%q) = %q, want error", tt.stored, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("entryDestPath(%q) error = %v", tt.stored, err)
			}
			if want := filepath.Join(base, filepath.FromSlash(tt.want)); got != want {
				t.Errorf("entryDestPath(%q) = %q, want %q", tt.stored, got, want)
			}
		})
	}
}
