// SPDX-License-Identifier: MPL-2.0

// Package unpack writes the documents decoded from a packed config
// container to the filesystem: one YAML file per entry, mirroring the
// entry path hierarchy under the output base, with each entry's stored
// modification time applied to the written file.
package unpack

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cfgarc/cfgarc/internal/render"
	"github.com/cfgarc/cfgarc/pkg/arcfile"
	"github.com/cfgarc/cfgarc/pkg/platform"
)

// OutputExt is appended to every normalized entry path.
const OutputExt = ".yaml"

// Options configures one extraction run.
type Options struct {
	// Source is the container path, recorded in the manifest and logs.
	Source string

	// OutputDir is the destination base directory. Empty means the
	// current directory.
	OutputDir string

	// DryRun decodes every entry, validating the whole container, but
	// writes nothing.
	DryRun bool

	// ManifestName, when non-empty, writes a TOML manifest with that
	// name under OutputDir after a successful extraction.
	ManifestName string

	// Logger receives progress diagnostics. Nil discards them.
	Logger *log.Logger

	// Now stamps the manifest. Nil means time.Now.
	Now func() time.Time
}

// EntryResult records one written (or dry-run) document.
type EntryResult struct {
	// Path is the entry path as stored in the container.
	Path string

	// OutputPath is the absolute path of the written document.
	OutputPath string

	// Checksum, Size, and Modified carry the entry metadata through to
	// listings and the manifest.
	Checksum uint32
	Size     int32
	Modified time.Time
}

// Result summarizes one extraction run.
type Result struct {
	OutputDir    string
	Entries      []EntryResult
	ManifestPath string
}

// Extract decodes every entry of c into opts.OutputDir. The container
// must be freshly decoded: Extract consumes its single walk.
func Extract(c *arcfile.Container, opts Options) (res *Result, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if !opts.DryRun {
		if err := os.MkdirAll(absOut, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	res = &Result{OutputDir: absOut}

	// A decode error aborts the walk mid-entry; the current entry's
	// file handle must still be released. fileSink.abandon is a no-op
	// once the walk has closed the sink normally.
	var open *fileSink
	defer func() {
		if open != nil {
			open.abandon()
		}
	}()

	err = c.Walk(func(e arcfile.Entry) (arcfile.Handler, error) {
		destPath, destErr := entryDestPath(absOut, e.Path)
		if destErr != nil {
			return nil, destErr
		}
		warnReservedSegments(logger, e.Path)

		res.Entries = append(res.Entries, EntryResult{
			Path:       e.Path,
			OutputPath: destPath,
			Checksum:   e.Checksum,
			Size:       e.Size,
			Modified:   e.Modified,
		})

		if opts.DryRun {
			logger.Info("would write", "entry", e.Path, "to", destPath)
			return nil, nil
		}

		logger.Debug("writing", "entry", e.Path, "to", destPath)
		sink, sinkErr := newFileSink(destPath, e.Modified)
		if sinkErr != nil {
			return nil, sinkErr
		}
		open = sink
		return sink, nil
	})
	if err != nil {
		return nil, err
	}

	if opts.ManifestName != "" && !opts.DryRun {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		mpath := filepath.Join(absOut, opts.ManifestName)
		m := buildManifest(opts.Source, c.Header, res.Entries, now())
		if err := writeManifest(mpath, m); err != nil {
			return nil, err
		}
		res.ManifestPath = mpath
		logger.Debug("wrote manifest", "path", mpath)
	}
	return res, nil
}

// entryDestPath maps a stored entry path to an absolute output path
// under base. Stored paths use forward slashes; backslashes are treated
// as separators too, since containers written on Windows carry them.
// Drive letters and root prefixes are stripped, and the result must
// stay under base.
func entryDestPath(base, stored string) (string, error) {
	p := strings.ReplaceAll(stored, `\`, "/")
	if len(p) >= 2 && p[1] == ':' {
		p = p[2:]
	}
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return "", fmt.Errorf("entry has an empty path")
	}

	dest := filepath.Join(base, filepath.FromSlash(p)) + OutputExt
	rel, err := filepath.Rel(base, dest)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("entry path escapes the output directory: %q", stored)
	}
	return dest, nil
}

// warnReservedSegments flags path segments an unpacked tree could not
// carry onto a Windows filesystem.
func warnReservedSegments(logger *log.Logger, stored string) {
	segs := strings.FieldsFunc(stored, func(r rune) bool { return r == '/' || r == '\\' })
	for _, seg := range segs {
		if platform.IsWindowsReservedName(seg) {
			logger.Warn("entry path segment is a reserved Windows device name",
				"entry", stored, "segment", seg)
		}
	}
}

// fileSink streams one entry's YAML document to disk and finalizes the
// file at the entry boundary.
type fileSink struct {
	*render.YAML
	f    *os.File
	bw   *bufio.Writer
	path string
	mod  time.Time
	done bool
}

func newFileSink(path string, mod time.Time) (*fileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	bw := bufio.NewWriter(f)
	return &fileSink{YAML: render.NewYAML(bw), f: f, bw: bw, path: path, mod: mod}, nil
}

// Close flushes and closes the file, then applies the entry's stored
// modification time. The container walk calls it at the entry boundary.
func (s *fileSink) Close() error {
	s.done = true
	if err := s.bw.Flush(); err != nil {
		_ = s.f.Close()
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", s.path, err)
	}
	if err := os.Chtimes(s.path, s.mod, s.mod); err != nil {
		return fmt.Errorf("failed to set modification time on %s: %w", s.path, err)
	}
	return nil
}

// abandon releases the file handle after a failed walk without
// finalizing the entry.
func (s *fileSink) abandon() {
	if s.done {
		return
	}
	_ = s.f.Close()
}
