// SPDX-License-Identifier: MPL-2.0

package unpack

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/cfgarc/cfgarc/pkg/arcfile"
)

// manifest is the TOML document describing one extraction run.
type manifest struct {
	Source     string          `toml:"source"`
	ByteOrder  string          `toml:"byte_order"`
	UnpackedAt time.Time       `toml:"unpacked_at"`
	Entries    []manifestEntry `toml:"entry"`
}

type manifestEntry struct {
	Path     string    `toml:"path"`
	Output   string    `toml:"output"`
	Checksum string    `toml:"checksum"`
	Size     int32     `toml:"size"`
	Modified time.Time `toml:"modified"`
}

func buildManifest(source string, hdr arcfile.Header, entries []EntryResult, at time.Time) manifest {
	m := manifest{
		Source:     source,
		ByteOrder:  hdr.ByteOrderName(),
		UnpackedAt: at,
	}
	for _, e := range entries {
		m.Entries = append(m.Entries, manifestEntry{
			Path:     e.Path,
			Output:   e.OutputPath,
			Checksum: fmt.Sprintf("%08x", e.Checksum),
			Size:     e.Size,
			Modified: e.Modified,
		})
	}
	return m
}

func writeManifest(path string, m manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
