// SPDX-License-Identifier: MPL-2.0

// Package arcfile decodes packed config containers: a binary format that
// bundles multiple configuration documents as recursively nested trees of
// mappings, sequences, and scalars, together with a per-container string
// table and per-entry metadata (path, checksum, declared size,
// modification time).
//
// Decoding is a single forward pass over an in-memory buffer. Decode
// validates the header (magic orientation selects the byte order, version
// must be 1, compression and encryption must be method 0) and builds the
// string table; Walk then iterates the file entries, streaming each
// entry's value tree to a caller-supplied Handler as start/scalar/end
// events. Trees are never materialized: an explicit instruction stack
// replaces call-stack recursion, so nesting depth is unbounded.
//
// # Usage
//
//	data, err := os.ReadFile("settings.acfg")
//	if err != nil { ... }
//
//	c, err := arcfile.Decode(data)
//	if err != nil { ... }
//
//	err = c.Walk(func(e arcfile.Entry) (arcfile.Handler, error) {
//	    fmt.Println(e.Path, e.Modified)
//	    return nil, nil // nil Handler: skip the payload
//	})
//
// # Errors
//
// Malformed bytes surface as *FormatError with the offending offset;
// recognized-but-unimplemented header features (compression, encryption)
// surface as *UnsupportedFeatureError. Both are fatal for the whole
// container: entries carry no length prefix, so the cursor cannot skip
// past a bad one.
package arcfile
