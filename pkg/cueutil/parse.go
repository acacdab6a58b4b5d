// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseResult carries what one successful parse produced.
type ParseResult[T any] struct {
	// Value is the decoded Go value.
	Value *T

	// Unified is the schema-unified CUE value, kept for callers that
	// need lookups or custom validation beyond the decode.
	Unified cue.Value
}

// ParseAndDecode compiles schema, compiles data, unifies data with the
// definition at schemaPath (e.g. "#Config"), validates, and decodes the
// result into a T. Errors from the user's data come back through
// FormatError with the configured filename; errors from the schema are
// flagged as internal, since the schema ships inside the binary.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	cfg := buildOptions(opts)

	filename := cfg.filename
	if filename == "" {
		filename = "<input>"
	}
	if err := CheckFileSize(data, cfg.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaVal := ctx.CompileBytes(schema)
	if schemaVal.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaVal.Err())
	}
	root := schemaVal.LookupPath(cue.ParsePath(schemaPath))
	if root.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, root.Err())
	}

	dataVal := ctx.CompileBytes(data, cue.Filename(filename))
	if dataVal.Err() != nil {
		return nil, FormatError(dataVal.Err(), filename)
	}

	merged := root.Unify(dataVal)

	var vopts []cue.Option
	if cfg.concrete {
		vopts = append(vopts, cue.Concrete(true))
	}
	if err := merged.Validate(vopts...); err != nil {
		return nil, FormatError(err, filename)
	}

	var out T
	if err := merged.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{Value: &out, Unified: merged}, nil
}

// ParseAndDecodeString is ParseAndDecode for a schema held as a string,
// the form a //go:embed of a single .cue file produces.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	return ParseAndDecode[T]([]byte(schema), data, schemaPath, opts...)
}
