// SPDX-License-Identifier: MPL-2.0

// Package cueutil wraps the CUE evaluation steps every schema-validated
// file load repeats: compile the embedded schema, compile the user's
// bytes, unify, validate, decode. The configuration loader drives it
// with a map target so the result can layer into Viper:
//
//	res, err := cueutil.ParseAndDecodeString[map[string]any](
//	    configSchema, data, "#Config",
//	    cueutil.WithConcrete(false),
//	    cueutil.WithFilename(path),
//	)
//
// Struct targets work the same way through ParseAndDecode. Errors carry
// the file path and the JSON path of the offending value.
package cueutil
