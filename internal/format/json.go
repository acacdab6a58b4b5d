// SPDX-License-Identifier: MPL-2.0

package format

import (
	"encoding/json"
	"io"
)

// JSONFormat writes each row as one JSON object keyed by the header
// names, one object per line.
type JSONFormat struct {
	je   *json.Encoder
	keys []string
}

func NewJSONFormat(w io.Writer) *JSONFormat {
	return &JSONFormat{je: json.NewEncoder(w)}
}

func (f *JSONFormat) WriteHeader(headers []string) error {
	f.keys = headers
	return nil
}

func (f *JSONFormat) Write(line []any) error {
	obj := make(map[string]any, len(f.keys))
	for i, k := range f.keys {
		obj[k] = line[i]
	}
	return f.je.Encode(obj)
}

func (f *JSONFormat) Close() error {
	return nil
}
