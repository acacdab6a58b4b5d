// SPDX-License-Identifier: MPL-2.0

package render

import (
	"strings"
	"testing"
	"time"

	"github.com/cfgarc/cfgarc/internal/testutil"
	"github.com/cfgarc/cfgarc/pkg/arcfile"
)

// renderTree decodes a synthetic single-entry container holding tree and
// returns the rendered YAML document.
func renderTree(t *testing.T, tree testutil.Node) string {
	t.Helper()
	data := testutil.NewContainer().
		File("doc.cfg", time.Unix(0, 0).UTC(), tree).
		Bytes()
	c, err := arcfile.Decode(data)
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	var sb strings.Builder
	err = c.Walk(func(arcfile.Entry) (arcfile.Handler, error) {
		return NewYAML(&sb), nil
	})
	if err != nil {
		t.Fatalf("Walk: unexpected error: %v", err)
	}
	return sb.String()
}

func TestRenderDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tree testutil.Node
		want string
	}{
		{
			name: "root scalar",
			tree: testutil.Str("dark"),
			want: "dark\n",
		},
		{
			name: "root scalar needing quotes",
			tree: testutil.Str("true"),
			want: "\"true\"\n",
		},
		{
			name: "flat mapping",
			tree: testutil.Map{
				{Key: testutil.Str("host"), Value: testutil.Str("example.com")},
				{Key: testutil.Str("port"), Value: testutil.Str("8080")},
			},
			want: "host: example.com\nport: \"8080\"\n",
		},
		{
			name: "nested mapping",
			tree: testutil.Map{
				{Key: testutil.Str("server"), Value: testutil.Map{
					{Key: testutil.Str("host"), Value: testutil.Str("example.com")},
					{Key: testutil.Str("tls"), Value: testutil.Str("on")},
				}},
				{Key: testutil.Str("mode"), Value: testutil.Str("fast")},
			},
			want: "server:\n  host: example.com\n  tls: \"on\"\nmode: fast\n",
		},
		{
			name: "sequence of scalars",
			tree: testutil.Seq{testutil.Str("alpha"), testutil.Str("beta")},
			want: "- alpha\n- beta\n",
		},
		{
			name: "sequence under key",
			tree: testutil.Map{
				{Key: testutil.Str("roots"), Value: testutil.Seq{
					testutil.Str("a"),
					testutil.Str("b"),
				}},
			},
			want: "roots:\n  - a\n  - b\n",
		},
		{
			name: "sequence of mappings stays compact",
			tree: testutil.Seq{
				testutil.Map{
					{Key: testutil.Str("name"), Value: testutil.Str("a")},
					{Key: testutil.Str("mode"), Value: testutil.Str("fast")},
				},
				testutil.Map{
					{Key: testutil.Str("name"), Value: testutil.Str("b")},
				},
			},
			want: "- name: a\n  mode: fast\n- name: b\n",
		},
		{
			name: "sequence of sequences stays compact",
			tree: testutil.Seq{
				testutil.Seq{testutil.Str("x"), testutil.Str("y")},
			},
			want: "- - x\n  - y\n",
		},
		{
			name: "empty mapping at root",
			tree: testutil.Map{},
			want: "{}\n",
		},
		{
			name: "empty containers inline",
			tree: testutil.Map{
				{Key: testutil.Str("hooks"), Value: testutil.Seq{}},
				{Key: testutil.Str("extra"), Value: testutil.Map{}},
			},
			want: "hooks: []\nextra: {}\n",
		},
		{
			name: "empty mapping as sequence item",
			tree: testutil.Seq{testutil.Map{}},
			want: "- {}\n",
		},
		{
			name: "mapping value block under compact item",
			tree: testutil.Seq{
				testutil.Map{
					{Key: testutil.Str("rule"), Value: testutil.Map{
						{Key: testutil.Str("allow"), Value: testutil.Str("read")},
					}},
				},
			},
			want: "- rule:\n    allow: read\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := renderTree(t, tt.tree)
			if got != tt.want {
				t.Errorf("rendered document =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestRenderDeepNesting(t *testing.T) {
	t.Parallel()

	const depth = 60
	var tree testutil.Node = testutil.Str("end")
	for i := 0; i < depth; i++ {
		tree = testutil.Map{{Key: testutil.Str("k"), Value: tree}}
	}

	got := renderTree(t, tree)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != depth {
		t.Fatalf("rendered %d lines, want %d", len(lines), depth)
	}
	for i, ln := range lines[:depth-1] {
		want := strings.Repeat(" ", 2*i) + "k:"
		if ln != want {
			t.Fatalf("line %d = %q, want %q", i, ln, want)
		}
	}
	if want := strings.Repeat(" ", 2*(depth-1)) + "k: end"; lines[depth-1] != want {
		t.Errorf("last line = %q, want %q", lines[depth-1], want)
	}
}

func TestScalarLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "hello", want: "hello"},
		{in: "example.com", want: "example.com"},
		{in: "true", want: `"true"`},
		{in: "42", want: `"42"`},
		{in: "007", want: `"007"`},
		{in: "", want: `""`},
		{in: "a: b", want: `'a: b'`},
		{in: "- item", want: `'- item'`},
		{in: " padded", want: `' padded'`},
		{in: "line1\nline2", want: `"line1\nline2"`},
		{in: "bell\x07", want: `"bell\a"`},
		{in: "\xc3(", want: `"\xc3("`},
	}
	for _, tt := range tests {
		if got := scalarLiteral(tt.in); got != tt.want {
			t.Errorf("scalarLiteral(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
