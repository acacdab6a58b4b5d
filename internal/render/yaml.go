// SPDX-License-Identifier: MPL-2.0

// Package render turns decoded container event streams into block-style
// YAML documents. The emitter is strictly streaming: it keeps a frame
// stack and at most one unflushed line, never a materialized tree, so
// document depth is unbounded.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	yamlv2 "gopkg.in/yaml.v2"

	"github.com/cfgarc/cfgarc/pkg/arcfile"
)

// indentStep is the per-level indentation width.
const indentStep = 2

type kind uint8

const (
	kindMapping kind = iota
	kindSequence
)

// frame is one open container in the document.
type frame struct {
	kind kind

	// itemIndent is the column where this container's child lines start.
	itemIndent int

	// opened is set once the first child event arrives. A container
	// that closes unopened renders inline as {} or [].
	opened bool

	// ownerHeld marks a container whose owner line (the "key:" or "- "
	// prefix it hangs from) was still unflushed when the container
	// started. Opening such a container either flushes that line or
	// chains onto it, depending on compactness.
	ownerHeld bool

	// expectKey is true when a mapping's next scalar is a key.
	expectKey bool
}

// line is the single unflushed output line.
type line struct {
	active bool
	indent int
	text   string

	// childIndent is where a block opened from this line indents its
	// children. Each chained segment shifts it one step right.
	childIndent int

	// tailDash records whether the last segment is a sequence dash,
	// which is the one position that permits compact chaining.
	tailDash bool
}

// YAML emits one document as block-style YAML. It implements
// arcfile.Handler; feed it exactly one top-level value.
type YAML struct {
	w       io.Writer
	stack   []frame
	pending line
	err     error
}

var _ arcfile.Handler = (*YAML)(nil)

// NewYAML returns an emitter writing to w. The caller owns any
// buffering on w.
func NewYAML(w io.Writer) *YAML {
	return &YAML{w: w}
}

// StartMapping implements arcfile.Handler.
func (y *YAML) StartMapping() error { return y.start(kindMapping) }

// StartSequence implements arcfile.Handler.
func (y *YAML) StartSequence() error { return y.start(kindSequence) }

// EndMapping implements arcfile.Handler.
func (y *YAML) EndMapping() error { return y.end(kindMapping) }

// EndSequence implements arcfile.Handler.
func (y *YAML) EndSequence() error { return y.end(kindSequence) }

// Scalar implements arcfile.Handler. In a mapping it alternates between
// key and value position; elsewhere it completes one item.
func (y *YAML) Scalar(text string) error {
	if y.err != nil {
		return y.err
	}
	lit := scalarLiteral(text)

	if f := y.top(); f != nil && f.kind == kindMapping && f.expectKey {
		y.beginChild()
		if !y.pending.active {
			y.startPending(f.itemIndent)
		}
		y.appendSegment(lit+":", false)
		f.expectKey = false
		return y.err
	}

	y.beginChild()
	if !y.pending.active {
		indent := 0
		if f := y.top(); f != nil {
			indent = f.itemIndent
		}
		y.startPending(indent)
	}
	y.appendSegment(lit, false)
	y.flushPending()
	y.completeValue()
	return y.err
}

func (y *YAML) start(k kind) error {
	if y.err != nil {
		return y.err
	}
	y.beginChild()
	f := frame{kind: k, expectKey: k == kindMapping}
	if y.pending.active {
		f.itemIndent = y.pending.childIndent
		f.ownerHeld = true
	}
	y.stack = append(y.stack, f)
	return y.err
}

func (y *YAML) end(k kind) error {
	if y.err != nil {
		return y.err
	}
	n := len(y.stack)
	if n == 0 || y.stack[n-1].kind != k {
		y.err = fmt.Errorf("unbalanced end event")
		return y.err
	}
	f := y.stack[n-1]
	y.stack = y.stack[:n-1]

	if !f.opened {
		// Nothing inside: block form cannot express an empty
		// container, so it collapses onto its owner line.
		if !y.pending.active {
			y.startPending(f.itemIndent)
		}
		if f.kind == kindMapping {
			y.appendSegment("{}", false)
		} else {
			y.appendSegment("[]", false)
		}
		y.flushPending()
	}
	y.completeValue()
	return y.err
}

// top returns the innermost open frame, or nil at document root.
func (y *YAML) top() *frame {
	if len(y.stack) == 0 {
		return nil
	}
	return &y.stack[len(y.stack)-1]
}

// beginChild prepares the top frame to receive one child event: the
// frame's owner line is flushed or chained, and sequence items get
// their dash segment.
func (y *YAML) beginChild() {
	f := y.top()
	if f == nil {
		return
	}
	if !f.opened {
		f.opened = true
		if f.ownerHeld && !y.pending.tailDash {
			// Hanging off a "key:" prefix: the children form an
			// indented block on the following lines.
			y.flushPending()
		}
		// Hanging off a dash, the first child chains compactly onto
		// the same line.
	}
	if f.kind == kindSequence {
		if !y.pending.active {
			y.startPending(f.itemIndent)
		}
		y.appendSegment("-", true)
	}
}

// completeValue tells the enclosing frame that one of its values
// finished, flipping mappings back to key position.
func (y *YAML) completeValue() {
	if f := y.top(); f != nil && f.kind == kindMapping {
		f.expectKey = true
	}
}

func (y *YAML) startPending(indent int) {
	y.pending = line{active: true, indent: indent, childIndent: indent}
}

func (y *YAML) appendSegment(seg string, dash bool) {
	if y.pending.text == "" {
		y.pending.text = seg
	} else {
		y.pending.text += " " + seg
	}
	y.pending.childIndent += indentStep
	y.pending.tailDash = dash
}

func (y *YAML) flushPending() {
	if !y.pending.active || y.err != nil {
		y.pending.active = false
		return
	}
	_, y.err = io.WriteString(y.w, strings.Repeat(" ", y.pending.indent)+y.pending.text+"\n")
	y.pending.active = false
}

// scalarLiteral renders one scalar in a form YAML reads back as the same
// string: plain where possible, quoted where the text would otherwise
// parse as a boolean, number, null, or syntax. Quoting is delegated to
// the YAML library; text it cannot express on a single line (control
// characters, invalid UTF-8, or anything it would wrap or fold) falls
// back to a double-quoted escape form.
func scalarLiteral(s string) string {
	if needsEscapeForm(s) {
		return strconv.Quote(s)
	}
	b, err := yamlv2.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	lit := strings.TrimSuffix(string(b), "\n")
	if strings.Contains(lit, "\n") {
		return strconv.Quote(s)
	}
	return lit
}

func needsEscapeForm(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			return true
		}
	}
	return false
}
