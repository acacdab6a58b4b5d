// SPDX-License-Identifier: MPL-2.0

package arcfile

// Item tag bytes of the nested value encoding.
const (
	tagMapping  = 0x01
	tagSequence = 0x02
	tagScalar   = 0x03
)

// Scalar tag bytes.
const (
	scalarInline  = 0xF0
	scalarTableID = 0xFF
)

// Handler receives the structured-document events produced while
// decoding one entry's value tree, in document order. Implementations
// turn the stream into concrete output (a YAML document, a row counter,
// nothing at all) without the decoder ever materializing the tree.
//
// A non-nil error from any method aborts the walk and propagates
// unchanged to the Walk caller.
type Handler interface {
	StartMapping() error
	EndMapping() error
	StartSequence() error
	EndSequence() error
	Scalar(text string) error
}

// discard consumes events without acting on them. Used when a Walk
// callback returns a nil Handler: the entry's payload bytes must still
// be consumed for the cursor to reach the next entry.
type discard struct{}

func (discard) StartMapping() error  { return nil }
func (discard) EndMapping() error    { return nil }
func (discard) StartSequence() error { return nil }
func (discard) EndSequence() error   { return nil }
func (discard) Scalar(string) error  { return nil }

// instruction is one unit of pending decode work.
type instruction uint8

const (
	opDecodeItem instruction = iota
	opDecodeKeyValue
	opCloseMapping
	opCloseSequence
)

// decodeValue decodes one self-delimiting nested value at the cursor and
// emits its events to h. The explicit instruction stack substitutes for
// call-stack recursion, so nesting depth is bounded by available memory
// rather than stack growth.
//
// Instructions carry no payload. When a count pushes several identical
// instructions, each pop decodes whatever sits next in the stream, which
// preserves the encoded order of mapping pairs and sequence elements.
func decodeValue(r *reader, table map[int32]string, h Handler) error {
	stack := []instruction{opDecodeItem}
	for len(stack) > 0 {
		op := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch op {
		case opDecodeItem:
			tag, err := r.readByte()
			if err != nil {
				return err
			}
			switch tag {
			case tagMapping:
				if err := h.StartMapping(); err != nil {
					return err
				}
				stack = append(stack, opCloseMapping)
				n, err := r.readCount()
				if err != nil {
					return err
				}
				for i := int32(0); i < n; i++ {
					stack = append(stack, opDecodeKeyValue)
				}
			case tagSequence:
				if err := h.StartSequence(); err != nil {
					return err
				}
				stack = append(stack, opCloseSequence)
				n, err := r.readCount()
				if err != nil {
					return err
				}
				for i := int32(0); i < n; i++ {
					stack = append(stack, opDecodeItem)
				}
			case tagScalar:
				text, err := readScalarValue(r, table)
				if err != nil {
					return err
				}
				if err := h.Scalar(text); err != nil {
					return err
				}
			default:
				return r.errf("unknown item tag 0x%02x", tag)
			}

		case opDecodeKeyValue:
			key, err := readScalarValue(r, table)
			if err != nil {
				return err
			}
			if err := h.Scalar(key); err != nil {
				return err
			}
			// The value decodes before any sibling pair below it on the
			// stack, nested children and all.
			stack = append(stack, opDecodeItem)

		case opCloseMapping:
			if err := h.EndMapping(); err != nil {
				return err
			}

		case opCloseSequence:
			if err := h.EndSequence(); err != nil {
				return err
			}
		}
	}
	return nil
}

// readCount reads a packed item count. A well-formed count can never
// exceed the bytes that remain, since every counted item occupies at
// least one byte; rejecting early keeps a corrupt count from growing the
// instruction stack unboundedly.
func (r *reader) readCount() (int32, error) {
	n, err := r.readPackedInt()
	if err != nil {
		return 0, err
	}
	if int64(n) > int64(r.remaining()) {
		return 0, r.errf("item count %d exceeds the %d remaining bytes", n, r.remaining())
	}
	return n, nil
}

// readScalarValue resolves one scalar: an inline string or a string-table
// reference.
func readScalarValue(r *reader, table map[int32]string) (string, error) {
	tag, err := r.readByte()
	if err != nil {
		return "", err
	}
	switch tag {
	case scalarInline:
		return r.readString()
	case scalarTableID:
		id, err := r.readPackedInt()
		if err != nil {
			return "", err
		}
		text, ok := table[id]
		if !ok {
			return "", r.errf("string table has no entry for id %d", id)
		}
		return text, nil
	default:
		return "", r.errf("unknown scalar tag 0x%02x", tag)
	}
}
