// SPDX-License-Identifier: MPL-2.0

package arcfile

import (
	"encoding/binary"
	"fmt"
)

// A packed integer spans at most 5 groups (shift values 0, 7, 14, 21, 28).
const maxPackedShift = 35

// reader is the byte cursor shared by every stage of a container decode.
// The position advances monotonically; nothing ever seeks backwards.
// order is established by the header parse and applies to all fixed-width
// reads that follow it.
type reader struct {
	buf   []byte
	off   int
	order binary.ByteOrder
}

func (r *reader) remaining() int { return len(r.buf) - r.off }

// take consumes n bytes and returns the consumed window, which aliases
// the underlying buffer.
func (r *reader) take(n int) ([]byte, error) {
	if n > r.remaining() {
		return nil, r.errf("unexpected end of data (need %d bytes, have %d)", n, r.remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) readByte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) readUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

func (r *reader) readUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

func (r *reader) readInt32() (int32, error) {
	u, err := r.readUint32()
	return int32(u), err
}

func (r *reader) readInt64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(r.order.Uint64(b)), nil
}

// readPackedInt decodes one variable-length unsigned integer: little-endian
// base-128 groups, low 7 bits data, high bit continuation. The accumulator
// is a signed 32-bit integer, so a 5th group may carry bits into or past
// the sign bit; that wrap is part of the format and is kept as-is. A
// continuation bit on the 5th group means the value cannot terminate
// within the permitted 5 groups, which is a FormatError.
func (r *reader) readPackedInt() (int32, error) {
	var value int32
	var shift uint
	for {
		if shift == maxPackedShift {
			return 0, r.errf("packed integer does not terminate within 5 groups")
		}
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		value |= int32(b&0x7F) << shift
		if b&0x80 == 0 {
			return value, nil
		}
		shift += 7
	}
}

// readString decodes a packed byte length followed by that many raw
// bytes. Text is nominally ASCII; byte values outside ASCII pass through
// uninterpreted rather than being rejected.
func (r *reader) readString() (string, error) {
	n, err := r.readPackedInt()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", r.errf("string length %d is negative", n)
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// errf builds a FormatError at the current cursor position.
func (r *reader) errf(format string, args ...any) error {
	return &FormatError{Offset: r.off, Reason: fmt.Sprintf(format, args...)}
}
