// SPDX-License-Identifier: MPL-2.0

// Package testutil builds synthetic packed config containers for tests.
// The encoder mirrors the wire format independently of the decoder, so
// the two cannot drift in lockstep without a test noticing.
package testutil

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"time"
)

// Wire constants, duplicated on purpose (see package comment).
const (
	magic = 0x334D4DE3

	tagMapping  = 0x01
	tagSequence = 0x02
	tagScalar   = 0x03

	scalarInline  = 0xF0
	scalarTableID = 0xFF

	ticksPerSecond = 10_000_000
	unixEpochTicks = 621_355_968_000_000_000
)

// Node is one encodable value-tree node: Map, Seq, Str, or Ref.
type Node interface {
	appendItem(dst []byte) []byte
}

// Pair is one ordered mapping entry. Key must be Str or Ref.
type Pair struct {
	Key   Node
	Value Node
}

// Map is a mapping node with encoded pair order preserved.
type Map []Pair

// Seq is a sequence node.
type Seq []Node

// Str is an inline string scalar.
type Str string

// Ref is a string-table reference scalar.
type Ref int32

func (m Map) appendItem(dst []byte) []byte {
	dst = append(dst, tagMapping)
	dst = AppendPacked(dst, int32(len(m)))
	for _, p := range m {
		dst = appendScalar(dst, p.Key)
		dst = p.Value.appendItem(dst)
	}
	return dst
}

func (s Seq) appendItem(dst []byte) []byte {
	dst = append(dst, tagSequence)
	dst = AppendPacked(dst, int32(len(s)))
	for _, n := range s {
		dst = n.appendItem(dst)
	}
	return dst
}

func (s Str) appendItem(dst []byte) []byte {
	return appendScalar(append(dst, tagScalar), s)
}

func (r Ref) appendItem(dst []byte) []byte {
	return appendScalar(append(dst, tagScalar), r)
}

func appendScalar(dst []byte, n Node) []byte {
	switch v := n.(type) {
	case Str:
		dst = append(dst, scalarInline)
		return AppendString(dst, string(v))
	case Ref:
		dst = append(dst, scalarTableID)
		return AppendPacked(dst, int32(v))
	default:
		panic(fmt.Sprintf("testutil: %T cannot encode as a scalar", n))
	}
}

// Encode returns the wire encoding of one value-tree node.
func Encode(n Node) []byte {
	return n.appendItem(nil)
}

// AppendPacked appends v as a packed 7-bit-group integer.
func AppendPacked(dst []byte, v int32) []byte {
	u := uint32(v)
	for u >= 0x80 {
		dst = append(dst, byte(u)|0x80)
		u >>= 7
	}
	return append(dst, byte(u))
}

// AppendString appends a packed length prefix followed by the raw bytes
// of s.
func AppendString(dst []byte, s string) []byte {
	dst = AppendPacked(dst, int32(len(s)))
	return append(dst, s...)
}

// Ticks converts a time to the container's 100 ns tick encoding.
func Ticks(t time.Time) int64 {
	return (t.Unix()+unixEpochTicks/ticksPerSecond)*ticksPerSecond + int64(t.Nanosecond())/100
}

type tableEntry struct {
	id   int32
	text string
}

type fileEntry struct {
	path     string
	checksum uint32
	hasSum   bool
	size     int32
	hasSize  bool
	modified time.Time
	tree     Node
}

// ContainerBuilder assembles one container. The zero value is not
// usable; start from NewContainer.
type ContainerBuilder struct {
	order       binary.AppendByteOrder
	version     byte
	compression byte
	encryption  byte
	table       []tableEntry
	files       []fileEntry
	tail        []byte
}

// NewContainer returns a builder for a little-endian, version 1,
// uncompressed, unencrypted container.
func NewContainer() *ContainerBuilder {
	return &ContainerBuilder{order: binary.LittleEndian, version: 1}
}

// BigEndian switches the container to big-endian byte order, storing the
// magic bytes reversed.
func (b *ContainerBuilder) BigEndian() *ContainerBuilder {
	b.order = binary.BigEndian
	return b
}

// Version overrides the header version byte.
func (b *ContainerBuilder) Version(v byte) *ContainerBuilder {
	b.version = v
	return b
}

// Compression overrides the header compression method byte.
func (b *ContainerBuilder) Compression(c byte) *ContainerBuilder {
	b.compression = c
	return b
}

// Encryption overrides the header encryption method byte.
func (b *ContainerBuilder) Encryption(e byte) *ContainerBuilder {
	b.encryption = e
	return b
}

// TableString adds one string-table entry.
func (b *ContainerBuilder) TableString(id int32, text string) *ContainerBuilder {
	b.table = append(b.table, tableEntry{id: id, text: text})
	return b
}

// File adds one entry with a CRC32 checksum and declared size derived
// from the encoded payload.
func (b *ContainerBuilder) File(path string, modified time.Time, tree Node) *ContainerBuilder {
	b.files = append(b.files, fileEntry{path: path, modified: modified, tree: tree})
	return b
}

// FileFull adds one entry with every metadata field spelled out.
func (b *ContainerBuilder) FileFull(path string, checksum uint32, size int32, modified time.Time, tree Node) *ContainerBuilder {
	b.files = append(b.files, fileEntry{
		path:     path,
		checksum: checksum,
		hasSum:   true,
		size:     size,
		hasSize:  true,
		modified: modified,
		tree:     tree,
	})
	return b
}

// Tail appends raw bytes after the final entry.
func (b *ContainerBuilder) Tail(raw []byte) *ContainerBuilder {
	b.tail = append(b.tail, raw...)
	return b
}

// Bytes encodes the container.
func (b *ContainerBuilder) Bytes() []byte {
	var out []byte

	// The magic is defined by its little-endian reading; a big-endian
	// writer lays the same value down in its own order, which is what
	// reverses the bytes on disk.
	out = b.order.AppendUint32(out, magic)
	out = append(out, b.version, b.compression, b.encryption)

	out = b.order.AppendUint32(out, uint32(int32(len(b.table))))
	for _, e := range b.table {
		out = AppendPacked(out, e.id)
		out = AppendString(out, e.text)
	}

	out = b.order.AppendUint16(out, uint16(len(b.files)))
	for _, f := range b.files {
		payload := f.tree.appendItem(nil)
		sum := f.checksum
		if !f.hasSum {
			sum = crc32.ChecksumIEEE(payload)
		}
		size := f.size
		if !f.hasSize {
			size = int32(len(payload))
		}
		out = AppendString(out, f.path)
		out = b.order.AppendUint32(out, sum)
		out = b.order.AppendUint32(out, uint32(size))
		out = b.order.AppendUint64(out, uint64(Ticks(f.modified)))
		out = append(out, payload...)
	}
	return append(out, b.tail...)
}
