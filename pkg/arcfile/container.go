// SPDX-License-Identifier: MPL-2.0

package arcfile

import (
	"io"
	"time"
)

// Container is one decoded packed config container. Decode parses the
// header, string table, and entry count eagerly; entry payloads are
// decoded lazily by Walk, which may run once.
type Container struct {
	// Header is the validated container preamble.
	Header Header

	table     map[int32]string
	fileCount int
	r         *reader
	walked    bool
}

// Entry is the metadata of one file record. It is constructed per Walk
// iteration and not retained by the decoder.
type Entry struct {
	// Index is the entry's zero-based position in the container.
	Index int

	// Path is the entry's relative path as stored, with forward slashes.
	Path string

	// Checksum is the stored 32-bit checksum. Opaque: the decoder
	// carries it but never verifies payloads against it.
	Checksum uint32

	// Size is the declared payload size in bytes. Informational only;
	// the decoder derives actual consumption from the nested structure
	// itself.
	Size int32

	// Modified is the entry's modification time in UTC.
	Modified time.Time
}

// WalkFunc inspects one entry's metadata and returns the Handler that
// receives the entry's decoded events. Returning a nil Handler consumes
// the payload without emitting, which is how metadata-only listings stay
// single-pass.
type WalkFunc func(Entry) (Handler, error)

// Decode parses the container preamble from data, which must hold the
// complete container. The returned Container reads from data without
// copying it.
func Decode(data []byte) (*Container, error) {
	r := &reader{buf: data}
	h, err := parseHeader(r)
	if err != nil {
		return nil, err
	}
	table, err := readStringTable(r)
	if err != nil {
		return nil, err
	}
	n, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	return &Container{Header: h, table: table, fileCount: int(n), r: r}, nil
}

// readStringTable builds the id-to-text mapping consulted by scalar
// references. The count is a fixed-width int32 in the container's byte
// order; ids need not be contiguous or sorted, but they must be unique.
func readStringTable(r *reader) (map[int32]string, error) {
	count, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, r.errf("string table count %d is negative", count)
	}
	table := make(map[int32]string)
	for i := int32(0); i < count; i++ {
		id, err := r.readPackedInt()
		if err != nil {
			return nil, err
		}
		value, err := r.readString()
		if err != nil {
			return nil, err
		}
		if _, dup := table[id]; dup {
			return nil, r.errf("string table repeats id %d", id)
		}
		table[id] = value
	}
	return table, nil
}

// EntryCount reports the number of file entries the container declares.
func (c *Container) EntryCount() int { return c.fileCount }

// StringCount reports the number of string-table entries.
func (c *Container) StringCount() int { return len(c.table) }

// Walk decodes every file entry in container order, calling fn with each
// entry's metadata and streaming that entry's value tree to the Handler
// fn returns. Entries sit back-to-back in the stream with no per-entry
// length prefix, so the walk is strictly sequential and single-use;
// a second call returns ErrWalked.
//
// A Handler that also implements io.Closer is closed after its entry's
// final event, before the next entry is read. Handlers that own files
// use this to flush and release them at the entry boundary.
//
// Any error, whether from decoding, from fn, or from a Handler, aborts
// the walk immediately: the cursor cannot recover past a bad entry.
func (c *Container) Walk(fn WalkFunc) error {
	if c.walked {
		return ErrWalked
	}
	c.walked = true
	for i := 0; i < c.fileCount; i++ {
		path, err := c.r.readString()
		if err != nil {
			return err
		}
		checksum, err := c.r.readUint32()
		if err != nil {
			return err
		}
		size, err := c.r.readInt32()
		if err != nil {
			return err
		}
		ticks, err := c.r.readInt64()
		if err != nil {
			return err
		}
		entry := Entry{
			Index:    i,
			Path:     path,
			Checksum: checksum,
			Size:     size,
			Modified: TimeFromTicks(ticks),
		}
		h, err := fn(entry)
		if err != nil {
			return err
		}
		if h == nil {
			h = discard{}
		}
		if err := decodeValue(c.r, c.table, h); err != nil {
			return err
		}
		if closer, ok := h.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				return err
			}
		}
	}
	return nil
}
