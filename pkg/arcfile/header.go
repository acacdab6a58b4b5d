// SPDX-License-Identifier: MPL-2.0

package arcfile

import (
	"encoding/binary"
	"fmt"
)

// Magic identifies a packed config container when its first four bytes
// are read little-endian.
const Magic uint32 = 0x334D4DE3

// magicSwapped is Magic with its bytes reversed, i.e. what a
// little-endian read produces for a container written big-endian.
const magicSwapped uint32 = 0xE34D4D33

// headerVersion is the only container version that exists.
const headerVersion = 1

// CompressionMethod is the header's payload compression code. The format
// defines codes 0 through 3; only CompressionNone is readable.
type CompressionMethod uint8

// CompressionNone marks an uncompressed payload.
const CompressionNone CompressionMethod = 0

// compressionMax is the highest code the format defines.
const compressionMax = 3

func (m CompressionMethod) String() string {
	if m == CompressionNone {
		return "none"
	}
	return fmt.Sprintf("method %d", uint8(m))
}

// EncryptionMethod is the header's payload encryption code. The format
// defines codes 0 and 1; only EncryptionNone is readable.
type EncryptionMethod uint8

// EncryptionNone marks an unencrypted payload.
const EncryptionNone EncryptionMethod = 0

// encryptionMax is the highest code the format defines.
const encryptionMax = 1

func (m EncryptionMethod) String() string {
	if m == EncryptionNone {
		return "none"
	}
	return fmt.Sprintf("method %d", uint8(m))
}

// Header is the fixed preamble of a packed config container.
type Header struct {
	// ByteOrder applies to every fixed-width integer in the container.
	// Derived from the orientation of the magic bytes.
	ByteOrder binary.ByteOrder

	// Version is the format version.
	Version uint8

	// Compression is the declared payload compression method.
	Compression CompressionMethod

	// Encryption is the declared payload encryption method.
	Encryption EncryptionMethod
}

// ByteOrderName returns "little-endian" or "big-endian" for display.
func (h Header) ByteOrderName() string {
	if h.ByteOrder == binary.BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

// parseHeader validates the magic, establishes the byte order, and
// range-checks the version and method bytes. A method code inside the
// defined range but not implemented is an UnsupportedFeatureError, never
// a FormatError: the file is fine, the tool has a gap.
func parseHeader(r *reader) (Header, error) {
	raw, err := r.take(4)
	if err != nil {
		return Header{}, err
	}

	var h Header
	switch binary.LittleEndian.Uint32(raw) {
	case Magic:
		h.ByteOrder = binary.LittleEndian
	case magicSwapped:
		h.ByteOrder = binary.BigEndian
	default:
		return Header{}, &FormatError{Offset: 0, Reason: "not a packed config container (magic mismatch)"}
	}
	r.order = h.ByteOrder

	v, err := r.readByte()
	if err != nil {
		return Header{}, err
	}
	if v != headerVersion {
		return Header{}, r.errf("container version %d (only version %d exists)", v, headerVersion)
	}
	h.Version = v

	c, err := r.readByte()
	if err != nil {
		return Header{}, err
	}
	if c > compressionMax {
		return Header{}, r.errf("compression method %d is outside the defined range 0..%d", c, compressionMax)
	}
	h.Compression = CompressionMethod(c)

	e, err := r.readByte()
	if err != nil {
		return Header{}, err
	}
	if e > encryptionMax {
		return Header{}, r.errf("encryption method %d is outside the defined range 0..%d", e, encryptionMax)
	}
	h.Encryption = EncryptionMethod(e)

	if h.Compression != CompressionNone {
		return Header{}, &UnsupportedFeatureError{Feature: FeatureCompression, Code: uint8(h.Compression)}
	}
	if h.Encryption != EncryptionNone {
		return Header{}, &UnsupportedFeatureError{Feature: FeatureEncryption, Code: uint8(h.Encryption)}
	}
	return h, nil
}
