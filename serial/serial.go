// Package serial implements the binary stream serializer used by the
// wallet container format.
//
// Every read and write takes a field name.  Names are part of the format
// contract at the API level so that alternate self-describing encoders can
// share the same call sites, but the binary encoding itself never emits
// them: integers are little-endian, booleans are a single byte, and
// variable-length blobs are prefixed with an unsigned varint length.
// Object boundaries are markers only and contribute no wire bytes.
package serial

import (
	"encoding/binary"
	"errors"
)

// Little endian matches the historical wallet files this package must
// continue to read.
var byteOrder = binary.LittleEndian

// maxBlobLen bounds a blob length prefix read from an untrusted stream so
// a garbled prefix cannot demand an absurd allocation.
const maxBlobLen = 1 << 30

// ErrCorruptStream describes an input stream whose framing is internally
// inconsistent, such as an overflowing varint or an oversized blob length.
var ErrCorruptStream = errors.New("serial: corrupt stream")

// Encodable is any object that can write itself through a Writer.
type Encodable interface {
	Encode(w *Writer) error
}

// Decodable is any object that can read itself through a Reader.
type Decodable interface {
	Decode(r *Reader) error
}
