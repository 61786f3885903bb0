package serial

import (
	"io"
)

// Reader decodes named fields from an underlying io.Reader.
//
// A stream that ends mid-field yields io.ErrUnexpectedEOF (or io.EOF when
// no byte of the field was read); framing inconsistencies yield
// ErrCorruptStream.  All other errors come from the underlying reader
// unmodified.
type Reader struct {
	r   io.Reader
	buf [8]byte
}

// NewReader returns a Reader that decodes from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// BeginObject marks the start of a named sub-object.  The binary encoding
// carries nothing for object boundaries.
func (r *Reader) BeginObject(name string) error {
	return nil
}

// EndObject marks the end of a named sub-object.
func (r *Reader) EndObject(name string) error {
	return nil
}

// Uint8 reads a single byte field.
func (r *Reader) Uint8(name string) (uint8, error) {
	if _, err := io.ReadFull(r.r, r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// Uint32 reads a 32-bit unsigned field.
func (r *Reader) Uint32(name string) (uint32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:4]); err != nil {
		return 0, err
	}
	return byteOrder.Uint32(r.buf[:4]), nil
}

// Uint64 reads a 64-bit unsigned field.
func (r *Reader) Uint64(name string) (uint64, error) {
	if _, err := io.ReadFull(r.r, r.buf[:8]); err != nil {
		return 0, err
	}
	return byteOrder.Uint64(r.buf[:8]), nil
}

// Uvarint reads a varint-encoded unsigned field.
func (r *Reader) Uvarint(name string) (uint64, error) {
	var v uint64
	for shift := uint(0); ; shift += 7 {
		if shift > 63 {
			return 0, ErrCorruptStream
		}
		if _, err := io.ReadFull(r.r, r.buf[:1]); err != nil {
			// A varint cut off after its first byte is a
			// truncation, not a clean end of stream.
			if err == io.EOF && shift > 0 {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		b := r.buf[0]
		if b < 0x80 {
			if shift == 63 && b > 1 {
				return 0, ErrCorruptStream
			}
			return v | uint64(b)<<shift, nil
		}
		v |= uint64(b&0x7f) << shift
	}
}

// Bool reads a boolean field.  Any byte other than 0 or 1 is corrupt.
func (r *Reader) Bool(name string) (bool, error) {
	b, err := r.Uint8(name)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrCorruptStream
	}
}

// Bytes reads exactly len(buf) bytes into buf.
func (r *Reader) Bytes(buf []byte, name string) error {
	_, err := io.ReadFull(r.r, buf)
	return err
}

// Blob reads a variable-length byte field written by Writer.Blob.
func (r *Reader) Blob(name string) ([]byte, error) {
	n, err := r.Uvarint(name)
	if err != nil {
		return nil, err
	}
	if n > maxBlobLen {
		return nil, ErrCorruptStream
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Object reads a named nested object.
func (r *Reader) Object(v Decodable, name string) error {
	if err := r.BeginObject(name); err != nil {
		return err
	}
	if err := v.Decode(r); err != nil {
		return err
	}
	return r.EndObject(name)
}
