package serial

import (
	"encoding/binary"
	"io"
)

// Writer encodes named fields to an underlying io.Writer.  It performs no
// internal buffering; callers that need all-or-nothing output should stage
// into a bytes.Buffer and copy once.
type Writer struct {
	w   io.Writer
	buf [binary.MaxVarintLen64]byte
}

// NewWriter returns a Writer that encodes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// BeginObject marks the start of a named sub-object.  The binary encoding
// emits nothing for object boundaries.
func (w *Writer) BeginObject(name string) error {
	return nil
}

// EndObject marks the end of a named sub-object.
func (w *Writer) EndObject(name string) error {
	return nil
}

// Uint8 writes a single byte field.
func (w *Writer) Uint8(v uint8, name string) error {
	w.buf[0] = v
	_, err := w.w.Write(w.buf[:1])
	return err
}

// Uint32 writes a 32-bit unsigned field.
func (w *Writer) Uint32(v uint32, name string) error {
	byteOrder.PutUint32(w.buf[:4], v)
	_, err := w.w.Write(w.buf[:4])
	return err
}

// Uint64 writes a 64-bit unsigned field.
func (w *Writer) Uint64(v uint64, name string) error {
	byteOrder.PutUint64(w.buf[:8], v)
	_, err := w.w.Write(w.buf[:8])
	return err
}

// Uvarint writes a varint-encoded unsigned field.
func (w *Writer) Uvarint(v uint64, name string) error {
	n := binary.PutUvarint(w.buf[:], v)
	_, err := w.w.Write(w.buf[:n])
	return err
}

// Bool writes a boolean field as a single 0 or 1 byte.
func (w *Writer) Bool(v bool, name string) error {
	var b uint8
	if v {
		b = 1
	}
	return w.Uint8(b, name)
}

// Bytes writes a fixed-width byte array field with no length prefix.  The
// reader must know the width.
func (w *Writer) Bytes(v []byte, name string) error {
	_, err := w.w.Write(v)
	return err
}

// Blob writes a variable-length byte field as a varint length prefix
// followed by the raw bytes.
func (w *Writer) Blob(v []byte, name string) error {
	if err := w.Uvarint(uint64(len(v)), name); err != nil {
		return err
	}
	if len(v) == 0 {
		return nil
	}
	_, err := w.w.Write(v)
	return err
}

// Object writes a named nested object.
func (w *Writer) Object(v Encodable, name string) error {
	if err := w.BeginObject(name); err != nil {
		return err
	}
	if err := v.Encode(w); err != nil {
		return err
	}
	return w.EndObject(name)
}
