// Package binio provides the little-endian fixed-width read/write
// primitives the container codecs are built on, plus UTF-16LE string
// conversion for the name fields every container carries.
package binio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf16"
)

// Reader wraps a byte slice with a running position and a sticky first
// error: once a read fails, every subsequent call on the same Reader
// is a no-op that keeps returning that error, so call sites can chain
// several reads and check Err() once at the end.
type Reader struct {
	r   *bytes.Reader
	pos int64
	err error
}

func NewReader(data []byte) *Reader {
	return &Reader{r: bytes.NewReader(data)}
}

func (d *Reader) Err() error { return d.err }

func (d *Reader) Pos() int64 { return d.pos }

func (d *Reader) setError(e error) {
	if e == nil || d.err != nil {
		return
	}
	if e == io.EOF {
		e = io.ErrUnexpectedEOF
	}
	d.err = e
}

// Seek moves the read position absolutely from the start of the
// buffer; it is a no-op once the reader has a sticky error.
func (d *Reader) Seek(offset int64) {
	if d.err != nil {
		return
	}
	n, err := d.r.Seek(offset, io.SeekStart)
	d.pos = n
	d.setError(err)
}

// Read fills dst (a pointer to a fixed-width value or array) via
// binary.Read in little-endian order.
func (d *Reader) Read(dst interface{}) {
	if d.err != nil {
		return
	}
	d.pos += int64(binary.Size(dst))
	d.setError(binary.Read(d.r, binary.LittleEndian, dst))
}

func (d *Reader) ReadUint8() uint8 {
	var v uint8
	d.Read(&v)
	return v
}

func (d *Reader) ReadUint16() uint16 {
	var v uint16
	d.Read(&v)
	return v
}

func (d *Reader) ReadUint32() uint32 {
	var v uint32
	d.Read(&v)
	return v
}

func (d *Reader) ReadUint64() uint64 {
	var v uint64
	d.Read(&v)
	return v
}

// ReadBytes returns the next n bytes, or a zero-length slice (and sets
// the sticky error) if fewer remain.
func (d *Reader) ReadBytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	buf := make([]byte, n)
	d.pos += int64(n)
	_, err := io.ReadFull(d.r, buf)
	d.setError(err)
	if d.err != nil {
		return nil
	}
	return buf
}

// Writer accumulates little-endian fixed-width writes into a byte
// buffer, with the same sticky-first-error discipline as Reader.
type Writer struct {
	buf bytes.Buffer
	err error
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Err() error { return w.err }

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

func (w *Writer) Len() int { return w.buf.Len() }

func (w *Writer) setError(e error) {
	if e == nil || w.err != nil {
		return
	}
	w.err = e
}

func (w *Writer) Write(v interface{}) {
	if w.err != nil {
		return
	}
	w.setError(binary.Write(&w.buf, binary.LittleEndian, v))
}

func (w *Writer) WriteUint8(v uint8)   { w.Write(v) }
func (w *Writer) WriteUint16(v uint16) { w.Write(v) }
func (w *Writer) WriteUint32(v uint32) { w.Write(v) }
func (w *Writer) WriteUint64(v uint64) { w.Write(v) }

func (w *Writer) WriteBytes(b []byte) {
	if w.err != nil {
		return
	}
	_, err := w.buf.Write(b)
	w.setError(err)
}

func (w *Writer) WriteZeros(n int) {
	if n <= 0 {
		return
	}
	w.WriteBytes(make([]byte, n))
}

// DecodeUTF16LE turns a little-endian UTF-16 byte string (as used for
// every name field in these containers) into a Go string. len(b) must
// be even.
func DecodeUTF16LE(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("binio: odd-length utf16le buffer (%d bytes)", len(b))
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return string(utf16.Decode(units)), nil
}

// EncodeUTF16LE is the inverse of DecodeUTF16LE.
func EncodeUTF16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	b := make([]byte, len(units)*2)
	for i, u := range units {
		b[2*i] = byte(u)
		b[2*i+1] = byte(u >> 8)
	}
	return b
}
