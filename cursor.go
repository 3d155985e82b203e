package mqttwire

import "encoding/binary"

// Reader is a bounds-checked cursor over a byte slice. Every read verifies
// the requested width against the remaining bytes before advancing; a failed
// read returns ErrInsufficientData and leaves the position unchanged. The
// reader never copies or retains the underlying slice beyond the fields the
// decoded packets are documented to borrow.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{data: buf}
}

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.Remaining() < 1 {
		return 0, ErrInsufficientData
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadUint16 reads a 2-byte big-endian integer.
func (r *Reader) ReadUint16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, ErrInsufficientData
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadUint32 reads a 4-byte big-endian integer.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, ErrInsufficientData
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadBytes reads exactly n bytes. The returned slice aliases the
// underlying buffer; callers that retain it must copy.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrInsufficientData
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Sub consumes the next n bytes and returns a Reader scoped to exactly that
// window. Packet body codecs decode from such a window so they cannot read
// bytes belonging to the next packet in a stream.
func (r *Reader) Sub(n int) (*Reader, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return &Reader{data: b}, nil
}

// Writer is an append-based cursor for packet encoding. Writes never fail;
// encode preconditions are checked by Packet.Validate before any byte is
// produced.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer that appends to buf.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Bytes returns the accumulated bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) {
	w.buf = append(w.buf, b)
}

// WriteUint16 appends a 2-byte big-endian integer.
func (w *Writer) WriteUint16(v uint16) {
	w.buf = append(w.buf, byte(v>>8), byte(v))
}

// WriteUint32 appends a 4-byte big-endian integer.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = append(w.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// WriteBytes appends b verbatim.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteString appends s verbatim, without a length prefix.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}
