package mqttwire

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Encode precondition errors. These are programmer errors surfaced by
// Packet.Validate before any byte is written.
var (
	ErrStringTooLong      = errors.New("string exceeds maximum length of 65535 bytes")
	ErrBinaryTooLong      = errors.New("binary data exceeds maximum length of 65535 bytes")
	ErrStringContainsNull = errors.New("string contains null character")
	ErrVarIntTooLarge     = errors.New("variable byte integer exceeds maximum value")
)

const (
	maxUint16         = 65535
	maxVarInt         = 268435455 // 0x0FFFFFFF
	varIntContinueBit = 0x80
	varIntValueMask   = 0x7F
)

// validateString reports whether s is a legal MQTT UTF-8 encoded string.
func validateString(s string) error {
	if len(s) > maxUint16 {
		return ErrStringTooLong
	}
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}
	if strings.IndexByte(s, 0) >= 0 {
		return ErrStringContainsNull
	}
	return nil
}

// writeString appends a UTF-8 string with 2-byte length prefix.
func writeString(w *Writer, s string) {
	w.WriteUint16(uint16(len(s)))
	w.WriteString(s)
}

// readString reads a UTF-8 string with 2-byte length prefix. The cursor is
// left unchanged on failure.
func readString(r *Reader) (string, error) {
	start := r.pos
	length, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	buf, err := r.ReadBytes(int(length))
	if err != nil {
		r.pos = start
		return "", err
	}
	if !utf8.Valid(buf) {
		r.pos = start
		return "", ErrInvalidUTF8
	}
	for i := range buf {
		if buf[i] == 0 {
			r.pos = start
			return "", ErrStringContainsNull
		}
	}
	return string(buf), nil
}

// writeBinary appends binary data with 2-byte length prefix.
func writeBinary(w *Writer, data []byte) {
	w.WriteUint16(uint16(len(data)))
	w.WriteBytes(data)
}

// readBinary reads binary data with 2-byte length prefix. The returned slice
// aliases the source buffer.
func readBinary(r *Reader) ([]byte, error) {
	start := r.pos
	length, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	buf, err := r.ReadBytes(int(length))
	if err != nil {
		r.pos = start
		return nil, err
	}
	return buf, nil
}

// StringPair represents a key-value string pair used in MQTT v5.0 properties.
type StringPair struct {
	Key   string
	Value string
}

// writeStringPair appends a string pair (key, value).
func writeStringPair(w *Writer, pair StringPair) {
	writeString(w, pair.Key)
	writeString(w, pair.Value)
}

// readStringPair reads a string pair (key, value).
func readStringPair(r *Reader) (StringPair, error) {
	start := r.pos
	key, err := readString(r)
	if err != nil {
		return StringPair{}, err
	}
	value, err := readString(r)
	if err != nil {
		r.pos = start
		return StringPair{}, err
	}
	return StringPair{Key: key, Value: value}, nil
}

// writeVarInt appends a variable byte integer in its minimal encoding.
// Values above maxVarInt must be rejected by Validate before encoding.
func writeVarInt(w *Writer, value uint32) {
	for {
		encodedByte := byte(value & varIntValueMask)
		value >>= 7
		if value > 0 {
			encodedByte |= varIntContinueBit
		}
		w.WriteByte(encodedByte)
		if value == 0 {
			return
		}
	}
}

// readVarInt reads a variable byte integer. Only the minimal encoding is
// accepted: a terminating byte of zero after a continuation byte means the
// value fits a shorter encoding, and is rejected byte-for-byte rather than
// by range-checking the accumulated value. The cursor is left unchanged on
// failure.
func readVarInt(r *Reader) (uint32, error) {
	start := r.pos
	var value uint32
	var shift uint

	for i := 0; i < 4; i++ {
		b, err := r.ReadByte()
		if err != nil {
			r.pos = start
			return 0, err
		}

		value |= uint32(b&varIntValueMask) << shift

		if b&varIntContinueBit == 0 {
			if i > 0 && b == 0 {
				// Overlong encoding, e.g. [0x80, 0x00] for 0.
				r.pos = start
				return 0, ErrMalformedVarInt
			}
			return value, nil
		}
		shift += 7
	}

	// Four continuation bytes with no terminator.
	r.pos = start
	return 0, ErrMalformedVarInt
}

// varIntSize returns the number of bytes of the minimal encoding of value.
func varIntSize(value uint32) int {
	switch {
	case value < 128:
		return 1
	case value < 16384:
		return 2
	case value < 2097152:
		return 3
	default:
		return 4
	}
}

// stringSize returns the encoded size of a length-prefixed string.
func stringSize(s string) int {
	return 2 + len(s)
}

// binarySize returns the encoded size of length-prefixed binary data.
func binarySize(b []byte) int {
	return 2 + len(b)
}
