package mqttwire

import (
	"errors"
	"io"
)

// ErrPacketTooLarge is returned when a packet exceeds the caller's maximum
// size or the protocol's remaining-length ceiling.
var ErrPacketTooLarge = errors.New("packet exceeds maximum size")

// DecodePacket parses one complete packet from the front of buf and returns
// it together with the number of bytes consumed, so a transport accumulating
// stream bytes can discard exactly one packet's worth and retry later with
// more data. An incomplete buffer returns ErrInsufficientData; every other
// failure identifies the specific malformed-input condition. The call is
// atomic: on error no packet and no consumed count are reported.
//
// Decoded packets may borrow from buf (PUBLISH payloads, binary fields);
// callers that reuse buf must copy those fields first.
func DecodePacket(buf []byte) (Packet, int, error) {
	r := NewReader(buf)

	var header FixedHeader
	if err := header.Decode(r); err != nil {
		return nil, 0, err
	}
	if err := header.ValidateFlags(); err != nil {
		return nil, 0, err
	}

	// Narrow to the remaining-length window so the body codec cannot read
	// bytes belonging to the next packet in the stream.
	body, err := r.Sub(int(header.RemainingLength))
	if err != nil {
		return nil, 0, err
	}

	packet := newPacket(header.PacketType)
	if packet == nil {
		return nil, 0, ErrUnknownPacketType
	}

	if err := packet.decode(body, header); err != nil {
		return nil, 0, err
	}
	if body.Remaining() > 0 {
		return nil, 0, ErrTrailingData
	}

	return packet, r.Pos(), nil
}

// AppendPacket encodes the packet and appends the bytes to dst. The body
// size is computed first because the remaining length precedes the body on
// the wire; the packet is then rendered in a single pass.
func AppendPacket(dst []byte, packet Packet) ([]byte, error) {
	if err := packet.Validate(); err != nil {
		return dst, err
	}

	body := packet.size()
	if body > maxVarInt {
		return dst, ErrPacketTooLarge
	}

	w := NewWriter(dst)
	w.WriteByte(byte(packet.Type())<<4 | (packet.flags() & 0x0F))
	writeVarInt(w, uint32(body))
	packet.encode(w)
	return w.Bytes(), nil
}

// EncodePacket encodes the packet into a freshly allocated byte slice.
func EncodePacket(packet Packet) ([]byte, error) {
	if err := packet.Validate(); err != nil {
		return nil, err
	}

	body := packet.size()
	if body > maxVarInt {
		return nil, ErrPacketTooLarge
	}

	buf := make([]byte, 0, 1+varIntSize(uint32(body))+body)
	return AppendPacket(buf, packet)
}

// ReadPacket reads one complete MQTT packet from the reader. If maxSize is
// greater than 0, packets whose remaining length exceeds maxSize return
// ErrPacketTooLarge without reading the body.
func ReadPacket(r io.Reader, maxSize uint32) (Packet, int, error) {
	header, headerBytes, n, err := readFixedHeader(r)
	if err != nil {
		return nil, n, err
	}

	if maxSize > 0 && header.RemainingLength > maxSize {
		return nil, n, ErrPacketTooLarge
	}

	frame := make([]byte, len(headerBytes)+int(header.RemainingLength))
	copy(frame, headerBytes)
	if header.RemainingLength > 0 {
		rn, err := io.ReadFull(r, frame[len(headerBytes):])
		n += rn
		if err != nil {
			return nil, n, err
		}
	}

	packet, _, err := DecodePacket(frame)
	if err != nil {
		return nil, n, err
	}
	return packet, n, nil
}

// readFixedHeader reads the type byte and remaining-length varint from a
// stream one byte at a time, returning the parsed header and its raw bytes.
func readFixedHeader(r io.Reader) (FixedHeader, []byte, int, error) {
	var raw [5]byte
	var n int

	if _, err := io.ReadFull(r, raw[:1]); err != nil {
		return FixedHeader{}, nil, 0, err
	}
	n = 1

	for i := 1; ; i++ {
		if i == len(raw) {
			return FixedHeader{}, nil, n, ErrMalformedVarInt
		}
		if _, err := io.ReadFull(r, raw[i:i+1]); err != nil {
			return FixedHeader{}, nil, n, err
		}
		n++
		if raw[i]&varIntContinueBit == 0 {
			break
		}
	}

	var header FixedHeader
	cursor := NewReader(raw[:n])
	if err := header.Decode(cursor); err != nil {
		return FixedHeader{}, nil, n, err
	}
	return header, raw[:n], n, nil
}

// WritePacket writes one complete MQTT packet to the writer. If maxSize is
// greater than 0, packets larger than maxSize return ErrPacketTooLarge.
// Encode buffers are pooled; nothing is retained across calls.
func WritePacket(w io.Writer, packet Packet, maxSize uint32) (int, error) {
	enc := getWriter()
	defer putWriter(enc)

	buf, err := AppendPacket(enc.buf, packet)
	if err != nil {
		return 0, err
	}
	enc.buf = buf

	if maxSize > 0 && uint32(len(buf)) > maxSize {
		return 0, ErrPacketTooLarge
	}
	return w.Write(buf)
}
