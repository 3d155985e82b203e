package mqttwire

// ConnackPacket represents an MQTT CONNACK packet.
// MQTT v5.0 spec: Section 3.2
type ConnackPacket struct {
	// SessionPresent indicates whether the server has existing session state.
	SessionPresent bool

	// ReasonCode is the connect reason code.
	ReasonCode ReasonCode

	// Props contains the CONNACK properties.
	Props Properties
}

// Type returns the packet type.
func (p *ConnackPacket) Type() PacketType {
	return PacketCONNACK
}

// Properties returns a pointer to the packet's properties.
func (p *ConnackPacket) Properties() *Properties {
	return &p.Props
}

func (p *ConnackPacket) flags() byte {
	return 0x00
}

func (p *ConnackPacket) size() int {
	return 1 + 1 + p.Props.encodedSize()
}

func (p *ConnackPacket) encode(w *Writer) {
	var ackFlags byte
	if p.SessionPresent {
		ackFlags = 0x01
	}
	w.WriteByte(ackFlags)
	w.WriteByte(byte(p.ReasonCode))
	p.Props.encode(w)
}

func (p *ConnackPacket) decode(r *Reader, header FixedHeader) error {
	ackFlags, err := r.ReadByte()
	if err != nil {
		return err
	}
	// Bits 7-1 are reserved and must be 0.
	if ackFlags&0xFE != 0 {
		return ErrInvalidFlags
	}
	p.SessionPresent = ackFlags&0x01 != 0

	reason, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.ReasonCode = ReasonCode(reason)
	if !p.ReasonCode.ValidFor(PacketCONNACK) {
		return ErrInvalidReasonCode
	}
	// A session cannot be resumed on a failed connect.
	if p.SessionPresent && p.ReasonCode.IsError() {
		return ErrProtocolViolation
	}

	return p.Props.decode(r, PropCtxConnack)
}

// Validate validates the packet contents.
func (p *ConnackPacket) Validate() error {
	if !p.ReasonCode.ValidFor(PacketCONNACK) {
		return ErrInvalidReasonCode
	}
	// A session cannot be resumed on a failed connect.
	if p.SessionPresent && p.ReasonCode.IsError() {
		return ErrProtocolViolation
	}
	return p.Props.validate()
}
