package mqttwire

// DisconnectPacket represents an MQTT DISCONNECT packet. The minimal form
// has a zero remaining length and implies a normal disconnection; the fuller
// forms add a reason code and properties.
// MQTT v5.0 spec: Section 3.14
type DisconnectPacket struct {
	ReasonCode ReasonCode
	Props      Properties
}

// Type returns the packet type.
func (p *DisconnectPacket) Type() PacketType { return PacketDISCONNECT }

// Properties returns a pointer to the packet's properties.
func (p *DisconnectPacket) Properties() *Properties { return &p.Props }

func (p *DisconnectPacket) flags() byte { return 0x00 }

func (p *DisconnectPacket) size() int {
	if p.ReasonCode == ReasonSuccess && p.Props.Len() == 0 {
		return 0
	}
	if p.Props.Len() == 0 {
		return 1
	}
	return 1 + p.Props.encodedSize()
}

func (p *DisconnectPacket) encode(w *Writer) {
	if p.ReasonCode == ReasonSuccess && p.Props.Len() == 0 {
		return
	}
	w.WriteByte(byte(p.ReasonCode))
	if p.Props.Len() > 0 {
		p.Props.encode(w)
	}
}

func (p *DisconnectPacket) decode(r *Reader, header FixedHeader) error {
	if r.Remaining() == 0 {
		p.ReasonCode = ReasonSuccess
		return nil
	}

	reason, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.ReasonCode = ReasonCode(reason)
	if !p.ReasonCode.ValidFor(PacketDISCONNECT) {
		return ErrInvalidReasonCode
	}

	if r.Remaining() == 0 {
		return nil
	}
	return p.Props.decode(r, PropCtxDisconnect)
}

// Validate validates the packet contents.
func (p *DisconnectPacket) Validate() error {
	if !p.ReasonCode.ValidFor(PacketDISCONNECT) {
		return ErrInvalidReasonCode
	}
	return p.Props.validate()
}
