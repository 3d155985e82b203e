package mqttwire

// AuthPacket represents an MQTT AUTH packet, used for enhanced
// authentication exchanges. The minimal form has a zero remaining length
// and implies a success reason code.
// MQTT v5.0 spec: Section 3.15
type AuthPacket struct {
	ReasonCode ReasonCode
	Props      Properties
}

// Type returns the packet type.
func (p *AuthPacket) Type() PacketType { return PacketAUTH }

// Properties returns a pointer to the packet's properties.
func (p *AuthPacket) Properties() *Properties { return &p.Props }

func (p *AuthPacket) flags() byte { return 0x00 }

func (p *AuthPacket) size() int {
	if p.ReasonCode == ReasonSuccess && p.Props.Len() == 0 {
		return 0
	}
	if p.Props.Len() == 0 {
		return 1
	}
	return 1 + p.Props.encodedSize()
}

func (p *AuthPacket) encode(w *Writer) {
	if p.ReasonCode == ReasonSuccess && p.Props.Len() == 0 {
		return
	}
	w.WriteByte(byte(p.ReasonCode))
	if p.Props.Len() > 0 {
		p.Props.encode(w)
	}
}

func (p *AuthPacket) decode(r *Reader, header FixedHeader) error {
	if r.Remaining() == 0 {
		p.ReasonCode = ReasonSuccess
		return nil
	}

	reason, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.ReasonCode = ReasonCode(reason)
	if !p.ReasonCode.ValidFor(PacketAUTH) {
		return ErrInvalidReasonCode
	}

	if r.Remaining() == 0 {
		return nil
	}
	return p.Props.decode(r, PropCtxAuth)
}

// Validate validates the packet contents.
func (p *AuthPacket) Validate() error {
	if !p.ReasonCode.ValidFor(PacketAUTH) {
		return ErrInvalidReasonCode
	}
	return p.Props.validate()
}
