package mqttwire

// SubackPacket represents an MQTT SUBACK packet. The payload carries one
// reason code per topic filter of the SUBSCRIBE being acknowledged, in order.
// MQTT v5.0 spec: Section 3.9
type SubackPacket struct {
	ID          uint16
	Props       Properties
	ReasonCodes []ReasonCode
}

// Type returns the packet type.
func (p *SubackPacket) Type() PacketType { return PacketSUBACK }

// Properties returns a pointer to the packet's properties.
func (p *SubackPacket) Properties() *Properties { return &p.Props }

// PacketID returns the packet identifier.
func (p *SubackPacket) PacketID() uint16 { return p.ID }

// SetPacketID sets the packet identifier.
func (p *SubackPacket) SetPacketID(id uint16) { p.ID = id }

func (p *SubackPacket) flags() byte { return 0x00 }

func (p *SubackPacket) size() int {
	return 2 + p.Props.encodedSize() + len(p.ReasonCodes)
}

func (p *SubackPacket) encode(w *Writer) {
	w.WriteUint16(p.ID)
	p.Props.encode(w)
	for _, rc := range p.ReasonCodes {
		w.WriteByte(byte(rc))
	}
}

func (p *SubackPacket) decode(r *Reader, header FixedHeader) error {
	var err error
	p.ID, err = r.ReadUint16()
	if err != nil {
		return err
	}
	if p.ID == 0 {
		return ErrInvalidPacketID
	}

	if err := p.Props.decode(r, PropCtxSuback); err != nil {
		return err
	}

	for r.Remaining() > 0 {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		rc := ReasonCode(b)
		if !rc.ValidFor(PacketSUBACK) {
			return ErrInvalidReasonCode
		}
		p.ReasonCodes = append(p.ReasonCodes, rc)
	}

	if len(p.ReasonCodes) == 0 {
		return ErrEmptyPayload
	}
	return nil
}

// Validate validates the packet contents.
func (p *SubackPacket) Validate() error {
	if p.ID == 0 {
		return ErrInvalidPacketID
	}
	if len(p.ReasonCodes) == 0 {
		return ErrEmptyPayload
	}
	for _, rc := range p.ReasonCodes {
		if !rc.ValidFor(PacketSUBACK) {
			return ErrInvalidReasonCode
		}
	}
	return p.Props.validate()
}
