package mqttwire

// UnsubackPacket represents an MQTT UNSUBACK packet. The payload carries one
// reason code per topic filter of the UNSUBSCRIBE being acknowledged.
// MQTT v5.0 spec: Section 3.11
type UnsubackPacket struct {
	ID          uint16
	Props       Properties
	ReasonCodes []ReasonCode
}

// Type returns the packet type.
func (p *UnsubackPacket) Type() PacketType { return PacketUNSUBACK }

// Properties returns a pointer to the packet's properties.
func (p *UnsubackPacket) Properties() *Properties { return &p.Props }

// PacketID returns the packet identifier.
func (p *UnsubackPacket) PacketID() uint16 { return p.ID }

// SetPacketID sets the packet identifier.
func (p *UnsubackPacket) SetPacketID(id uint16) { p.ID = id }

func (p *UnsubackPacket) flags() byte { return 0x00 }

func (p *UnsubackPacket) size() int {
	return 2 + p.Props.encodedSize() + len(p.ReasonCodes)
}

func (p *UnsubackPacket) encode(w *Writer) {
	w.WriteUint16(p.ID)
	p.Props.encode(w)
	for _, rc := range p.ReasonCodes {
		w.WriteByte(byte(rc))
	}
}

func (p *UnsubackPacket) decode(r *Reader, header FixedHeader) error {
	var err error
	p.ID, err = r.ReadUint16()
	if err != nil {
		return err
	}
	if p.ID == 0 {
		return ErrInvalidPacketID
	}

	if err := p.Props.decode(r, PropCtxUnsuback); err != nil {
		return err
	}

	for r.Remaining() > 0 {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		rc := ReasonCode(b)
		if !rc.ValidFor(PacketUNSUBACK) {
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
func (p *UnsubackPacket) Validate() error {
	if p.ID == 0 {
		return ErrInvalidPacketID
	}
	if len(p.ReasonCodes) == 0 {
		return ErrEmptyPayload
	}
	for _, rc := range p.ReasonCodes {
		if !rc.ValidFor(PacketUNSUBACK) {
			return ErrInvalidReasonCode
		}
	}
	return p.Props.validate()
}
