package mqttwire

// UnsubscribePacket represents an MQTT UNSUBSCRIBE packet.
// MQTT v5.0 spec: Section 3.10
type UnsubscribePacket struct {
	ID           uint16
	Props        Properties
	TopicFilters []string
}

// Type returns the packet type.
func (p *UnsubscribePacket) Type() PacketType { return PacketUNSUBSCRIBE }

// Properties returns a pointer to the packet's properties.
func (p *UnsubscribePacket) Properties() *Properties { return &p.Props }

// PacketID returns the packet identifier.
func (p *UnsubscribePacket) PacketID() uint16 { return p.ID }

// SetPacketID sets the packet identifier.
func (p *UnsubscribePacket) SetPacketID(id uint16) { p.ID = id }

func (p *UnsubscribePacket) flags() byte { return 0x02 }

func (p *UnsubscribePacket) size() int {
	n := 2 + p.Props.encodedSize()
	for _, f := range p.TopicFilters {
		n += stringSize(f)
	}
	return n
}

func (p *UnsubscribePacket) encode(w *Writer) {
	w.WriteUint16(p.ID)
	p.Props.encode(w)
	for _, f := range p.TopicFilters {
		writeString(w, f)
	}
}

func (p *UnsubscribePacket) decode(r *Reader, header FixedHeader) error {
	var err error
	p.ID, err = r.ReadUint16()
	if err != nil {
		return err
	}
	if p.ID == 0 {
		return ErrInvalidPacketID
	}

	if err := p.Props.decode(r, PropCtxUnsubscribe); err != nil {
		return err
	}

	// Payload: at least one topic filter.
	for r.Remaining() > 0 {
		filter, err := readString(r)
		if err != nil {
			return err
		}
		if filter == "" {
			return ErrProtocolViolation
		}
		p.TopicFilters = append(p.TopicFilters, filter)
	}

	if len(p.TopicFilters) == 0 {
		return ErrEmptyPayload
	}
	return nil
}

// Validate validates the packet contents.
func (p *UnsubscribePacket) Validate() error {
	if p.ID == 0 {
		return ErrInvalidPacketID
	}
	if len(p.TopicFilters) == 0 {
		return ErrEmptyPayload
	}
	for _, f := range p.TopicFilters {
		if f == "" {
			return ErrProtocolViolation
		}
		if err := validateString(f); err != nil {
			return err
		}
	}
	return p.Props.validate()
}
