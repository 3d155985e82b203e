package mqttwire

import "errors"

// PUBLISH packet errors.
var (
	ErrTopicNameEmpty   = errors.New("topic name cannot be empty")
	ErrPacketIDRequired = errors.New("packet identifier required for QoS > 0")
)

// PublishPacket represents an MQTT PUBLISH packet.
// MQTT v5.0 spec: Section 3.3
type PublishPacket struct {
	// Topic is the topic name.
	Topic string

	// Payload is the application message. After a decode the slice aliases
	// the source buffer.
	Payload []byte

	// QoS is the Quality of Service level.
	QoS QoS

	// Retain indicates if the message should be retained.
	Retain bool

	// DUP indicates if this is a retransmission.
	DUP bool

	// ID is the packet identifier, present on the wire iff QoS > 0.
	ID uint16

	// Props contains the PUBLISH properties.
	Props Properties
}

// Type returns the packet type.
func (p *PublishPacket) Type() PacketType {
	return PacketPUBLISH
}

// Properties returns a pointer to the packet's properties.
func (p *PublishPacket) Properties() *Properties {
	return &p.Props
}

// PacketID returns the packet identifier.
func (p *PublishPacket) PacketID() uint16 {
	return p.ID
}

// SetPacketID sets the packet identifier.
func (p *PublishPacket) SetPacketID(id uint16) {
	p.ID = id
}

func (p *PublishPacket) flags() byte {
	var flags byte
	if p.DUP {
		flags |= 0x08
	}
	flags |= byte(p.QoS&0x03) << 1
	if p.Retain {
		flags |= 0x01
	}
	return flags
}

func (p *PublishPacket) size() int {
	n := stringSize(p.Topic)
	if p.QoS > QoSAtMostOnce {
		n += 2
	}
	n += p.Props.encodedSize()
	n += len(p.Payload)
	return n
}

func (p *PublishPacket) encode(w *Writer) {
	writeString(w, p.Topic)
	if p.QoS > QoSAtMostOnce {
		w.WriteUint16(p.ID)
	}
	p.Props.encode(w)
	// Payload has no length prefix; it runs to the end of the packet.
	w.WriteBytes(p.Payload)
}

func (p *PublishPacket) decode(r *Reader, header FixedHeader) error {
	p.DUP = header.DUP()
	p.QoS = header.QoS()
	p.Retain = header.Retain()

	if !p.QoS.Valid() {
		return ErrInvalidQoS
	}
	// DUP must be 0 for QoS 0
	if p.DUP && p.QoS == QoSAtMostOnce {
		return ErrInvalidFlags
	}

	var err error
	p.Topic, err = readString(r)
	if err != nil {
		return err
	}

	// The identifier field exists iff QoS > 0; a window too short to hold
	// it fails here rather than misreading payload bytes.
	if p.QoS > QoSAtMostOnce {
		p.ID, err = r.ReadUint16()
		if err != nil {
			return err
		}
		if p.ID == 0 {
			return ErrProtocolViolation
		}
	}

	if err := p.Props.decode(r, PropCtxPublish); err != nil {
		return err
	}

	// An empty topic name is only allowed when a topic alias stands in
	// for it. MQTT v5.0 spec: Section 3.3.2.1
	if p.Topic == "" && !p.Props.Has(PropTopicAlias) {
		return ErrTopicNameEmpty
	}

	// Whatever remains in the window is the payload.
	p.Payload, err = r.ReadBytes(r.Remaining())
	if err != nil {
		return err
	}
	if len(p.Payload) == 0 {
		p.Payload = nil
	}
	return nil
}

// Validate validates the packet contents.
func (p *PublishPacket) Validate() error {
	if !p.QoS.Valid() {
		return ErrInvalidQoS
	}
	if p.Topic == "" && !p.Props.Has(PropTopicAlias) {
		return ErrTopicNameEmpty
	}
	if err := validateString(p.Topic); err != nil {
		return err
	}
	// DUP must be 0 for QoS 0
	if p.QoS == QoSAtMostOnce && p.DUP {
		return ErrInvalidFlags
	}
	if p.QoS > QoSAtMostOnce && p.ID == 0 {
		return ErrPacketIDRequired
	}
	if p.QoS == QoSAtMostOnce && p.ID != 0 {
		return ErrProtocolViolation
	}
	return p.Props.validate()
}
