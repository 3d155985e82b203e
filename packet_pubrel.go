//nolint:dupl // MQTT v5.0 requires separate packet types with same structure
package mqttwire

// PubrelPacket represents an MQTT PUBREL packet. Unlike the other
// acknowledgements its fixed header flags must be 0x02.
// MQTT v5.0 spec: Section 3.6
type PubrelPacket struct {
	ID         uint16
	ReasonCode ReasonCode
	Props      Properties
}

// Type returns the packet type.
func (p *PubrelPacket) Type() PacketType { return PacketPUBREL }

// Properties returns a pointer to the packet's properties.
func (p *PubrelPacket) Properties() *Properties { return &p.Props }

// PacketID returns the packet identifier.
func (p *PubrelPacket) PacketID() uint16 { return p.ID }

// SetPacketID sets the packet identifier.
func (p *PubrelPacket) SetPacketID(id uint16) { p.ID = id }

func (p *PubrelPacket) flags() byte { return 0x02 }

func (p *PubrelPacket) size() int {
	return (&ackPacket{ID: p.ID, ReasonCode: p.ReasonCode, Props: p.Props}).size()
}

func (p *PubrelPacket) encode(w *Writer) {
	(&ackPacket{ID: p.ID, ReasonCode: p.ReasonCode, Props: p.Props}).encode(w)
}

func (p *PubrelPacket) decode(r *Reader, header FixedHeader) error {
	var ack ackPacket
	err := ack.decode(r, PacketPUBREL)
	p.ID = ack.ID
	p.ReasonCode = ack.ReasonCode
	p.Props = ack.Props
	return err
}

// Validate validates the packet contents.
func (p *PubrelPacket) Validate() error {
	return (&ackPacket{ID: p.ID, ReasonCode: p.ReasonCode, Props: p.Props}).validate(PacketPUBREL)
}
