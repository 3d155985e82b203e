//nolint:dupl // MQTT v5.0 requires separate packet types with same structure
package mqttwire

// PubrecPacket represents an MQTT PUBREC packet, the first half of the
// QoS 2 handshake.
// MQTT v5.0 spec: Section 3.5
type PubrecPacket struct {
	ID         uint16
	ReasonCode ReasonCode
	Props      Properties
}

// Type returns the packet type.
func (p *PubrecPacket) Type() PacketType { return PacketPUBREC }

// Properties returns a pointer to the packet's properties.
func (p *PubrecPacket) Properties() *Properties { return &p.Props }

// PacketID returns the packet identifier.
func (p *PubrecPacket) PacketID() uint16 { return p.ID }

// SetPacketID sets the packet identifier.
func (p *PubrecPacket) SetPacketID(id uint16) { p.ID = id }

func (p *PubrecPacket) flags() byte { return 0x00 }

func (p *PubrecPacket) size() int {
	return (&ackPacket{ID: p.ID, ReasonCode: p.ReasonCode, Props: p.Props}).size()
}

func (p *PubrecPacket) encode(w *Writer) {
	(&ackPacket{ID: p.ID, ReasonCode: p.ReasonCode, Props: p.Props}).encode(w)
}

func (p *PubrecPacket) decode(r *Reader, header FixedHeader) error {
	var ack ackPacket
	err := ack.decode(r, PacketPUBREC)
	p.ID = ack.ID
	p.ReasonCode = ack.ReasonCode
	p.Props = ack.Props
	return err
}

// Validate validates the packet contents.
func (p *PubrecPacket) Validate() error {
	return (&ackPacket{ID: p.ID, ReasonCode: p.ReasonCode, Props: p.Props}).validate(PacketPUBREC)
}
