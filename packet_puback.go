//nolint:dupl // MQTT v5.0 requires separate packet types with same structure
package mqttwire

// PubackPacket represents an MQTT PUBACK packet, the QoS 1 acknowledgement.
// MQTT v5.0 spec: Section 3.4
type PubackPacket struct {
	ID         uint16
	ReasonCode ReasonCode
	Props      Properties
}

// Type returns the packet type.
func (p *PubackPacket) Type() PacketType { return PacketPUBACK }

// Properties returns a pointer to the packet's properties.
func (p *PubackPacket) Properties() *Properties { return &p.Props }

// PacketID returns the packet identifier.
func (p *PubackPacket) PacketID() uint16 { return p.ID }

// SetPacketID sets the packet identifier.
func (p *PubackPacket) SetPacketID(id uint16) { p.ID = id }

func (p *PubackPacket) flags() byte { return 0x00 }

func (p *PubackPacket) size() int {
	return (&ackPacket{ID: p.ID, ReasonCode: p.ReasonCode, Props: p.Props}).size()
}

func (p *PubackPacket) encode(w *Writer) {
	(&ackPacket{ID: p.ID, ReasonCode: p.ReasonCode, Props: p.Props}).encode(w)
}

func (p *PubackPacket) decode(r *Reader, header FixedHeader) error {
	var ack ackPacket
	err := ack.decode(r, PacketPUBACK)
	p.ID = ack.ID
	p.ReasonCode = ack.ReasonCode
	p.Props = ack.Props
	return err
}

// Validate validates the packet contents.
func (p *PubackPacket) Validate() error {
	return (&ackPacket{ID: p.ID, ReasonCode: p.ReasonCode, Props: p.Props}).validate(PacketPUBACK)
}
