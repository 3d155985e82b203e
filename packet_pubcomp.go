//nolint:dupl // MQTT v5.0 requires separate packet types with same structure
package mqttwire

// PubcompPacket represents an MQTT PUBCOMP packet, the final step of the
// QoS 2 handshake.
// MQTT v5.0 spec: Section 3.7
type PubcompPacket struct {
	ID         uint16
	ReasonCode ReasonCode
	Props      Properties
}

// Type returns the packet type.
func (p *PubcompPacket) Type() PacketType { return PacketPUBCOMP }

// Properties returns a pointer to the packet's properties.
func (p *PubcompPacket) Properties() *Properties { return &p.Props }

// PacketID returns the packet identifier.
func (p *PubcompPacket) PacketID() uint16 { return p.ID }

// SetPacketID sets the packet identifier.
func (p *PubcompPacket) SetPacketID(id uint16) { p.ID = id }

func (p *PubcompPacket) flags() byte { return 0x00 }

func (p *PubcompPacket) size() int {
	return (&ackPacket{ID: p.ID, ReasonCode: p.ReasonCode, Props: p.Props}).size()
}

func (p *PubcompPacket) encode(w *Writer) {
	(&ackPacket{ID: p.ID, ReasonCode: p.ReasonCode, Props: p.Props}).encode(w)
}

func (p *PubcompPacket) decode(r *Reader, header FixedHeader) error {
	var ack ackPacket
	err := ack.decode(r, PacketPUBCOMP)
	p.ID = ack.ID
	p.ReasonCode = ack.ReasonCode
	p.Props = ack.Props
	return err
}

// Validate validates the packet contents.
func (p *PubcompPacket) Validate() error {
	return (&ackPacket{ID: p.ID, ReasonCode: p.ReasonCode, Props: p.Props}).validate(PacketPUBCOMP)
}
