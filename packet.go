package mqttwire

// Packet is the interface that all MQTT control packets implement. The set
// of implementations is closed: one per control packet type, dispatched
// exhaustively by the 4-bit type tag.
// MQTT v5.0 spec: Section 2.1
type Packet interface {
	// Type returns the packet type.
	Type() PacketType

	// Validate validates the packet contents. Encoding is refused before
	// the first byte is written if Validate fails, so the write side of
	// the codec has no runtime error conditions of its own.
	Validate() error

	// flags returns the fixed header flags nibble.
	flags() byte

	// size returns the body size in bytes, i.e. the remaining length.
	// The encoder needs it up front because the remaining length is
	// written before the body.
	size() int

	// encode appends the variable header and payload. Preconditions have
	// been checked by Validate, so encoding cannot fail.
	encode(w *Writer)

	// decode reads the variable header and payload from a cursor narrowed
	// to exactly the packet's remaining-length window.
	decode(r *Reader, header FixedHeader) error
}

// PacketWithID is implemented by packets that carry a packet identifier.
// MQTT v5.0 spec: Section 2.2.1
type PacketWithID interface {
	Packet

	// PacketID returns the packet identifier.
	PacketID() uint16

	// SetPacketID sets the packet identifier.
	SetPacketID(id uint16)
}

// PacketWithProperties is implemented by packets that carry a property block.
// MQTT v5.0 spec: Section 2.2.2
type PacketWithProperties interface {
	Packet

	// Properties returns a pointer to the packet's properties.
	Properties() *Properties
}

// newPacket returns an empty packet value for the type tag, or nil for an
// unrecognized tag.
func newPacket(t PacketType) Packet {
	switch t {
	case PacketCONNECT:
		return &ConnectPacket{}
	case PacketCONNACK:
		return &ConnackPacket{}
	case PacketPUBLISH:
		return &PublishPacket{}
	case PacketPUBACK:
		return &PubackPacket{}
	case PacketPUBREC:
		return &PubrecPacket{}
	case PacketPUBREL:
		return &PubrelPacket{}
	case PacketPUBCOMP:
		return &PubcompPacket{}
	case PacketSUBSCRIBE:
		return &SubscribePacket{}
	case PacketSUBACK:
		return &SubackPacket{}
	case PacketUNSUBSCRIBE:
		return &UnsubscribePacket{}
	case PacketUNSUBACK:
		return &UnsubackPacket{}
	case PacketPINGREQ:
		return &PingreqPacket{}
	case PacketPINGRESP:
		return &PingrespPacket{}
	case PacketDISCONNECT:
		return &DisconnectPacket{}
	case PacketAUTH:
		return &AuthPacket{}
	default:
		return nil
	}
}
