package mqttwire

// PacketType represents an MQTT control packet type.
type PacketType byte

// MQTT control packet types as defined in the specification.
const (
	PacketCONNECT     PacketType = 1
	PacketCONNACK     PacketType = 2
	PacketPUBLISH     PacketType = 3
	PacketPUBACK      PacketType = 4
	PacketPUBREC      PacketType = 5
	PacketPUBREL      PacketType = 6
	PacketPUBCOMP     PacketType = 7
	PacketSUBSCRIBE   PacketType = 8
	PacketSUBACK      PacketType = 9
	PacketUNSUBSCRIBE PacketType = 10
	PacketUNSUBACK    PacketType = 11
	PacketPINGREQ     PacketType = 12
	PacketPINGRESP    PacketType = 13
	PacketDISCONNECT  PacketType = 14
	PacketAUTH        PacketType = 15
)

// String returns the string representation of the packet type.
func (p PacketType) String() string {
	switch p {
	case PacketCONNECT:
		return "CONNECT"
	case PacketCONNACK:
		return "CONNACK"
	case PacketPUBLISH:
		return "PUBLISH"
	case PacketPUBACK:
		return "PUBACK"
	case PacketPUBREC:
		return "PUBREC"
	case PacketPUBREL:
		return "PUBREL"
	case PacketPUBCOMP:
		return "PUBCOMP"
	case PacketSUBSCRIBE:
		return "SUBSCRIBE"
	case PacketSUBACK:
		return "SUBACK"
	case PacketUNSUBSCRIBE:
		return "UNSUBSCRIBE"
	case PacketUNSUBACK:
		return "UNSUBACK"
	case PacketPINGREQ:
		return "PINGREQ"
	case PacketPINGRESP:
		return "PINGRESP"
	case PacketDISCONNECT:
		return "DISCONNECT"
	case PacketAUTH:
		return "AUTH"
	default:
		return "UNKNOWN"
	}
}

// Valid returns true if the packet type is valid.
func (p PacketType) Valid() bool {
	return p >= PacketCONNECT && p <= PacketAUTH
}

// FixedHeader represents the fixed header of an MQTT control packet.
// MQTT v5.0 spec: Section 2.1.1
type FixedHeader struct {
	PacketType      PacketType
	Flags           byte
	RemainingLength uint32
}

// Encode appends the fixed header to the writer.
func (h *FixedHeader) Encode(w *Writer) error {
	if !h.PacketType.Valid() {
		return ErrUnknownPacketType
	}
	// First byte: packet type (4 bits) | flags (4 bits)
	w.WriteByte(byte(h.PacketType)<<4 | (h.Flags & 0x0F))
	writeVarInt(w, h.RemainingLength)
	return nil
}

// Decode reads the fixed header from the cursor. The cursor is left
// unchanged on failure.
func (h *FixedHeader) Decode(r *Reader) error {
	start := r.pos
	b, err := r.ReadByte()
	if err != nil {
		return err
	}

	h.PacketType = PacketType(b >> 4)
	h.Flags = b & 0x0F

	if !h.PacketType.Valid() {
		r.pos = start
		return ErrUnknownPacketType
	}

	length, err := readVarInt(r)
	if err != nil {
		r.pos = start
		return err
	}

	h.RemainingLength = length
	return nil
}

// Size returns the encoded size of the fixed header in bytes.
func (h *FixedHeader) Size() int {
	return 1 + varIntSize(h.RemainingLength)
}

// ValidateFlags validates the flags for the packet type. Non-PUBLISH types
// carry a fixed reserved pattern; a mismatch is a hard decode failure.
func (h *FixedHeader) ValidateFlags() error {
	switch h.PacketType {
	case PacketPUBLISH:
		// PUBLISH has variable flags: DUP (bit 3), QoS (bits 2-1), RETAIN (bit 0)
		if !h.QoS().Valid() {
			return ErrInvalidQoS
		}
		return nil

	case PacketPUBREL, PacketSUBSCRIBE, PacketUNSUBSCRIBE:
		if h.Flags != 0x02 {
			return ErrInvalidFlags
		}
		return nil

	case PacketCONNECT, PacketCONNACK, PacketPUBACK, PacketPUBREC,
		PacketPUBCOMP, PacketSUBACK, PacketUNSUBACK, PacketPINGREQ,
		PacketPINGRESP, PacketDISCONNECT, PacketAUTH:
		if h.Flags != 0x00 {
			return ErrInvalidFlags
		}
		return nil

	default:
		return ErrUnknownPacketType
	}
}

// PUBLISH flag accessors

// DUP returns the DUP flag from PUBLISH packet flags.
func (h *FixedHeader) DUP() bool {
	return h.Flags&0x08 != 0
}

// QoS returns the QoS level from PUBLISH packet flags.
func (h *FixedHeader) QoS() QoS {
	return QoS((h.Flags >> 1) & 0x03)
}

// Retain returns the RETAIN flag from PUBLISH packet flags.
func (h *FixedHeader) Retain() bool {
	return h.Flags&0x01 != 0
}
