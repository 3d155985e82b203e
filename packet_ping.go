package mqttwire

// PingreqPacket represents an MQTT PINGREQ packet. It has no variable
// header and no payload; a non-zero remaining length is a decode failure.
// MQTT v5.0 spec: Section 3.12
type PingreqPacket struct{}

// Type returns the packet type.
func (p *PingreqPacket) Type() PacketType { return PacketPINGREQ }

func (p *PingreqPacket) flags() byte { return 0x00 }

func (p *PingreqPacket) size() int { return 0 }

func (p *PingreqPacket) encode(w *Writer) {}

func (p *PingreqPacket) decode(r *Reader, header FixedHeader) error {
	if r.Remaining() != 0 {
		return ErrTrailingData
	}
	return nil
}

// Validate validates the packet contents.
func (p *PingreqPacket) Validate() error { return nil }

// PingrespPacket represents an MQTT PINGRESP packet.
// MQTT v5.0 spec: Section 3.13
type PingrespPacket struct{}

// Type returns the packet type.
func (p *PingrespPacket) Type() PacketType { return PacketPINGRESP }

func (p *PingrespPacket) flags() byte { return 0x00 }

func (p *PingrespPacket) size() int { return 0 }

func (p *PingrespPacket) encode(w *Writer) {}

func (p *PingrespPacket) decode(r *Reader, header FixedHeader) error {
	if r.Remaining() != 0 {
		return ErrTrailingData
	}
	return nil
}

// Validate validates the packet contents.
func (p *PingrespPacket) Validate() error { return nil }
