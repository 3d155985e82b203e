package mqttwire

import "errors"

// ErrInvalidPacketID indicates a zero packet identifier where the protocol
// requires a non-zero one.
var ErrInvalidPacketID = errors.New("invalid packet identifier")

// ackPacket is the shared body of the acknowledgement packets (PUBACK,
// PUBREC, PUBREL, PUBCOMP): a packet identifier, then an optional reason
// code and optional property block. The short forms are disambiguated by
// the remaining length alone.
// MQTT v5.0 spec: Sections 3.4 - 3.7
type ackPacket struct {
	ID         uint16
	ReasonCode ReasonCode
	Props      Properties
}

func (a *ackPacket) size() int {
	// 2-byte form: identifier only, reason implied success.
	if a.ReasonCode == ReasonSuccess && a.Props.Len() == 0 {
		return 2
	}
	// 3-byte form: identifier plus reason code.
	if a.Props.Len() == 0 {
		return 3
	}
	return 3 + a.Props.encodedSize()
}

func (a *ackPacket) encode(w *Writer) {
	w.WriteUint16(a.ID)
	if a.ReasonCode == ReasonSuccess && a.Props.Len() == 0 {
		return
	}
	w.WriteByte(byte(a.ReasonCode))
	if a.Props.Len() > 0 {
		a.Props.encode(w)
	}
}

func (a *ackPacket) decode(r *Reader, packetType PacketType) error {
	var err error
	a.ID, err = r.ReadUint16()
	if err != nil {
		return err
	}
	if a.ID == 0 {
		return ErrInvalidPacketID
	}

	if r.Remaining() == 0 {
		a.ReasonCode = ReasonSuccess
		return nil
	}

	reason, err := r.ReadByte()
	if err != nil {
		return err
	}
	a.ReasonCode = ReasonCode(reason)
	if !a.ReasonCode.ValidFor(packetType) {
		return ErrInvalidReasonCode
	}

	if r.Remaining() == 0 {
		return nil
	}
	return a.Props.decode(r, PropCtxPubAck)
}

func (a *ackPacket) validate(packetType PacketType) error {
	if a.ID == 0 {
		return ErrInvalidPacketID
	}
	if !a.ReasonCode.ValidFor(packetType) {
		return ErrInvalidReasonCode
	}
	return a.Props.validate()
}
