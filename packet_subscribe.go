package mqttwire

import "errors"

// ErrInvalidSubscriptionID indicates a subscription identifier outside the
// range 1..268,435,455.
var ErrInvalidSubscriptionID = errors.New("invalid subscription identifier")

// Subscription represents a topic filter with subscription options.
// MQTT v5.0 spec: Section 3.8.3.1
type Subscription struct {
	TopicFilter     string
	QoS             QoS
	NoLocal         bool
	RetainAsPublish bool
	RetainHandling  byte
}

// subscription option bits.
const (
	subOptQoSMask         = 0x03
	subOptNoLocal         = 0x04
	subOptRetainAsPublish = 0x08
	subOptRetainHandling  = 0x30
	subOptReserved        = 0xC0
)

func (s *Subscription) options() byte {
	opts := byte(s.QoS) & subOptQoSMask
	if s.NoLocal {
		opts |= subOptNoLocal
	}
	if s.RetainAsPublish {
		opts |= subOptRetainAsPublish
	}
	opts |= (s.RetainHandling & 0x03) << 4
	return opts
}

func (s *Subscription) setOptions(opts byte) error {
	if opts&subOptReserved != 0 {
		return ErrProtocolViolation
	}
	s.QoS = QoS(opts & subOptQoSMask)
	if !s.QoS.Valid() {
		return ErrInvalidQoS
	}
	s.NoLocal = opts&subOptNoLocal != 0
	s.RetainAsPublish = opts&subOptRetainAsPublish != 0
	s.RetainHandling = (opts & subOptRetainHandling) >> 4
	if s.RetainHandling > 2 {
		return ErrProtocolViolation
	}
	return nil
}

// SubscribePacket represents an MQTT SUBSCRIBE packet.
// MQTT v5.0 spec: Section 3.8
type SubscribePacket struct {
	ID            uint16
	Props         Properties
	Subscriptions []Subscription
}

// Type returns the packet type.
func (p *SubscribePacket) Type() PacketType { return PacketSUBSCRIBE }

// Properties returns a pointer to the packet's properties.
func (p *SubscribePacket) Properties() *Properties { return &p.Props }

// PacketID returns the packet identifier.
func (p *SubscribePacket) PacketID() uint16 { return p.ID }

// SetPacketID sets the packet identifier.
func (p *SubscribePacket) SetPacketID(id uint16) { p.ID = id }

func (p *SubscribePacket) flags() byte { return 0x02 }

func (p *SubscribePacket) size() int {
	n := 2 + p.Props.encodedSize()
	for i := range p.Subscriptions {
		n += stringSize(p.Subscriptions[i].TopicFilter) + 1
	}
	return n
}

func (p *SubscribePacket) encode(w *Writer) {
	w.WriteUint16(p.ID)
	p.Props.encode(w)
	for i := range p.Subscriptions {
		writeString(w, p.Subscriptions[i].TopicFilter)
		w.WriteByte(p.Subscriptions[i].options())
	}
}

func (p *SubscribePacket) decode(r *Reader, header FixedHeader) error {
	var err error
	p.ID, err = r.ReadUint16()
	if err != nil {
		return err
	}
	if p.ID == 0 {
		return ErrInvalidPacketID
	}

	if err := p.Props.decode(r, PropCtxSubscribe); err != nil {
		return err
	}
	if p.Props.Has(PropSubscriptionIdentifier) {
		id := p.Props.GetUint32(PropSubscriptionIdentifier)
		if id == 0 || id > maxVarInt {
			return ErrInvalidSubscriptionID
		}
	}

	// Payload: at least one (topic filter, options) pair.
	for r.Remaining() > 0 {
		var sub Subscription
		sub.TopicFilter, err = readString(r)
		if err != nil {
			return err
		}
		if sub.TopicFilter == "" {
			return ErrProtocolViolation
		}

		opts, err := r.ReadByte()
		if err != nil {
			return err
		}
		if err := sub.setOptions(opts); err != nil {
			return err
		}

		p.Subscriptions = append(p.Subscriptions, sub)
	}

	if len(p.Subscriptions) == 0 {
		return ErrEmptyPayload
	}
	return nil
}

// Validate validates the packet contents.
func (p *SubscribePacket) Validate() error {
	if p.ID == 0 {
		return ErrInvalidPacketID
	}
	if len(p.Subscriptions) == 0 {
		return ErrEmptyPayload
	}
	for i := range p.Subscriptions {
		sub := &p.Subscriptions[i]
		if sub.TopicFilter == "" {
			return ErrProtocolViolation
		}
		if err := validateString(sub.TopicFilter); err != nil {
			return err
		}
		if !sub.QoS.Valid() {
			return ErrInvalidQoS
		}
		if sub.RetainHandling > 2 {
			return ErrProtocolViolation
		}
	}
	return p.Props.validate()
}
