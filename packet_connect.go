package mqttwire

// CONNECT packet constants.
const (
	protocolName    = "MQTT"
	protocolVersion = 5
)

// Connect flag bit positions.
const (
	connectFlagCleanStart   = 0x02
	connectFlagWillFlag     = 0x04
	connectFlagWillRetain   = 0x20
	connectFlagPasswordFlag = 0x40
	connectFlagUsernameFlag = 0x80
)

// ConnectPacket represents an MQTT CONNECT packet.
// MQTT v5.0 spec: Section 3.1
type ConnectPacket struct {
	// ClientID is the client identifier.
	ClientID string

	// CleanStart indicates whether the session should start clean.
	CleanStart bool

	// KeepAlive is the keep alive interval in seconds.
	KeepAlive uint16

	// Props contains the CONNECT properties.
	Props Properties

	// Username for authentication.
	Username string

	// Password for authentication.
	Password []byte

	// Will message configuration.
	WillFlag    bool
	WillRetain  bool
	WillQoS     QoS
	WillTopic   string
	WillPayload []byte
	WillProps   Properties
}

// Type returns the packet type.
func (p *ConnectPacket) Type() PacketType {
	return PacketCONNECT
}

// Properties returns a pointer to the packet's properties.
func (p *ConnectPacket) Properties() *Properties {
	return &p.Props
}

func (p *ConnectPacket) flags() byte {
	return 0x00
}

// connectFlags returns the connect flags byte.
func (p *ConnectPacket) connectFlags() byte {
	var flags byte

	if p.CleanStart {
		flags |= connectFlagCleanStart
	}

	if p.WillFlag {
		flags |= connectFlagWillFlag
		flags |= byte(p.WillQoS&0x03) << 3
		if p.WillRetain {
			flags |= connectFlagWillRetain
		}
	}

	if len(p.Password) > 0 {
		flags |= connectFlagPasswordFlag
	}

	if p.Username != "" {
		flags |= connectFlagUsernameFlag
	}

	return flags
}

// setConnectFlags parses the connect flags byte, enforcing the cross-field
// invariants between the will flag and the will QoS/retain bits.
func (p *ConnectPacket) setConnectFlags(flags byte) error {
	// Reserved bit must be 0
	if flags&0x01 != 0 {
		return ErrInvalidFlags
	}

	p.CleanStart = flags&connectFlagCleanStart != 0
	p.WillFlag = flags&connectFlagWillFlag != 0
	p.WillQoS = QoS((flags >> 3) & 0x03)
	p.WillRetain = flags&connectFlagWillRetain != 0

	if !p.WillQoS.Valid() {
		return ErrInvalidQoS
	}

	// Will QoS and Will Retain must be 0 if Will Flag is 0
	if !p.WillFlag && (p.WillQoS != 0 || p.WillRetain) {
		return ErrInvalidFlags
	}

	return nil
}

func (p *ConnectPacket) size() int {
	n := stringSize(protocolName) + 1 + 1 + 2 // name, version, flags, keep alive
	n += p.Props.encodedSize()
	n += stringSize(p.ClientID)

	if p.WillFlag {
		n += p.WillProps.encodedSize()
		n += stringSize(p.WillTopic)
		n += binarySize(p.WillPayload)
	}
	if p.Username != "" {
		n += stringSize(p.Username)
	}
	if len(p.Password) > 0 {
		n += binarySize(p.Password)
	}
	return n
}

func (p *ConnectPacket) encode(w *Writer) {
	writeString(w, protocolName)
	w.WriteByte(protocolVersion)
	w.WriteByte(p.connectFlags())
	w.WriteUint16(p.KeepAlive)
	p.Props.encode(w)

	// Payload: fields appear strictly in flag order.
	writeString(w, p.ClientID)

	if p.WillFlag {
		p.WillProps.encode(w)
		writeString(w, p.WillTopic)
		writeBinary(w, p.WillPayload)
	}
	if p.Username != "" {
		writeString(w, p.Username)
	}
	if len(p.Password) > 0 {
		writeBinary(w, p.Password)
	}
}

func (p *ConnectPacket) decode(r *Reader, header FixedHeader) error {
	protoName, err := readString(r)
	if err != nil {
		return err
	}
	if protoName != protocolName {
		return ErrUnsupportedProtocol
	}

	version, err := r.ReadByte()
	if err != nil {
		return err
	}
	if version != protocolVersion {
		return ErrUnsupportedProtocolVersion
	}

	connectFlags, err := r.ReadByte()
	if err != nil {
		return err
	}
	if err := p.setConnectFlags(connectFlags); err != nil {
		return err
	}
	usernameFlag := connectFlags&connectFlagUsernameFlag != 0
	passwordFlag := connectFlags&connectFlagPasswordFlag != 0

	p.KeepAlive, err = r.ReadUint16()
	if err != nil {
		return err
	}

	if err := p.Props.decode(r, PropCtxConnect); err != nil {
		return err
	}

	// Payload: fields appear strictly in flag order.
	p.ClientID, err = readString(r)
	if err != nil {
		return err
	}

	if p.WillFlag {
		if err := p.WillProps.decode(r, PropCtxWill); err != nil {
			return err
		}
		p.WillTopic, err = readString(r)
		if err != nil {
			return err
		}
		p.WillPayload, err = readBinary(r)
		if err != nil {
			return err
		}
	}

	if usernameFlag {
		p.Username, err = readString(r)
		if err != nil {
			return err
		}
	}
	if passwordFlag {
		p.Password, err = readBinary(r)
		if err != nil {
			return err
		}
	}

	return nil
}

// Validate validates the packet contents.
func (p *ConnectPacket) Validate() error {
	if err := validateString(p.ClientID); err != nil {
		return err
	}
	if err := validateString(p.Username); err != nil {
		return err
	}
	if len(p.Password) > maxUint16 {
		return ErrBinaryTooLong
	}

	if !p.WillQoS.Valid() {
		return ErrInvalidQoS
	}
	if !p.WillFlag && (p.WillRetain || p.WillQoS != 0) {
		return ErrInvalidFlags
	}
	if p.WillFlag {
		if err := validateString(p.WillTopic); err != nil {
			return err
		}
		if len(p.WillPayload) > maxUint16 {
			return ErrBinaryTooLong
		}
		if err := p.WillProps.validate(); err != nil {
			return err
		}
	}

	return p.Props.validate()
}
