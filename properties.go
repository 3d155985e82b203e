package mqttwire

// PropertyID represents an MQTT v5.0 property identifier.
type PropertyID byte

// Property identifiers as defined in MQTT v5.0 specification.
const (
	PropPayloadFormatIndicator   PropertyID = 0x01
	PropMessageExpiryInterval    PropertyID = 0x02
	PropContentType              PropertyID = 0x03
	PropResponseTopic            PropertyID = 0x08
	PropCorrelationData          PropertyID = 0x09
	PropSubscriptionIdentifier   PropertyID = 0x0B
	PropSessionExpiryInterval    PropertyID = 0x11
	PropAssignedClientIdentifier PropertyID = 0x12
	PropServerKeepAlive          PropertyID = 0x13
	PropAuthenticationMethod     PropertyID = 0x15
	PropAuthenticationData       PropertyID = 0x16
	PropRequestProblemInfo       PropertyID = 0x17
	PropWillDelayInterval        PropertyID = 0x18
	PropRequestResponseInfo      PropertyID = 0x19
	PropResponseInformation      PropertyID = 0x1A
	PropServerReference          PropertyID = 0x1C
	PropReasonString             PropertyID = 0x1F
	PropReceiveMaximum           PropertyID = 0x21
	PropTopicAliasMaximum        PropertyID = 0x22
	PropTopicAlias               PropertyID = 0x23
	PropMaximumQoS               PropertyID = 0x24
	PropRetainAvailable          PropertyID = 0x25
	PropUserProperty             PropertyID = 0x26
	PropMaximumPacketSize        PropertyID = 0x27
	PropWildcardSubAvailable     PropertyID = 0x28
	PropSubscriptionIDAvailable  PropertyID = 0x29
	PropSharedSubAvailable       PropertyID = 0x2A
)

// PropertyType represents the data type of a property value.
type PropertyType byte

const (
	PropTypeByte        PropertyType = 0 // Single byte
	PropTypeTwoByteInt  PropertyType = 1 // Two byte integer (uint16)
	PropTypeFourByteInt PropertyType = 2 // Four byte integer (uint32)
	PropTypeVarInt      PropertyType = 3 // Variable byte integer
	PropTypeString      PropertyType = 4 // UTF-8 encoded string
	PropTypeBinary      PropertyType = 5 // Binary data
	PropTypeStringPair  PropertyType = 6 // UTF-8 string pair
)

// propertyTypeMap maps property IDs to their data types. An identifier not
// in this table is unknown and rejected on decode.
var propertyTypeMap = map[PropertyID]PropertyType{
	PropPayloadFormatIndicator:   PropTypeByte,
	PropMessageExpiryInterval:    PropTypeFourByteInt,
	PropContentType:              PropTypeString,
	PropResponseTopic:            PropTypeString,
	PropCorrelationData:          PropTypeBinary,
	PropSubscriptionIdentifier:   PropTypeVarInt,
	PropSessionExpiryInterval:    PropTypeFourByteInt,
	PropAssignedClientIdentifier: PropTypeString,
	PropServerKeepAlive:          PropTypeTwoByteInt,
	PropAuthenticationMethod:     PropTypeString,
	PropAuthenticationData:       PropTypeBinary,
	PropRequestProblemInfo:       PropTypeByte,
	PropWillDelayInterval:        PropTypeFourByteInt,
	PropRequestResponseInfo:      PropTypeByte,
	PropResponseInformation:      PropTypeString,
	PropServerReference:          PropTypeString,
	PropReasonString:             PropTypeString,
	PropReceiveMaximum:           PropTypeTwoByteInt,
	PropTopicAliasMaximum:        PropTypeTwoByteInt,
	PropTopicAlias:               PropTypeTwoByteInt,
	PropMaximumQoS:               PropTypeByte,
	PropRetainAvailable:          PropTypeByte,
	PropUserProperty:             PropTypeStringPair,
	PropMaximumPacketSize:        PropTypeFourByteInt,
	PropWildcardSubAvailable:     PropTypeByte,
	PropSubscriptionIDAvailable:  PropTypeByte,
	PropSharedSubAvailable:       PropTypeByte,
}

// Type returns the data type for this property ID.
func (p PropertyID) Type() (PropertyType, bool) {
	t, ok := propertyTypeMap[p]
	return t, ok
}

// repeatableProperties may appear more than once in a block. Every other
// identifier appearing twice is a decode failure.
var repeatableProperties = map[PropertyID]bool{
	PropUserProperty:           true,
	PropSubscriptionIdentifier: true,
}

// PropertyContext selects the set of property identifiers legal for the
// packet section being decoded.
type PropertyContext byte

const (
	PropCtxConnect PropertyContext = iota
	PropCtxConnack
	PropCtxPublish
	PropCtxWill
	PropCtxPubAck // PUBACK, PUBREC, PUBREL, PUBCOMP
	PropCtxSubscribe
	PropCtxSuback
	PropCtxUnsubscribe
	PropCtxUnsuback
	PropCtxDisconnect
	PropCtxAuth
)

// contextProperties lists the identifiers each packet section may carry.
// MQTT v5.0 spec: Section 2.2.2.2, Table 2-4
var contextProperties = map[PropertyContext]map[PropertyID]bool{
	PropCtxConnect: {
		PropSessionExpiryInterval: true, PropReceiveMaximum: true,
		PropMaximumPacketSize: true, PropTopicAliasMaximum: true,
		PropRequestResponseInfo: true, PropRequestProblemInfo: true,
		PropUserProperty: true, PropAuthenticationMethod: true,
		PropAuthenticationData: true,
	},
	PropCtxConnack: {
		PropSessionExpiryInterval: true, PropReceiveMaximum: true,
		PropMaximumQoS: true, PropRetainAvailable: true,
		PropMaximumPacketSize: true, PropAssignedClientIdentifier: true,
		PropTopicAliasMaximum: true, PropReasonString: true,
		PropUserProperty: true, PropWildcardSubAvailable: true,
		PropSubscriptionIDAvailable: true, PropSharedSubAvailable: true,
		PropServerKeepAlive: true, PropResponseInformation: true,
		PropServerReference: true, PropAuthenticationMethod: true,
		PropAuthenticationData: true,
	},
	PropCtxPublish: {
		PropPayloadFormatIndicator: true, PropMessageExpiryInterval: true,
		PropTopicAlias: true, PropResponseTopic: true,
		PropCorrelationData: true, PropUserProperty: true,
		PropSubscriptionIdentifier: true, PropContentType: true,
	},
	PropCtxWill: {
		PropWillDelayInterval: true, PropPayloadFormatIndicator: true,
		PropMessageExpiryInterval: true, PropContentType: true,
		PropResponseTopic: true, PropCorrelationData: true,
		PropUserProperty: true,
	},
	PropCtxPubAck: {
		PropReasonString: true, PropUserProperty: true,
	},
	PropCtxSubscribe: {
		PropSubscriptionIdentifier: true, PropUserProperty: true,
	},
	PropCtxSuback: {
		PropReasonString: true, PropUserProperty: true,
	},
	PropCtxUnsubscribe: {
		PropUserProperty: true,
	},
	PropCtxUnsuback: {
		PropReasonString: true, PropUserProperty: true,
	},
	PropCtxDisconnect: {
		PropSessionExpiryInterval: true, PropReasonString: true,
		PropUserProperty: true, PropServerReference: true,
	},
	PropCtxAuth: {
		PropAuthenticationMethod: true, PropAuthenticationData: true,
		PropReasonString: true, PropUserProperty: true,
	},
}

// Properties represents an ordered collection of MQTT v5.0 properties.
// The zero value is an empty block.
type Properties struct {
	props []property
}

type property struct {
	id    PropertyID
	value any
}

// Len returns the number of properties in the collection.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.props)
}

// Has returns true if the property with the given ID exists.
func (p *Properties) Has(id PropertyID) bool {
	if p == nil {
		return false
	}
	for i := range p.props {
		if p.props[i].id == id {
			return true
		}
	}
	return false
}

// Get returns the value of the property with the given ID, or nil.
func (p *Properties) Get(id PropertyID) any {
	if p == nil {
		return nil
	}
	for i := range p.props {
		if p.props[i].id == id {
			return p.props[i].value
		}
	}
	return nil
}

// Set replaces any existing property with the given ID.
func (p *Properties) Set(id PropertyID, value any) {
	for i := range p.props {
		if p.props[i].id == id {
			p.props[i].value = value
			return
		}
	}
	p.props = append(p.props, property{id: id, value: value})
}

// Add appends a property, allowing repeatable identifiers to occur multiple
// times.
func (p *Properties) Add(id PropertyID, value any) {
	p.props = append(p.props, property{id: id, value: value})
}

// Delete removes all properties with the given ID.
func (p *Properties) Delete(id PropertyID) {
	out := p.props[:0]
	for i := range p.props {
		if p.props[i].id != id {
			out = append(out, p.props[i])
		}
	}
	p.props = out
}

// GetByte returns the byte value of the property, or 0.
func (p *Properties) GetByte(id PropertyID) byte {
	v, _ := p.Get(id).(byte)
	return v
}

// GetUint16 returns the uint16 value of the property, or 0.
func (p *Properties) GetUint16(id PropertyID) uint16 {
	v, _ := p.Get(id).(uint16)
	return v
}

// GetUint32 returns the uint32 value of the property, or 0.
func (p *Properties) GetUint32(id PropertyID) uint32 {
	v, _ := p.Get(id).(uint32)
	return v
}

// GetString returns the string value of the property, or "".
func (p *Properties) GetString(id PropertyID) string {
	v, _ := p.Get(id).(string)
	return v
}

// GetBinary returns the binary value of the property, or nil.
func (p *Properties) GetBinary(id PropertyID) []byte {
	v, _ := p.Get(id).([]byte)
	return v
}

// GetStringPair returns the string pair value of the property.
func (p *Properties) GetStringPair(id PropertyID) StringPair {
	v, _ := p.Get(id).(StringPair)
	return v
}

// GetAllStringPairs returns all string pair values with the given ID.
func (p *Properties) GetAllStringPairs(id PropertyID) []StringPair {
	if p == nil {
		return nil
	}
	var out []StringPair
	for i := range p.props {
		if p.props[i].id == id {
			if v, ok := p.props[i].value.(StringPair); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// GetAllVarInts returns all variable-integer values with the given ID.
func (p *Properties) GetAllVarInts(id PropertyID) []uint32 {
	if p == nil {
		return nil
	}
	var out []uint32
	for i := range p.props {
		if p.props[i].id == id {
			if v, ok := p.props[i].value.(uint32); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// validate checks every stored value against its identifier's wire type.
// Called from Packet.Validate so the write side stays infallible.
func (p *Properties) validate() error {
	if p == nil {
		return nil
	}
	seen := make(map[PropertyID]bool, len(p.props))
	for i := range p.props {
		prop := &p.props[i]
		propType, ok := propertyTypeMap[prop.id]
		if !ok {
			return ErrUnknownProperty
		}
		if seen[prop.id] && !repeatableProperties[prop.id] {
			return ErrDuplicateProperty
		}
		seen[prop.id] = true

		switch propType {
		case PropTypeByte:
			if _, ok := prop.value.(byte); !ok {
				return ErrProtocolViolation
			}
		case PropTypeTwoByteInt:
			if _, ok := prop.value.(uint16); !ok {
				return ErrProtocolViolation
			}
		case PropTypeFourByteInt:
			if _, ok := prop.value.(uint32); !ok {
				return ErrProtocolViolation
			}
		case PropTypeVarInt:
			v, ok := prop.value.(uint32)
			if !ok {
				return ErrProtocolViolation
			}
			if v > maxVarInt {
				return ErrVarIntTooLarge
			}
		case PropTypeString:
			s, ok := prop.value.(string)
			if !ok {
				return ErrProtocolViolation
			}
			if err := validateString(s); err != nil {
				return err
			}
		case PropTypeBinary:
			b, ok := prop.value.([]byte)
			if !ok {
				return ErrProtocolViolation
			}
			if len(b) > maxUint16 {
				return ErrBinaryTooLong
			}
		case PropTypeStringPair:
			sp, ok := prop.value.(StringPair)
			if !ok {
				return ErrProtocolViolation
			}
			if err := validateString(sp.Key); err != nil {
				return err
			}
			if err := validateString(sp.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// size returns the encoded size of the block content, excluding the leading
// length varint.
func (p *Properties) size() int {
	if p == nil {
		return 0
	}
	size := 0
	for i := range p.props {
		prop := &p.props[i]
		size++ // property ID

		switch propertyTypeMap[prop.id] {
		case PropTypeByte:
			size++
		case PropTypeTwoByteInt:
			size += 2
		case PropTypeFourByteInt:
			size += 4
		case PropTypeVarInt:
			v, _ := prop.value.(uint32)
			size += varIntSize(v)
		case PropTypeString:
			s, _ := prop.value.(string)
			size += stringSize(s)
		case PropTypeBinary:
			b, _ := prop.value.([]byte)
			size += binarySize(b)
		case PropTypeStringPair:
			sp, _ := prop.value.(StringPair)
			size += stringSize(sp.Key) + stringSize(sp.Value)
		}
	}
	return size
}

// encodedSize returns the full encoded size including the length varint.
func (p *Properties) encodedSize() int {
	n := p.size()
	return varIntSize(uint32(n)) + n
}

// encode appends the length-prefixed property block.
func (p *Properties) encode(w *Writer) {
	if p == nil || len(p.props) == 0 {
		writeVarInt(w, 0)
		return
	}

	writeVarInt(w, uint32(p.size()))

	for i := range p.props {
		prop := &p.props[i]
		w.WriteByte(byte(prop.id))

		switch propertyTypeMap[prop.id] {
		case PropTypeByte:
			b, _ := prop.value.(byte)
			w.WriteByte(b)
		case PropTypeTwoByteInt:
			v, _ := prop.value.(uint16)
			w.WriteUint16(v)
		case PropTypeFourByteInt:
			v, _ := prop.value.(uint32)
			w.WriteUint32(v)
		case PropTypeVarInt:
			v, _ := prop.value.(uint32)
			writeVarInt(w, v)
		case PropTypeString:
			s, _ := prop.value.(string)
			writeString(w, s)
		case PropTypeBinary:
			b, _ := prop.value.([]byte)
			writeBinary(w, b)
		case PropTypeStringPair:
			sp, _ := prop.value.(StringPair)
			writeStringPair(w, sp)
		}
	}
}

// decode reads a length-prefixed property block scoped to ctx. Unknown
// identifiers, identifiers illegal for the context, and duplicated
// non-repeatable identifiers are all hard decode failures.
func (p *Properties) decode(r *Reader, ctx PropertyContext) error {
	length, err := readVarInt(r)
	if err != nil {
		return err
	}
	if length == 0 {
		return nil
	}

	block, err := r.Sub(int(length))
	if err != nil {
		return err
	}

	allowed := contextProperties[ctx]
	var seen map[PropertyID]bool

	for block.Remaining() > 0 {
		idByte, err := block.ReadByte()
		if err != nil {
			return err
		}
		id := PropertyID(idByte)

		propType, ok := propertyTypeMap[id]
		if !ok {
			return ErrUnknownProperty
		}
		if !allowed[id] {
			return ErrProtocolViolation
		}
		if !repeatableProperties[id] {
			if seen[id] {
				return ErrDuplicateProperty
			}
			if seen == nil {
				seen = make(map[PropertyID]bool, 4)
			}
			seen[id] = true
		}

		var value any
		switch propType {
		case PropTypeByte:
			b, err := block.ReadByte()
			if err != nil {
				return err
			}
			value = b
		case PropTypeTwoByteInt:
			v, err := block.ReadUint16()
			if err != nil {
				return err
			}
			value = v
		case PropTypeFourByteInt:
			v, err := block.ReadUint32()
			if err != nil {
				return err
			}
			value = v
		case PropTypeVarInt:
			v, err := readVarInt(block)
			if err != nil {
				return err
			}
			value = v
		case PropTypeString:
			s, err := readString(block)
			if err != nil {
				return err
			}
			value = s
		case PropTypeBinary:
			b, err := readBinary(block)
			if err != nil {
				return err
			}
			value = b
		case PropTypeStringPair:
			sp, err := readStringPair(block)
			if err != nil {
				return err
			}
			value = sp
		}

		p.props = append(p.props, property{id: id, value: value})
	}

	return nil
}
