package mqttwire

import "errors"

// Decode errors form a closed set: every way a packet can be malformed maps
// to exactly one of these sentinels. A failed decode never exposes partial
// state and never reads outside the supplied buffer.
var (
	// ErrInsufficientData indicates the buffer is shorter than a field
	// requires. For stream readers this means "wait for more bytes".
	ErrInsufficientData = errors.New("insufficient data in buffer")

	// ErrTrailingData indicates unconsumed bytes remain after a packet's
	// declared remaining length was fully decoded.
	ErrTrailingData = errors.New("trailing data after packet body")

	// ErrMalformedVarInt indicates a variable byte integer with too many
	// continuation bytes, an out-of-range value, or a non-minimal encoding.
	ErrMalformedVarInt = errors.New("malformed variable byte integer")

	// ErrInvalidUTF8 indicates a string field with malformed UTF-8 content.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 string")

	// ErrUnknownPacketType indicates an unrecognized packet type tag.
	ErrUnknownPacketType = errors.New("unknown packet type")

	// ErrInvalidFlags indicates fixed header or connect flags that violate
	// the pattern required for the packet type.
	ErrInvalidFlags = errors.New("invalid packet flags")

	// ErrUnsupportedProtocol indicates a CONNECT protocol name other than "MQTT".
	ErrUnsupportedProtocol = errors.New("unsupported protocol name")

	// ErrUnsupportedProtocolVersion indicates a CONNECT protocol level other than 5.
	ErrUnsupportedProtocolVersion = errors.New("unsupported protocol version")

	// ErrEmptyPayload indicates a SUBSCRIBE or UNSUBSCRIBE packet with no
	// topic filter entries.
	ErrEmptyPayload = errors.New("empty packet payload")

	// ErrInvalidQoS indicates the reserved QoS bit pattern 3.
	ErrInvalidQoS = errors.New("invalid QoS level")

	// ErrDuplicateProperty indicates a non-repeatable property identifier
	// appearing twice in one property block.
	ErrDuplicateProperty = errors.New("duplicate property not allowed")

	// ErrUnknownProperty indicates an unrecognized property identifier.
	ErrUnknownProperty = errors.New("unknown property identifier")

	// ErrProtocolViolation indicates a field value the protocol forbids
	// (reserved bits set, known property in the wrong packet type, and so on).
	ErrProtocolViolation = errors.New("protocol violation")
)
