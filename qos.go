package mqttwire

// QoS is a Quality of Service level.
// MQTT v5.0 spec: Section 4.3
type QoS byte

const (
	// QoSAtMostOnce delivers the message at most once (fire and forget).
	QoSAtMostOnce QoS = 0
	// QoSAtLeastOnce delivers the message at least once (acknowledged).
	QoSAtLeastOnce QoS = 1
	// QoSExactlyOnce delivers the message exactly once (assured).
	QoSExactlyOnce QoS = 2
)

// Valid returns true if q is one of the three defined levels. The bit
// pattern 3 is reserved and must be rejected on decode.
func (q QoS) Valid() bool {
	return q <= QoSExactlyOnce
}

// String returns the string representation of the QoS level.
func (q QoS) String() string {
	switch q {
	case QoSAtMostOnce:
		return "at-most-once"
	case QoSAtLeastOnce:
		return "at-least-once"
	case QoSExactlyOnce:
		return "exactly-once"
	default:
		return "invalid"
	}
}
