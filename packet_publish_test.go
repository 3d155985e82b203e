package mqttwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishPacketType(t *testing.T) {
	p := &PublishPacket{}
	assert.Equal(t, PacketPUBLISH, p.Type())
}

func TestPublishPacketEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		packet PublishPacket
	}{
		{
			name:   "qos 0",
			packet: PublishPacket{Topic: "sensors/temp", Payload: []byte("21.5")},
		},
		{
			name:   "qos 0 empty payload",
			packet: PublishPacket{Topic: "sensors/ping"},
		},
		{
			name:   "qos 0 retained",
			packet: PublishPacket{Topic: "status", Payload: []byte("on"), Retain: true},
		},
		{
			name:   "qos 1",
			packet: PublishPacket{Topic: "a/b", Payload: []byte("x"), QoS: QoSAtLeastOnce, ID: 42},
		},
		{
			name:   "qos 2 dup",
			packet: PublishPacket{Topic: "a/b/c", Payload: []byte("y"), QoS: QoSExactlyOnce, ID: 65535, DUP: true},
		},
		{
			name:   "binary payload",
			packet: PublishPacket{Topic: "bin", Payload: []byte{0x00, 0xFF, 0xC3, 0x28}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := EncodePacket(&tt.packet)
			require.NoError(t, err)

			decoded, n, err := DecodePacket(buf)
			require.NoError(t, err)
			assert.Equal(t, len(buf), n)

			got, ok := decoded.(*PublishPacket)
			require.True(t, ok)
			assert.Equal(t, tt.packet.Topic, got.Topic)
			assert.Equal(t, tt.packet.Payload, got.Payload)
			assert.Equal(t, tt.packet.QoS, got.QoS)
			assert.Equal(t, tt.packet.Retain, got.Retain)
			assert.Equal(t, tt.packet.DUP, got.DUP)
			assert.Equal(t, tt.packet.ID, got.ID)
		})
	}
}

func TestPublishPacketWithProperties(t *testing.T) {
	p := PublishPacket{Topic: "req/1", Payload: []byte("ping")}
	p.Props.Set(PropResponseTopic, "resp/1")
	p.Props.Set(PropCorrelationData, []byte{0xDE, 0xAD})
	p.Props.Set(PropMessageExpiryInterval, uint32(60))
	p.Props.Add(PropSubscriptionIdentifier, uint32(7))

	buf, err := EncodePacket(&p)
	require.NoError(t, err)

	decoded, _, err := DecodePacket(buf)
	require.NoError(t, err)
	got := decoded.(*PublishPacket)

	assert.Equal(t, "resp/1", got.Props.GetString(PropResponseTopic))
	assert.Equal(t, []byte{0xDE, 0xAD}, got.Props.GetBinary(PropCorrelationData))
	assert.Equal(t, uint32(60), got.Props.GetUint32(PropMessageExpiryInterval))
	assert.Equal(t, []uint32{7}, got.Props.GetAllVarInts(PropSubscriptionIdentifier))
}

func TestPublishPacketDecodePayloadAliasing(t *testing.T) {
	p := PublishPacket{Topic: "t", Payload: []byte("abc")}
	buf, err := EncodePacket(&p)
	require.NoError(t, err)

	decoded, _, err := DecodePacket(buf)
	require.NoError(t, err)
	got := decoded.(*PublishPacket)

	buf[len(buf)-3] = 'z'
	assert.Equal(t, []byte("zbc"), got.Payload, "payload aliases the input buffer")
}

func TestPublishPacketDecodeZeroPacketID(t *testing.T) {
	p := PublishPacket{Topic: "t", Payload: []byte("x"), QoS: QoSAtLeastOnce, ID: 1}
	buf, err := EncodePacket(&p)
	require.NoError(t, err)

	// Packet identifier follows the 3-byte topic field in the body.
	buf[5] = 0x00
	buf[6] = 0x00

	_, _, err = DecodePacket(buf)
	assert.ErrorIs(t, err, ErrProtocolViolation)
}

func TestPublishPacketValidate(t *testing.T) {
	tests := []struct {
		name   string
		packet PublishPacket
		err    error
	}{
		{"valid qos0", PublishPacket{Topic: "t"}, nil},
		{"valid qos1", PublishPacket{Topic: "t", QoS: QoSAtLeastOnce, ID: 1}, nil},
		{"empty topic", PublishPacket{}, ErrTopicNameEmpty},
		{"invalid qos", PublishPacket{Topic: "t", QoS: 3}, ErrInvalidQoS},
		{"dup on qos0", PublishPacket{Topic: "t", DUP: true}, ErrInvalidFlags},
		{"qos1 without id", PublishPacket{Topic: "t", QoS: QoSAtLeastOnce}, ErrPacketIDRequired},
		{"qos0 with id", PublishPacket{Topic: "t", ID: 9}, ErrProtocolViolation},
		{"null in topic", PublishPacket{Topic: "a\x00b"}, ErrStringContainsNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.packet.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}
