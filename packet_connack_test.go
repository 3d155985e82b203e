package mqttwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnackPacketType(t *testing.T) {
	p := &ConnackPacket{}
	assert.Equal(t, PacketCONNACK, p.Type())
}

func TestConnackPacketEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		packet ConnackPacket
	}{
		{
			name:   "accepted",
			packet: ConnackPacket{ReasonCode: ReasonSuccess},
		},
		{
			name:   "session present",
			packet: ConnackPacket{SessionPresent: true, ReasonCode: ReasonSuccess},
		},
		{
			name:   "refused not authorized",
			packet: ConnackPacket{ReasonCode: ReasonNotAuthorized},
		},
		{
			name:   "refused server unavailable",
			packet: ConnackPacket{ReasonCode: ReasonServerUnavailable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := EncodePacket(&tt.packet)
			require.NoError(t, err)

			decoded, n, err := DecodePacket(buf)
			require.NoError(t, err)
			assert.Equal(t, len(buf), n)

			got, ok := decoded.(*ConnackPacket)
			require.True(t, ok)
			assert.Equal(t, tt.packet.SessionPresent, got.SessionPresent)
			assert.Equal(t, tt.packet.ReasonCode, got.ReasonCode)
		})
	}
}

func TestConnackPacketWithProperties(t *testing.T) {
	p := ConnackPacket{ReasonCode: ReasonSuccess}
	p.Props.Set(PropAssignedClientIdentifier, "srv-generated-1")
	p.Props.Set(PropServerKeepAlive, uint16(30))
	p.Props.Set(PropMaximumQoS, byte(1))

	buf, err := EncodePacket(&p)
	require.NoError(t, err)

	decoded, _, err := DecodePacket(buf)
	require.NoError(t, err)
	got := decoded.(*ConnackPacket)

	assert.Equal(t, "srv-generated-1", got.Props.GetString(PropAssignedClientIdentifier))
	assert.Equal(t, uint16(30), got.Props.GetUint16(PropServerKeepAlive))
	assert.Equal(t, byte(1), got.Props.GetByte(PropMaximumQoS))
}

func TestConnackPacketDecodeReservedAckFlags(t *testing.T) {
	p := ConnackPacket{ReasonCode: ReasonSuccess}
	buf, err := EncodePacket(&p)
	require.NoError(t, err)

	// Acknowledge flags byte is the first body byte.
	buf[2] = 0x02

	_, _, err = DecodePacket(buf)
	assert.ErrorIs(t, err, ErrInvalidFlags)
}

func TestConnackPacketDecodeInvalidReason(t *testing.T) {
	p := ConnackPacket{ReasonCode: ReasonSuccess}
	buf, err := EncodePacket(&p)
	require.NoError(t, err)

	// 0x11 (no subscription existed) is not a CONNACK reason code.
	buf[3] = 0x11

	_, _, err = DecodePacket(buf)
	assert.ErrorIs(t, err, ErrInvalidReasonCode)
}

func TestConnackPacketValidate(t *testing.T) {
	ok := ConnackPacket{ReasonCode: ReasonSuccess, SessionPresent: true}
	assert.NoError(t, ok.Validate())

	badReason := ConnackPacket{ReasonCode: ReasonNoSubscriptionExisted}
	assert.ErrorIs(t, badReason.Validate(), ErrInvalidReasonCode)

	sessionOnError := ConnackPacket{SessionPresent: true, ReasonCode: ReasonNotAuthorized}
	assert.ErrorIs(t, sessionOnError.Validate(), ErrProtocolViolation)
}
