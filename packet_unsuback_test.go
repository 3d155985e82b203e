package mqttwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsubackPacketType(t *testing.T) {
	p := &UnsubackPacket{}
	assert.Equal(t, PacketUNSUBACK, p.Type())
}

func TestUnsubackPacketEncodeDecode(t *testing.T) {
	p := UnsubackPacket{
		ID: 12,
		ReasonCodes: []ReasonCode{
			ReasonSuccess, ReasonNoSubscriptionExisted, ReasonNotAuthorized,
		},
	}

	buf, err := EncodePacket(&p)
	require.NoError(t, err)

	decoded, n, err := DecodePacket(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	got, ok := decoded.(*UnsubackPacket)
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.ReasonCodes, got.ReasonCodes)
}

func TestUnsubackPacketWithProperties(t *testing.T) {
	p := UnsubackPacket{ID: 3, ReasonCodes: []ReasonCode{ReasonSuccess}}
	p.Props.Set(PropReasonString, "done")

	buf, err := EncodePacket(&p)
	require.NoError(t, err)

	decoded, _, err := DecodePacket(buf)
	require.NoError(t, err)
	got := decoded.(*UnsubackPacket)
	assert.Equal(t, "done", got.Props.GetString(PropReasonString))
}

func TestUnsubackPacketDecodeEmptyPayload(t *testing.T) {
	buf := []byte{0xB0, 0x03, 0x00, 0x01, 0x00}
	_, _, err := DecodePacket(buf)
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestUnsubackPacketDecodeInvalidReason(t *testing.T) {
	// 0x91 (packet ID in use) is legal; 0x9B (QoS not supported) is not.
	buf := []byte{0xB0, 0x04, 0x00, 0x01, 0x00, 0x9B}
	_, _, err := DecodePacket(buf)
	assert.ErrorIs(t, err, ErrInvalidReasonCode)
}

func TestUnsubackPacketValidate(t *testing.T) {
	assert.NoError(t, (&UnsubackPacket{ID: 1, ReasonCodes: []ReasonCode{ReasonSuccess}}).Validate())
	assert.ErrorIs(t, (&UnsubackPacket{ID: 1}).Validate(), ErrEmptyPayload)
	assert.ErrorIs(t, (&UnsubackPacket{ReasonCodes: []ReasonCode{ReasonSuccess}}).Validate(), ErrInvalidPacketID)
}
