package mqttwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubackPacketType(t *testing.T) {
	p := &SubackPacket{}
	assert.Equal(t, PacketSUBACK, p.Type())
}

func TestSubackPacketEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		packet SubackPacket
	}{
		{
			name:   "single grant",
			packet: SubackPacket{ID: 1, ReasonCodes: []ReasonCode{ReasonGrantedQoS1}},
		},
		{
			name: "mixed grants and failure",
			packet: SubackPacket{
				ID: 5,
				ReasonCodes: []ReasonCode{
					ReasonGrantedQoS0, ReasonGrantedQoS2, ReasonNotAuthorized,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := EncodePacket(&tt.packet)
			require.NoError(t, err)

			decoded, n, err := DecodePacket(buf)
			require.NoError(t, err)
			assert.Equal(t, len(buf), n)

			got, ok := decoded.(*SubackPacket)
			require.True(t, ok)
			assert.Equal(t, tt.packet.ID, got.ID)
			assert.Equal(t, tt.packet.ReasonCodes, got.ReasonCodes)
		})
	}
}

func TestSubackPacketDecodeEmptyPayload(t *testing.T) {
	buf := []byte{0x90, 0x03, 0x00, 0x01, 0x00}
	_, _, err := DecodePacket(buf)
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestSubackPacketDecodeInvalidReason(t *testing.T) {
	// 0x04 (disconnect with will) is not a SUBACK reason code.
	buf := []byte{0x90, 0x04, 0x00, 0x01, 0x00, 0x04}
	_, _, err := DecodePacket(buf)
	assert.ErrorIs(t, err, ErrInvalidReasonCode)
}

func TestSubackPacketValidate(t *testing.T) {
	assert.NoError(t, (&SubackPacket{ID: 1, ReasonCodes: []ReasonCode{ReasonGrantedQoS0}}).Validate())
	assert.ErrorIs(t, (&SubackPacket{ReasonCodes: []ReasonCode{ReasonGrantedQoS0}}).Validate(), ErrInvalidPacketID)
	assert.ErrorIs(t, (&SubackPacket{ID: 1}).Validate(), ErrEmptyPayload)
	assert.ErrorIs(t, (&SubackPacket{ID: 1, ReasonCodes: []ReasonCode{ReasonBanned}}).Validate(), ErrInvalidReasonCode)
}
