package mqttwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacketTypeString(t *testing.T) {
	assert.Equal(t, "CONNECT", PacketCONNECT.String())
	assert.Equal(t, "PUBLISH", PacketPUBLISH.String())
	assert.Equal(t, "AUTH", PacketAUTH.String())
	assert.Equal(t, "UNKNOWN", PacketType(0).String())
	assert.Equal(t, "UNKNOWN", PacketType(16).String())
}

func TestPacketTypeValid(t *testing.T) {
	assert.False(t, PacketType(0).Valid())
	for pt := PacketCONNECT; pt <= PacketAUTH; pt++ {
		assert.True(t, pt.Valid(), "type %d", pt)
	}
	assert.False(t, PacketType(16).Valid())
}

func TestFixedHeaderEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		header FixedHeader
		bytes  []byte
	}{
		{
			name:   "pingreq",
			header: FixedHeader{PacketType: PacketPINGREQ, RemainingLength: 0},
			bytes:  []byte{0xC0, 0x00},
		},
		{
			name:   "publish with flags",
			header: FixedHeader{PacketType: PacketPUBLISH, Flags: 0x0B, RemainingLength: 10},
			bytes:  []byte{0x3B, 0x0A},
		},
		{
			name:   "subscribe reserved flags",
			header: FixedHeader{PacketType: PacketSUBSCRIBE, Flags: 0x02, RemainingLength: 130},
			bytes:  []byte{0x82, 0x82, 0x01},
		},
		{
			name:   "max remaining length",
			header: FixedHeader{PacketType: PacketCONNECT, RemainingLength: 268435455},
			bytes:  []byte{0x10, 0xFF, 0xFF, 0xFF, 0x7F},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(nil)
			require.NoError(t, tt.header.Encode(w))
			assert.Equal(t, tt.bytes, w.Bytes())
			assert.Equal(t, len(tt.bytes), tt.header.Size())

			var decoded FixedHeader
			r := NewReader(tt.bytes)
			require.NoError(t, decoded.Decode(r))
			assert.Equal(t, tt.header, decoded)
		})
	}
}

func TestFixedHeaderDecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		err   error
	}{
		{"empty", []byte{}, ErrInsufficientData},
		{"reserved type zero", []byte{0x00, 0x00}, ErrUnknownPacketType},
		{"truncated length", []byte{0x10}, ErrInsufficientData},
		{"malformed length", []byte{0x10, 0x80, 0x80, 0x80, 0x80, 0x01}, ErrMalformedVarInt},
		{"non-minimal length", []byte{0x10, 0x80, 0x00}, ErrMalformedVarInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h FixedHeader
			r := NewReader(tt.bytes)
			err := h.Decode(r)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 0, r.Pos(), "position unchanged after failed decode")
		})
	}
}

func TestFixedHeaderValidateFlags(t *testing.T) {
	tests := []struct {
		name   string
		header FixedHeader
		err    error
	}{
		{"connect clean", FixedHeader{PacketType: PacketCONNECT, Flags: 0x00}, nil},
		{"connect dirty", FixedHeader{PacketType: PacketCONNECT, Flags: 0x01}, ErrInvalidFlags},
		{"pubrel reserved", FixedHeader{PacketType: PacketPUBREL, Flags: 0x02}, nil},
		{"pubrel zero", FixedHeader{PacketType: PacketPUBREL, Flags: 0x00}, ErrInvalidFlags},
		{"subscribe reserved", FixedHeader{PacketType: PacketSUBSCRIBE, Flags: 0x02}, nil},
		{"subscribe dirty", FixedHeader{PacketType: PacketSUBSCRIBE, Flags: 0x0F}, ErrInvalidFlags},
		{"unsubscribe reserved", FixedHeader{PacketType: PacketUNSUBSCRIBE, Flags: 0x02}, nil},
		{"publish qos0", FixedHeader{PacketType: PacketPUBLISH, Flags: 0x00}, nil},
		{"publish qos2 dup retain", FixedHeader{PacketType: PacketPUBLISH, Flags: 0x0D}, nil},
		{"publish qos3", FixedHeader{PacketType: PacketPUBLISH, Flags: 0x06}, ErrInvalidQoS},
		{"pingreq dirty", FixedHeader{PacketType: PacketPINGREQ, Flags: 0x08}, ErrInvalidFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.header.ValidateFlags()
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestFixedHeaderPublishAccessors(t *testing.T) {
	h := FixedHeader{PacketType: PacketPUBLISH, Flags: 0x0D} // DUP | QoS 2 | RETAIN
	assert.True(t, h.DUP())
	assert.Equal(t, QoSExactlyOnce, h.QoS())
	assert.True(t, h.Retain())

	h.Flags = 0x02 // QoS 1 only
	assert.False(t, h.DUP())
	assert.Equal(t, QoSAtLeastOnce, h.QoS())
	assert.False(t, h.Retain())
}
