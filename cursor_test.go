package mqttwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderReadByte(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})

	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)
	assert.Equal(t, 1, r.Pos())
	assert.Equal(t, 1, r.Remaining())

	b, err = r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), b)

	_, err = r.ReadByte()
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Equal(t, 2, r.Pos(), "position unchanged after failed read")
}

func TestReaderReadUint16(t *testing.T) {
	r := NewReader([]byte{0x12, 0x34})
	v, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)

	r = NewReader([]byte{0x12})
	_, err = r.ReadUint16()
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Equal(t, 0, r.Pos(), "position unchanged after failed read")
}

func TestReaderReadUint32(t *testing.T) {
	r := NewReader([]byte{0x12, 0x34, 0x56, 0x78})
	v, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)

	r = NewReader([]byte{0x12, 0x34, 0x56})
	_, err = r.ReadUint32()
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Equal(t, 0, r.Pos())
}

func TestReaderReadBytes(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	r := NewReader(data)

	got, err := r.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, got)

	_, err = r.ReadBytes(2)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Equal(t, 3, r.Pos())
}

func TestReaderReadBytesAliasing(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(data)

	got, err := r.ReadBytes(3)
	require.NoError(t, err)

	data[0] = 0xFF
	assert.Equal(t, byte(0xFF), got[0], "ReadBytes aliases the source buffer")
}

func TestReaderSub(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	sub, err := r.Sub(3)
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Remaining())
	assert.Equal(t, 3, r.Pos(), "parent advances past the window")

	b, err := sub.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)

	_, err = sub.ReadBytes(3)
	assert.ErrorIs(t, err, ErrInsufficientData, "window cannot read past its end")

	_, err = r.Sub(3)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter(nil)
	w.WriteByte(0x01)
	w.WriteUint16(0x2345)
	w.WriteUint32(0x6789ABCD)
	w.WriteBytes([]byte{0xEE})
	w.WriteString("hi")

	assert.Equal(t, []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEE, 'h', 'i'}, w.Bytes())
	assert.Equal(t, 10, w.Len())
}
