package nrbf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitReaderIntegers(t *testing.T) {
	r := NewBitReader([]byte{0x01, 0xFF, 0x02, 0x00, 0x03, 0x00, 0x00, 0x00})
	b, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, byte(0x01), b)

	sb, err := r.ReadI8()
	require.NoError(t, err)
	require.Equal(t, int8(-1), sb)

	u16, err := r.ReadU16LE()
	require.NoError(t, err)
	require.Equal(t, uint16(2), u16)

	u32, err := r.ReadU32LE()
	require.NoError(t, err)
	require.Equal(t, uint32(3), u32)
}

func TestBitReaderEOF(t *testing.T) {
	r := NewBitReader([]byte{0x01})
	_, err := r.ReadU32LE()
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, ErrKindUnexpectedEndOfStream, pe.Kind)
	require.True(t, errors.Is(err, ErrUnexpectedEndOfStream))
}

func TestBitReaderChar_SurrogatePair(t *testing.T) {
	// U+1F600 (grinning face) encoded as UTF-16 surrogate pair 0xD83D 0xDE00,
	// little-endian on the wire.
	r := NewBitReader([]byte{0x3D, 0xD8, 0x00, 0xDE})
	c, err := r.ReadChar()
	require.NoError(t, err)
	require.Equal(t, rune(0x1F600), c)
}

func TestBitReaderLength7Bit(t *testing.T) {
	// 300 encodes as 0xAC 0x02 in 7-bit form.
	r := NewBitReader([]byte{0xAC, 0x02})
	n, err := r.ReadLength7Bit()
	require.NoError(t, err)
	require.Equal(t, uint32(300), n)
}

func TestBitReaderLengthPrefixedString(t *testing.T) {
	data := append([]byte{5}, []byte("hello")...)
	r := NewBitReader(data)
	s, err := r.ReadLengthPrefixedString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestBitReaderDateTime(t *testing.T) {
	// Kind=Utc(1) packed into top 2 bits, ticks=12345 in the low 62 bits.
	raw := (uint64(1) << 62) | uint64(12345)
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(raw >> (8 * i))
	}
	r := NewBitReader(buf)
	dt, err := r.ReadDateTime()
	require.NoError(t, err)
	require.Equal(t, DateTimeUtc, dt.Kind)
	require.Equal(t, int64(12345), dt.Ticks)
}
