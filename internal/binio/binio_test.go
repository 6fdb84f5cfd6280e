package binio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(0x42)
	w.WriteUint16(0x1234)
	w.WriteUint32(0xDEADBEEF)
	w.WriteUint64(0x0102030405060708)
	w.WriteBytes([]byte{1, 2, 3})
	w.WriteZeros(4)
	require.NoError(t, w.Err())

	data := w.Bytes()
	require.Len(t, data, 1+2+4+8+3+4)

	r := NewReader(data)
	require.Equal(t, uint8(0x42), r.ReadUint8())
	require.Equal(t, uint16(0x1234), r.ReadUint16())
	require.Equal(t, uint32(0xDEADBEEF), r.ReadUint32())
	require.Equal(t, uint64(0x0102030405060708), r.ReadUint64())
	require.Equal(t, []byte{1, 2, 3}, r.ReadBytes(3))
	require.Equal(t, []byte{0, 0, 0, 0}, r.ReadBytes(4))
	require.NoError(t, r.Err())
}

func TestReaderShortReadIsSticky(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	require.Equal(t, uint32(0), r.ReadUint32())
	require.Error(t, r.Err())

	// Once sticky, further reads don't overwrite the first error or
	// panic on the now-exhausted reader.
	r.ReadUint8()
	require.Error(t, r.Err())
}

func TestSeekAbsolute(t *testing.T) {
	r := NewReader([]byte{0, 0, 0, 0, 0xFF})
	r.Seek(4)
	require.Equal(t, uint8(0xFF), r.ReadUint8())
	require.NoError(t, r.Err())
}

func TestUTF16LERoundTrip(t *testing.T) {
	s := "sky01.ddt"
	encoded := EncodeUTF16LE(s)
	require.Len(t, encoded, len(s)*2)

	decoded, err := DecodeUTF16LE(encoded)
	require.NoError(t, err)
	require.Equal(t, s, decoded)
}
