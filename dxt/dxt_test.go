package dxt

import (
	"testing"

	"github.com/barcodec/barcodec/internal/ddtformat"
	"github.com/stretchr/testify/require"
)

func TestRGB565RoundTripViaEncDec(t *testing.T) {
	for _, c := range []rgb{{0, 0, 0}, {255, 255, 255}, {0xF8, 0x00, 0x00}, {16, 32, 48}} {
		encoded := enc565Encode(c)
		decoded := enc565Decode(encoded)
		require.Equal(t, decoded, enc565Decode(enc565Encode(decoded)))
	}
}

func TestFlatRedBlockEncodesToLiteralBytes(t *testing.T) {
	// 16 texels of pure red, in the RGB order encodeDXTColors expects
	// post prepareToEncoding (R, G, B per texel here, 3 bytes each).
	source := make([]byte, 48)
	for i := 0; i < 16; i++ {
		source[i*3] = 0xFF // R
	}

	dest := make([]byte, 8)
	encodeDXTColors(source, dest)

	require.Equal(t, []byte{0x00, 0xF8, 0x00, 0xF8, 0x00, 0x00, 0x00, 0x00}, dest)
}

func TestDXT5AlphaTableMonotonic(t *testing.T) {
	table := alphaTableDXT5(200, 40)
	require.Equal(t, uint8(200), table[0])
	require.Equal(t, uint8(40), table[1])
	for i := 2; i < 7; i++ {
		require.GreaterOrEqual(t, table[i], table[i+1])
	}
}

func TestCompressDecompressFlatBlockRoundTrip(t *testing.T) {
	width, height := uint32(4), uint32(4)
	decoded := make([]byte, width*height*4)
	for i := 0; i < len(decoded); i += 4 {
		decoded[i] = 10   // B
		decoded[i+1] = 20 // G
		decoded[i+2] = 30 // R
		decoded[i+3] = 255
	}

	compressed := Compress(decoded, ddtformat.FormatDXT1, ddtformat.UsageStandard, width, height)
	require.Len(t, compressed, encodedBytesPerBlock(ddtformat.FormatDXT1))

	back := Decompress(compressed, ddtformat.FormatDXT1, ddtformat.UsageStandard, width, height)
	require.Len(t, back, len(decoded))
	for i := 0; i < len(back); i += 4 {
		require.InDelta(t, decoded[i], back[i], 8)
		require.InDelta(t, decoded[i+1], back[i+1], 8)
		require.InDelta(t, decoded[i+2], back[i+2], 8)
	}
}
