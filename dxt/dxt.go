// Package dxt implements the per-block encoder/decoder for the DXT1,
// DXT1-DE, DXT3 and DXT5 texture compression formats used inside DDT
// surfaces: 4x4-texel blocks, 5-6-5 color endpoints, and (for DXT3/5)
// an 8-byte alpha block.
package dxt

import (
	"github.com/barcodec/barcodec/internal/ddtformat"
)

// rgb is a plain 8-bit-per-channel color used only inside the
// quantizer's search; it intentionally has nothing to do with the
// BGRA byte order the surrounding container uses.
type rgb [3]uint8

func square(a int32) int32 { return a * a }

func diff(a, b rgb) int32 {
	return square(int32(a[0])-int32(b[0])) +
		square(int32(a[1])-int32(b[1])) +
		square(int32(a[2])-int32(b[2]))
}

// rgb565to888 expands a packed 5-6-5 color into 8-bit channels using
// the bias-and-shift expansion the block decoder uses (distinct from
// enc565Decode/enc565Encode, which the color-quantizer search uses for
// its round-trip test).
func rgb565to888(c uint16) (r, g, b uint8) {
	t := uint32(c>>11)*255 + 16
	r = uint8((t/32 + t) / 32)
	t = uint32((c&0x07E0)>>5)*255 + 32
	g = uint8((t/64 + t) / 64)
	t = uint32(c&0x001F)*255 + 16
	b = uint8((t/32 + t) / 32)
	return
}

// enc565Decode/enc565Encode form the round-trip pair the quantizer
// search uses to test whether a color survives requantization.
func enc565Decode(value uint16) rgb {
	red := (value >> 11) & 0x1F
	green := (value >> 5) & 0x3F
	blue := value & 0x1F
	return rgb{
		uint8(uint32(red) * 0xFF / 0x1F),
		uint8(uint32(green) * 0xFF / 0x3F),
		uint8(uint32(blue) * 0xFF / 0x1F),
	}
}

func enc565Encode(c rgb) uint16 {
	red := (uint16(c[0])*0x1F + 0x7E) / 0xFF
	green := (uint16(c[1])*0x3F + 0x7E) / 0xFF
	blue := (uint16(c[2])*0x1F + 0x7E) / 0xFF
	return (red << 11) | (green << 5) | blue
}

// decodedBytesPerBlock is the number of raw color bytes (3 or 4
// channels, 16 texels) one compressed block expands to/from.
func decodedBytesPerBlock(format uint8) int {
	if format == ddtformat.FormatDXT1 || format == ddtformat.FormatDXT1DE {
		return 48
	}
	return 64
}

// encodedBytesPerBlock is the wire size of one compressed block.
func encodedBytesPerBlock(format uint8) int {
	if format == ddtformat.FormatDXT1 || format == ddtformat.FormatDXT1DE {
		return 8
	}
	return 16
}
