package dxt

import (
	"encoding/binary"

	"github.com/barcodec/barcodec/internal/ddtformat"
)

// Decompress expands a DXT1/1DE/3/5 compressed surface into a BGRA (or,
// for BUMP+DXT5, BGAR) byte buffer of width*height*4 bytes. Blocks are
// read row-major, 4x4 texels at a time; the right/bottom edge is
// clamped for surfaces whose dimensions aren't multiples of 4.
func Decompress(raw []byte, format, usage uint8, width, height uint32) []byte {
	blockCountX := (width + 3) / 4
	blockCountY := (height + 3) / 4

	out := make([]byte, width*height*4)

	pos := 0
	readN := func(n int) []byte {
		b := raw[pos : pos+n]
		pos += n
		return b
	}

	for y := uint32(0); y < blockCountY; y++ {
		for x := uint32(0); x < blockCountX; x++ {
			var alpha [8]byte
			if format == ddtformat.FormatDXT3 || format == ddtformat.FormatDXT5 {
				copy(alpha[:], readN(8))
			}
			c0 := binary.LittleEndian.Uint16(readN(2))
			c1 := binary.LittleEndian.Uint16(readN(2))
			lookup := binary.LittleEndian.Uint32(readN(4))

			decompressBlock(format, usage, alpha, c0, c1, lookup, x, y, out, width, height)
		}
	}
	return out
}

func decompressBlock(format, usage uint8, alpha [8]byte, c0, c1 uint16, lookup uint32, x, y uint32, data []byte, width, height uint32) {
	r0, g0, b0 := rgb565to888(c0)
	r1, g1, b1 := rgb565to888(c1)

	var alphaMask uint64
	if format == ddtformat.FormatDXT5 {
		alphaMask = uint64(alpha[2]) |
			uint64(alpha[3])<<8 |
			uint64(alpha[4])<<16 |
			uint64(alpha[5])<<24 |
			uint64(alpha[6])<<32 |
			uint64(alpha[7])<<40
	}

	for blockY := uint32(0); blockY < 4; blockY++ {
		for blockX := uint32(0); blockX < 4; blockX++ {
			var r, g, b, a uint8

			if format == ddtformat.FormatDXT1 || format == ddtformat.FormatDXT1DE {
				a = 255
			}

			index := (lookup >> (2 * (4*blockY + blockX))) & 0x03

			if format == ddtformat.FormatDXT3 {
				nibbleIdx := 4*blockY + blockX
				byteVal := alpha[nibbleIdx/2]
				if nibbleIdx%2 == 0 {
					a = (byteVal & 0x0F) | ((byteVal & 0x0F) << 4)
				} else {
					a = (byteVal & 0xF0) | ((byteVal & 0xF0) >> 4)
				}
			}

			if format == ddtformat.FormatDXT5 {
				alphaIndex := uint32((alphaMask >> (3 * (4*blockY + blockX))) & 0x07)
				switch alphaIndex {
				case 0:
					a = alpha[0]
				case 1:
					a = alpha[1]
				default:
					if alpha[0] > alpha[1] {
						a = uint8(((8-alphaIndex)*uint32(alpha[0]) + (alphaIndex-1)*uint32(alpha[1])) / 7)
					} else {
						switch alphaIndex {
						case 6:
							a = 0
						case 7:
							a = 0xFF
						default:
							a = uint8(((6-alphaIndex)*uint32(alpha[0]) + (alphaIndex-1)*uint32(alpha[1])) / 5)
						}
					}
				}
			}

			switch index {
			case 0:
				r, g, b = r0, g0, b0
			case 1:
				r, g, b = r1, g1, b1
			case 2:
				if format == ddtformat.FormatDXT1 || format == ddtformat.FormatDXT1DE {
					if c0 > c1 {
						r = uint8((2*uint16(r0) + uint16(r1)) / 3)
						g = uint8((2*uint16(g0) + uint16(g1)) / 3)
						b = uint8((2*uint16(b0) + uint16(b1)) / 3)
					} else {
						r = uint8((uint16(r0) + uint16(r1)) / 2)
						g = uint8((uint16(g0) + uint16(g1)) / 2)
						b = uint8((uint16(b0) + uint16(b1)) / 2)
					}
				} else {
					r = uint8((2*uint16(r0) + uint16(r1)) / 3)
					g = uint8((2*uint16(g0) + uint16(g1)) / 3)
					b = uint8((2*uint16(b0) + uint16(b1)) / 3)
				}
			case 3:
				if format == ddtformat.FormatDXT1 || format == ddtformat.FormatDXT1DE {
					if c0 > c1 {
						r = uint8((uint16(r0) + 2*uint16(r1)) / 3)
						g = uint8((uint16(g0) + 2*uint16(g1)) / 3)
						b = uint8((uint16(b0) + 2*uint16(b1)) / 3)
					} else {
						r, g, b, a = 0, 0, 0, 0
					}
				} else {
					r = uint8((uint16(r0) + 2*uint16(r1)) / 3)
					g = uint8((uint16(g0) + 2*uint16(g1)) / 3)
					b = uint8((uint16(b0) + 2*uint16(b1)) / 3)
				}
			}

			px := (x << 2) + blockX
			py := (y << 2) + blockY
			if px >= width || py >= height {
				continue
			}
			offset := (py*width + px) << 2

			data[offset] = b
			data[offset+1] = g
			if usage&ddtformat.UsageBump == ddtformat.UsageBump && format == ddtformat.FormatDXT5 {
				data[offset+2] = a
				data[offset+3] = r
			} else {
				data[offset+2] = r
				data[offset+3] = a
			}
		}
	}
}
