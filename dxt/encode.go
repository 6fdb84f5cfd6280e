package dxt

import (
	"github.com/barcodec/barcodec/internal/ddtformat"
)

// prepareToEncoding reorders a BGRA (or BGAR, for BUMP+DXT5) buffer
// into the plain RGB/RGBA channel order the block encoders consume,
// dropping the alpha channel entirely for DXT1/1DE.
func prepareToEncoding(data []byte, format, usage uint8) []byte {
	res := make([]byte, 0, len(data))
	for i := 0; i+3 < len(data); i += 4 {
		b := data[i]
		g := data[i+1]
		var r, a uint8
		if usage&ddtformat.UsageBump == ddtformat.UsageBump && format == ddtformat.FormatDXT5 {
			r = data[i+3]
			a = data[i+2]
		} else {
			r = data[i+2]
			a = data[i+3]
		}

		if format == ddtformat.FormatDXT1 || format == ddtformat.FormatDXT1DE {
			res = append(res, r, g, b)
		} else {
			res = append(res, r, g, b, a)
		}
	}
	return res
}

// Compress encodes a decoded color buffer (BGRA/BGAR, width*height*4
// bytes) into a DXT1/1DE/3/5 surface. width and height must be
// multiples of 4; no edge padding is performed.
func Compress(data []byte, format, usage uint8, width, height uint32) []byte {
	prepared := prepareToEncoding(data, format, usage)

	widthBlocks := width / 4
	stride := decodedBytesPerBlock(format)
	rowBytes := int(widthBlocks) * stride

	var res []byte
	for off := 0; off < len(prepared); off += rowBytes {
		end := off + rowBytes
		if end > len(prepared) {
			end = len(prepared)
		}
		chunk := prepared[off:end]

		var buf []byte
		switch format {
		case ddtformat.FormatDXT1, ddtformat.FormatDXT1DE:
			buf = encodeDXT1Row(chunk)
		case ddtformat.FormatDXT3:
			buf = encodeDXT3Row(chunk)
		default:
			buf = encodeDXT5Row(chunk)
		}
		res = append(res, buf...)
	}
	return res
}

// encodeDXTColors performs the shared exhaustive 2-endpoint color
// search used by DXT1/3/5: source is 48 bytes (16 RGB texels) or 64
// bytes (16 RGBA texels, alpha ignored here); dest is the 8-byte color
// block (c0, c1, 4-byte index word).
func encodeDXTColors(source, dest []byte) {
	if (len(source) != 64 && len(source) != 48) || len(dest) != 8 {
		panic("dxt: bad encodeDXTColors buffer sizes")
	}
	stride := len(source) / 16

	var targets [16]rgb
	// Build targets from source chunks in reverse order, matching the
	// block layout the decoder expects its index word against.
	nChunks := len(source) / stride
	for i := 0; i < nChunks; i++ {
		chunkIdx := nChunks - 1 - i
		s := source[chunkIdx*stride : chunkIdx*stride+stride]
		targets[i] = rgb{s[0], s[1], s[2]}
	}

	colorspace := make([]rgb, 16)
	copy(colorspace, targets[:])
	for i := range colorspace {
		colorspace[i] = enc565Decode(enc565Encode(colorspace[i]))
	}
	colorspace = dedupConsecutive(colorspace)

	if len(colorspace) == 1 {
		refRGB := colorspace[0]
		best := targets[0]
		bestKey := diff(best, refRGB)
		for _, t := range targets[1:] {
			k := diff(t, refRGB)
			if k >= bestKey {
				bestKey = k
				best = t
			}
		}

		var extrapolated rgb
		for i := 0; i < 3; i++ {
			extrapolated[i] = uint8((int32(best[i])-int32(refRGB[i]))*5/2 + int32(refRGB[i]))
		}

		encoded := enc565Encode(extrapolated)
		back := enc565Decode(encoded)

		if back == refRGB {
			// A flat block: c0 and c1 both carry the one color so
			// that a zero selector reconstructs it regardless of
			// which endpoint a reader samples.
			dest[0] = uint8(encoded)
			dest[1] = uint8(encoded >> 8)
			dest[2] = uint8(encoded)
			dest[3] = uint8(encoded >> 8)
			for i := 4; i < 8; i++ {
				dest[i] = 0
			}
			return
		}
		colorspace = append(colorspace, extrapolated)
	}

	var colors [4]rgb
	var chosenColors [4]rgb
	chosenUse0 := false
	chosenError := uint32(0xFFFFFFFF)

search:
	for i, c1 := range colorspace {
		colors[0] = c1
		for _, c2 := range colorspace[:i] {
			colors[1] = c2

			for use0 := 0; use0 < 2; use0++ {
				if use0 != 0 {
					for k := 0; k < 3; k++ {
						colors[2][k] = uint8((uint16(colors[0][k]) + uint16(colors[1][k]) + 1) / 2)
					}
					colors[3] = rgb{0, 0, 0}
				} else {
					for k := 0; k < 3; k++ {
						colors[2][k] = uint8((uint16(colors[0][k])*2 + uint16(colors[1][k]) + 1) / 3)
						colors[3][k] = uint8((uint16(colors[0][k]) + uint16(colors[1][k])*2 + 1) / 3)
					}
				}

				var totalError uint32
				for _, t := range targets {
					m := uint32(diff(colors[0], t))
					for _, c := range colors[1:] {
						if e := uint32(diff(c, t)); e < m {
							m = e
						}
					}
					totalError += m
				}

				if totalError < chosenError {
					chosenColors = colors
					chosenUse0 = use0 != 0
					chosenError = totalError

					if totalError < 4 {
						break search
					}
				}
			}
		}
	}

	var chosenIndices uint32
	for _, t := range targets {
		idx := 0
		best := diff(chosenColors[0], t)
		for i := 1; i < 4; i++ {
			if d := diff(chosenColors[i], t); d < best {
				best = d
				idx = i
			}
		}
		chosenIndices = (chosenIndices << 2) | uint32(idx)
	}

	color0 := enc565Encode(chosenColors[0])
	color1 := enc565Encode(chosenColors[1])

	if color0 > color1 {
		if chosenUse0 {
			color0, color1 = color1, color0
			filter := (chosenIndices & 0xAAAAAAAA) >> 1
			chosenIndices ^= filter ^ 0x55555555
		}
	} else if !chosenUse0 {
		color0, color1 = color1, color0
		chosenIndices ^= 0x55555555
	}

	dest[0] = uint8(color0)
	dest[1] = uint8(color0 >> 8)
	dest[2] = uint8(color1)
	dest[3] = uint8(color1 >> 8)
	for i := 0; i < 4; i++ {
		dest[i+4] = uint8(chosenIndices >> (i * 8))
	}
}

// dedupConsecutive removes consecutive duplicate elements, matching
// the semantics of a sorted-adjacent dedup rather than a full set
// reduction: two equal colors separated by a different one both
// survive.
func dedupConsecutive(s []rgb) []rgb {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func encodeDXT1Block(source, dest []byte) {
	encodeDXTColors(source, dest)
}

func encodeDXT1Row(source []byte) []byte {
	blockCount := len(source) / 48
	dest := make([]byte, blockCount*8)
	var decodedBlock [48]byte

	for x := 0; x < blockCount; x++ {
		for line := 0; line < 4; line++ {
			offset := (blockCount*line + x) * 12
			copy(decodedBlock[line*12:(line+1)*12], source[offset:offset+12])
		}
		encodeDXT1Block(decodedBlock[:], dest[x*8:x*8+8])
	}
	return dest
}

func encodeDXT3Block(source, dest []byte) {
	encodeDXTColors(source, dest[8:16])

	var alphaTable uint64
	for i := 0; i < 16; i++ {
		a := uint64(source[i*4+3])
		a = (a + 0x8) / 0x11
		alphaTable |= a << uint(i*4)
	}

	for i := 0; i < 8; i++ {
		dest[i] = uint8(alphaTable)
		alphaTable >>= 8
	}
}

func encodeDXT3Row(source []byte) []byte {
	blockCount := len(source) / 64
	dest := make([]byte, blockCount*16)
	var decodedBlock [64]byte

	for x := 0; x < blockCount; x++ {
		for line := 0; line < 4; line++ {
			offset := (blockCount*line + x) * 16
			copy(decodedBlock[line*16:(line+1)*16], source[offset:offset+16])
		}
		encodeDXT3Block(decodedBlock[:], dest[x*16:x*16+16])
	}
	return dest
}

func encodeDXT5Alpha(alpha0, alpha1 uint8, alphas [16]uint8) (int32, uint64) {
	table := alphaTableDXT5(alpha0, alpha1)

	var indices uint64
	var totalError int32

	for i, a := range alphas {
		idx := 0
		best := square(int32(table[0]) - int32(a))
		for j := 1; j < 8; j++ {
			if e := square(int32(table[j]) - int32(a)); e < best {
				best = e
				idx = j
			}
		}
		totalError += best
		indices |= uint64(idx) << uint(i*3)
	}

	return totalError, indices
}

func encodeDXT5Block(source, dest []byte) {
	encodeDXTColors(source, dest[8:16])

	var alphas [16]uint8
	for i := 0; i < 16; i++ {
		alphas[i] = source[i*4+3]
	}

	alpha07, alpha17 := alphas[0], alphas[0]
	for _, a := range alphas {
		if a < alpha07 {
			alpha07 = a
		}
		if a > alpha17 {
			alpha17 = a
		}
	}
	error7, indices7 := encodeDXT5Alpha(alpha07, alpha17, alphas)

	alpha05 := uint8(255)
	haveAlpha05 := false
	alpha15 := uint8(0)
	haveAlpha15 := false
	for _, a := range alphas {
		if a != 255 && (!haveAlpha05 || a > alpha05) {
			alpha05 = a
			haveAlpha05 = true
		}
		if a != 0 && (!haveAlpha15 || a < alpha15) {
			alpha15 = a
			haveAlpha15 = true
		}
	}
	if !haveAlpha05 {
		alpha05 = 255
	}
	if !haveAlpha15 {
		alpha15 = 0
	}

	error5, indices5 := encodeDXT5Alpha(alpha05, alpha15, alphas)

	var alphaTable uint64
	if error5 < error7 {
		dest[0] = alpha05
		dest[1] = alpha15
		alphaTable = indices5
	} else {
		dest[0] = alpha07
		dest[1] = alpha17
		alphaTable = indices7
	}

	for i := 2; i < 8; i++ {
		dest[i] = uint8(alphaTable)
		alphaTable >>= 8
	}
}

func encodeDXT5Row(source []byte) []byte {
	blockCount := len(source) / 64
	dest := make([]byte, blockCount*16)
	var decodedBlock [64]byte

	for x := 0; x < blockCount; x++ {
		for line := 0; line < 4; line++ {
			offset := (blockCount*line + x) * 16
			copy(decodedBlock[line*16:(line+1)*16], source[offset:offset+16])
		}
		encodeDXT5Block(decodedBlock[:], dest[x*16:x*16+16])
	}
	return dest
}

func alphaTableDXT5(alpha0, alpha1 uint8) [8]uint8 {
	table := [8]uint8{alpha0, alpha1, 0, 0, 0, 0, 0, 0xFF}
	if alpha0 > alpha1 {
		for i := uint16(2); i < 8; i++ {
			table[i] = uint8(((8-i)*uint16(alpha0) + (i-1)*uint16(alpha1)) / 7)
		}
	} else {
		for i := uint16(2); i < 6; i++ {
			table[i] = uint8(((6-i)*uint16(alpha0) + (i-1)*uint16(alpha1)) / 5)
		}
	}
	return table
}
