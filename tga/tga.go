// Package tga implements the minimal uncompressed-true-color targa
// carrier used to round-trip a decoded DDT surface, including the
// filename side channel that carries the DDT usage/alpha/format/
// mipmap bytes across the TGA boundary.
package tga

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/barcodec/barcodec/internal/bcerr"
	"github.com/barcodec/barcodec/internal/binio"
	"github.com/barcodec/barcodec/internal/ddtformat"
)

const (
	alphaBitsMask       uint8 = 0b1111
	screenOriginBitMask uint8 = 0b10_0000
	uncompressedTrueColor uint8 = 2
)

// ImageID carries the four DDT side-channel bytes this package
// preserves across the filename suffix, in (usage, alpha, format,
// mipmap) order.
type ImageID [4]uint8

// File is a minimal uncompressed-true-color TGA: just enough header
// to be a valid targa, plus the raw pixel bytes and the DDT metadata
// quadruple.
type File struct {
	idLength     uint8
	mapType      uint8
	imageType    uint8
	mapOrigin    uint16
	mapLength    uint16
	mapEntrySize uint8
	xOrigin      uint16
	yOrigin      uint16

	Width, Height uint16
	pixelDepth    uint8
	imageDesc     uint8

	RawData []byte
	ImageID ImageID
}

// New builds a TGA carrier for a decoded DDT surface. Pixel depth and
// the alpha-bits field of image_desc depend only on whether format is
// GREY (8bpp, no alpha) or anything else (32bpp, 8 alpha bits).
func New(width, height uint16, usage, alpha, format, mipmapLevels uint8, rawData []byte) *File {
	var numAlphaBits, otherChannelBits uint8
	if format == ddtformat.FormatGrey {
		numAlphaBits, otherChannelBits = 0, 8
	} else {
		numAlphaBits, otherChannelBits = 8, 24
	}

	imageDesc := (numAlphaBits & alphaBitsMask) | screenOriginBitMask

	return &File{
		imageType:  uncompressedTrueColor,
		Width:      width,
		Height:     height,
		pixelDepth: numAlphaBits + otherChannelBits,
		imageDesc:  imageDesc,
		RawData:    rawData,
		ImageID:    ImageID{usage, alpha, format, mipmapLevels},
	}
}

// Bytes serializes the fixed 18-byte targa header followed by the raw
// pixel data.
func (f *File) Bytes() []byte {
	w := binio.NewWriter()
	w.WriteUint8(f.idLength)
	w.WriteUint8(f.mapType)
	w.WriteUint8(f.imageType)
	w.WriteUint16(f.mapOrigin)
	w.WriteUint16(f.mapLength)
	w.WriteUint8(f.mapEntrySize)
	w.WriteUint16(f.xOrigin)
	w.WriteUint16(f.yOrigin)
	w.WriteUint16(f.Width)
	w.WriteUint16(f.Height)
	w.WriteUint8(f.pixelDepth)
	w.WriteUint8(f.imageDesc)
	w.WriteBytes(f.RawData)
	return w.Bytes()
}

// Parse reads the fixed targa header and raw pixel data from buf, and
// recovers the DDT side-channel quadruple from fileName, which must
// end in the `basename.(usage,alpha,format,mipmap).tga` suffix this
// package's SuffixedName produces.
func Parse(fileName string, buf []byte) (*File, error) {
	r := binio.NewReader(buf)

	f := &File{
		idLength:     r.ReadUint8(),
		mapType:      r.ReadUint8(),
		imageType:    r.ReadUint8(),
		mapOrigin:    r.ReadUint16(),
		mapLength:    r.ReadUint16(),
		mapEntrySize: r.ReadUint8(),
		xOrigin:      r.ReadUint16(),
		yOrigin:      r.ReadUint16(),
		Width:        r.ReadUint16(),
		Height:       r.ReadUint16(),
		pixelDepth:   r.ReadUint8(),
		imageDesc:    r.ReadUint8(),
	}
	if r.Err() != nil {
		return nil, bcerr.Wrap("tga: read header", r.Err())
	}
	f.RawData = r.ReadBytes(len(buf) - 18)
	if r.Err() != nil {
		return nil, bcerr.Wrap("tga: read pixel data", r.Err())
	}

	id, err := parseImageID(fileName)
	if err != nil {
		return nil, err
	}
	f.ImageID = id

	return f, nil
}

// parseImageID recovers (usage, alpha, format, mipmap) from a name
// like "sky1.(0,0,4,8).tga": a `.`-split must yield exactly 3 tokens,
// and a `(),`-split of the middle token must yield exactly 6 (the two
// empty strings on either side of the parens, plus the four values).
func parseImageID(fileName string) (ImageID, error) {
	base := filepath.Base(fileName)
	parts := strings.Split(base, ".")
	if len(parts) != 3 {
		return ImageID{}, bcerr.ErrMalformedTgaName
	}

	tokens := strings.Split(strings.NewReplacer("(", ",", ")", ",").Replace(parts[1]), ",")
	if len(tokens) != 6 {
		return ImageID{}, bcerr.ErrMalformedTgaName
	}
	params := tokens[1:5]

	var id ImageID
	for i, p := range params {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return ImageID{}, bcerr.Wrap("tga: parse filename metadata", bcerr.ErrMalformedTgaName)
		}
		id[i] = uint8(n)
	}
	return id, nil
}

// SuffixedName returns the basename of path with its extension
// dropped and replaced by the `.(usage,alpha,format,mipmap).tga`
// suffix that Parse expects.
func (f *File) SuffixedName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s.(%d,%d,%d,%d).tga", base, f.ImageID[0], f.ImageID[1], f.ImageID[2], f.ImageID[3])
}
