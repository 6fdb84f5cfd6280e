// Package ddt implements the DDT texture container: a 16-byte header,
// a flat mipmap/cubemap surface table, and dispatch of each surface's
// payload to the dxt block codec or straight through for raw BGRA/GREY
// formats.
package ddt

import (
	"github.com/barcodec/barcodec/dxt"
	"github.com/barcodec/barcodec/internal/bcerr"
	"github.com/barcodec/barcodec/internal/binio"
	"github.com/barcodec/barcodec/internal/ddtformat"
	"github.com/barcodec/barcodec/tga"
)

// Signature is the DDT magic ("RTS3"), little-endian.
const Signature uint32 = 0x33535452

// Surface is one entry of the mipmap/cubemap table: its dimensions
// (computed from the header, not stored on the wire) and its raw
// payload bytes.
type Surface struct {
	Width, Height uint32
	Offset, Length uint32
	RawData []byte
}

// DDT is a decoded texture container.
type DDT struct {
	Usage, Alpha, Format, MipmapLevels uint8
	BaseWidth, BaseHeight              uint32
	Surfaces                           []Surface
}

// faces returns how many cubemap faces each mip level has: 6 if usage
// has the CUBE bit set, 1 otherwise.
func faces(usage uint8) uint32 {
	if usage&ddtformat.UsageCube == ddtformat.UsageCube {
		return 6
	}
	return 1
}

// Read parses a full DDT container (header + surface table + surface
// payloads) from data.
func Read(data []byte) (*DDT, error) {
	r := binio.NewReader(data)

	signature := r.ReadUint32()
	if r.Err() != nil {
		return nil, bcerr.Wrap("ddt: read header", r.Err())
	}
	if signature != Signature {
		return nil, bcerr.ErrNotValidDdtSignature
	}

	d := &DDT{
		Usage:         r.ReadUint8(),
		Alpha:         r.ReadUint8(),
		Format:        r.ReadUint8(),
		MipmapLevels:  r.ReadUint8(),
		BaseWidth:     r.ReadUint32(),
		BaseHeight:    r.ReadUint32(),
	}
	if r.Err() != nil {
		return nil, bcerr.Wrap("ddt: read header", r.Err())
	}

	imagesPerLevel := faces(d.Usage)
	count := uint32(d.MipmapLevels) * imagesPerLevel

	d.Surfaces = make([]Surface, 0, count)
	for i := uint32(0); i < count; i++ {
		r.Seek(16 + 8*int64(i))
		width := maxU32(1, d.BaseWidth>>(i/imagesPerLevel))
		height := maxU32(1, d.BaseHeight>>(i/imagesPerLevel))

		offset := r.ReadUint32()
		length := r.ReadUint32()
		if r.Err() != nil {
			return nil, bcerr.Wrap("ddt: read surface table", r.Err())
		}

		r.Seek(int64(offset))
		raw := r.ReadBytes(int(length))
		if r.Err() != nil {
			return nil, bcerr.Wrap("ddt: read surface payload", r.Err())
		}

		d.Surfaces = append(d.Surfaces, Surface{
			Width: width, Height: height,
			Offset: offset, Length: length,
			RawData: raw,
		})
	}

	return d, nil
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// Decode returns the base (first) surface's pixel data, expanding it
// through the dxt codec for block-compressed formats or returning it
// unchanged for BGRA/GREY.
func (d *DDT) Decode() ([]byte, error) {
	if len(d.Surfaces) == 0 {
		return nil, bcerr.ErrNotValidDdtFormat
	}
	base := d.Surfaces[0]

	switch d.Format {
	case ddtformat.FormatDXT1, ddtformat.FormatDXT1DE, ddtformat.FormatDXT3, ddtformat.FormatDXT5:
		return dxt.Decompress(base.RawData, d.Format, d.Usage, base.Width, base.Height), nil
	case ddtformat.FormatBGRA, ddtformat.FormatGrey:
		return base.RawData, nil
	default:
		return nil, bcerr.ErrNotValidDdtFormat
	}
}

// encode compresses source (decoded BGRA/BGAR pixel data) back into a
// surface payload for the given format.
func encode(source []byte, width, height uint32, usage, format uint8) ([]byte, error) {
	switch format {
	case ddtformat.FormatDXT1, ddtformat.FormatDXT1DE, ddtformat.FormatDXT3, ddtformat.FormatDXT5:
		return dxt.Compress(source, format, usage, width, height), nil
	case ddtformat.FormatBGRA, ddtformat.FormatGrey:
		return source, nil
	default:
		return nil, bcerr.ErrNotValidDdtFormat
	}
}

// ToTGA builds a TGA carrier from the decoded base surface.
func (d *DDT) ToTGA() (*tga.File, error) {
	decoded, err := d.Decode()
	if err != nil {
		return nil, err
	}
	return tga.New(uint16(d.BaseWidth), uint16(d.BaseHeight), d.Usage, d.Alpha, d.Format, d.MipmapLevels, decoded), nil
}

// FromTGA rebuilds a single-surface DDT from a TGA carrier previously
// produced by ToTGA (fileName supplies the side-channel suffix, data
// its raw bytes).
func FromTGA(fileName string, data []byte) (*DDT, error) {
	t, err := tga.Parse(fileName, data)
	if err != nil {
		return nil, err
	}

	usage, alpha, format, mipmapLevels := t.ImageID[0], t.ImageID[1], t.ImageID[2], t.ImageID[3]
	encoded, err := encode(t.RawData, uint32(t.Width), uint32(t.Height), usage, format)
	if err != nil {
		return nil, err
	}

	return &DDT{
		Usage:        usage,
		Alpha:        alpha,
		Format:       format,
		MipmapLevels: mipmapLevels,
		BaseWidth:    uint32(t.Width),
		BaseHeight:   uint32(t.Height),
		Surfaces: []Surface{{
			Width: uint32(t.Width), Height: uint32(t.Height),
			Offset: 0, Length: uint32(len(encoded)),
			RawData: encoded,
		}},
	}, nil
}

// Bytes serializes the header, surface table, and surface payloads in
// wire order, recomputing each surface's offset from a single forward
// layout pass.
func (d *DDT) Bytes() []byte {
	w := binio.NewWriter()
	w.WriteUint32(Signature)
	w.WriteUint8(d.Usage)
	w.WriteUint8(d.Alpha)
	w.WriteUint8(d.Format)
	w.WriteUint8(d.MipmapLevels)
	w.WriteUint32(d.BaseWidth)
	w.WriteUint32(d.BaseHeight)

	offsets := make([]uint32, len(d.Surfaces))
	cur := uint32(16 + 8*len(d.Surfaces))
	for i, s := range d.Surfaces {
		offsets[i] = cur
		cur += uint32(len(s.RawData))
	}

	for i, s := range d.Surfaces {
		w.WriteUint32(offsets[i])
		w.WriteUint32(uint32(len(s.RawData)))
	}
	for _, s := range d.Surfaces {
		w.WriteBytes(s.RawData)
	}

	return w.Bytes()
}
