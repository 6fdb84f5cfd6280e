package tga

import (
	"testing"

	"github.com/barcodec/barcodec/internal/bcerr"
	"github.com/barcodec/barcodec/internal/ddtformat"
	"github.com/stretchr/testify/require"
)

func TestBytesParseRoundTrip(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	f := New(2, 1, 3, 0, ddtformat.FormatBGRA, 1, raw)

	data := f.Bytes()
	parsed, err := Parse("sky1.(3,0,1,1).tga", data)
	require.NoError(t, err)
	require.Equal(t, f.Width, parsed.Width)
	require.Equal(t, f.Height, parsed.Height)
	require.Equal(t, raw, parsed.RawData)
	require.Equal(t, ImageID{3, 0, 1, 1}, parsed.ImageID)
}

func TestGreyFormatHasNoAlphaBits(t *testing.T) {
	f := New(1, 1, 0, 0, ddtformat.FormatGrey, 0, []byte{0x7F})
	require.Equal(t, uint8(8), f.pixelDepth)
	require.Equal(t, uint8(0), f.imageDesc&alphaBitsMask)
}

func TestParseImageIDRejectsMalformedName(t *testing.T) {
	_, err := parseImageID("x.tga")
	require.ErrorIs(t, err, bcerr.ErrMalformedTgaName)
}

func TestParseImageIDRejectsWrongArity(t *testing.T) {
	_, err := parseImageID("sky1.(0,0,1).tga")
	require.ErrorIs(t, err, bcerr.ErrMalformedTgaName)
}

func TestSuffixedNameFormat(t *testing.T) {
	f := New(1, 1, 0, 0, ddtformat.FormatDXT1, 4, nil)
	require.Equal(t, "sky1.(0,0,4,4).tga", f.SuffixedName("sky1.ddt"))
}
