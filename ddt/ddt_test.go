package ddt

import (
	"testing"

	"github.com/barcodec/barcodec/internal/bcerr"
	"github.com/barcodec/barcodec/internal/ddtformat"
	"github.com/stretchr/testify/require"
)

func buildSingleSurfaceBGRA(t *testing.T, width, height uint32) (*DDT, []byte) {
	t.Helper()
	pixels := make([]byte, width*height*4)
	for i := range pixels {
		pixels[i] = byte(i % 251)
	}

	d := &DDT{
		Usage: ddtformat.UsageStandard, Alpha: 0, Format: ddtformat.FormatBGRA,
		MipmapLevels: 1, BaseWidth: width, BaseHeight: height,
		Surfaces: []Surface{{Width: width, Height: height, RawData: pixels}},
	}
	return d, pixels
}

func TestBytesThenReadRoundTrip(t *testing.T) {
	d, pixels := buildSingleSurfaceBGRA(t, 4, 4)
	data := d.Bytes()

	parsed, err := Read(data)
	require.NoError(t, err)
	require.Equal(t, d.Usage, parsed.Usage)
	require.Equal(t, d.Format, parsed.Format)
	require.Equal(t, d.BaseWidth, parsed.BaseWidth)
	require.Len(t, parsed.Surfaces, 1)
	require.Equal(t, pixels, parsed.Surfaces[0].RawData)
}

func TestReadRejectsBadSignature(t *testing.T) {
	_, err := Read(make([]byte, 32))
	require.ErrorIs(t, err, bcerr.ErrNotValidDdtSignature)
}

func TestDecodeBGRAIsBitwiseIdentity(t *testing.T) {
	d, pixels := buildSingleSurfaceBGRA(t, 4, 4)
	decoded, err := d.Decode()
	require.NoError(t, err)
	require.Equal(t, pixels, decoded)
}

func TestFacesCountsCubemapSixFaces(t *testing.T) {
	require.Equal(t, uint32(1), faces(ddtformat.UsageStandard))
	require.Equal(t, uint32(6), faces(ddtformat.UsageCube))
	require.Equal(t, uint32(6), faces(ddtformat.UsageCube|ddtformat.UsageBump))
}

func TestToTGAFromTGARoundTrip(t *testing.T) {
	d, pixels := buildSingleSurfaceBGRA(t, 4, 4)
	tgaFile, err := d.ToTGA()
	require.NoError(t, err)
	require.Equal(t, pixels, tgaFile.RawData)

	rebuilt, err := FromTGA("sky.(0,0,1,1).tga", tgaFile.Bytes())
	require.NoError(t, err)
	require.Equal(t, d.Format, rebuilt.Format)
	require.Equal(t, pixels, rebuilt.Surfaces[0].RawData)
}
