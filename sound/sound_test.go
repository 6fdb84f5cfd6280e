package sound

import (
	"encoding/binary"
	"math/bits"
	"testing"

	"github.com/barcodec/barcodec/internal/bcerr"
	"github.com/stretchr/testify/require"
)

// encodeForTest runs the same keystream in the forward direction
// (plaintext XOR keystream == ciphertext, since XOR is its own
// inverse), letting tests build known-good ciphertext fixtures without
// depending on externally captured game assets.
func encodeForTest(t *testing.T, plaintext []byte) []byte {
	t.Helper()
	padding := (8 - len(plaintext)%8) % 8
	padded := make([]byte, len(plaintext)+padding)
	copy(padded, plaintext)

	out := make([]byte, len(padded))
	state := initialState
	for off := 0; off < len(padded); off += 8 {
		block := binary.LittleEndian.Uint64(padded[off : off+8])
		state = bits.RotateLeft64(constB*(state+constA), 32)
		block ^= state
		binary.LittleEndian.PutUint32(out[off:], uint32(block))
		binary.LittleEndian.PutUint32(out[off+4:], uint32(block>>32))
	}
	return out[:len(plaintext)]
}

func TestDecodeRoundTrip(t *testing.T) {
	plaintext := make([]byte, 0, 40)
	plaintext = append(plaintext, []byte("RIFF")...)
	plaintext = append(plaintext, []byte("\x24\x00\x00\x00WAVEfmt ")...)
	plaintext = append(plaintext, make([]byte, 24)...)

	ciphertext := encodeForTest(t, plaintext)

	decoded, err := Decode(ciphertext)
	require.NoError(t, err)
	require.Equal(t, plaintext, decoded)
}

func TestDecodeRequiresRiffSignature(t *testing.T) {
	ciphertext := encodeForTest(t, []byte("not a riff payload at all!!"))
	_, err := Decode(ciphertext)
	require.ErrorIs(t, err, bcerr.ErrNotValidDecodedWavSignature)
}

func TestDecodeHandlesNonMultipleOf8Length(t *testing.T) {
	plaintext := []byte("RIFF\x05\x00\x00\x00extra")
	ciphertext := encodeForTest(t, plaintext)
	require.Equal(t, len(plaintext), len(ciphertext))

	decoded, err := Decode(ciphertext)
	require.NoError(t, err)
	require.Equal(t, plaintext, decoded)
}
