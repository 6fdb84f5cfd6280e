// Package sound implements the encoded-WAV deobfuscator: a 64-bit
// keystream XOR cipher applied to fixed-size blocks of an obfuscated
// RIFF/WAVE container.
package sound

import (
	"encoding/binary"
	"math/bits"

	"github.com/barcodec/barcodec/internal/bcerr"
)

const (
	constA      uint64 = 0x23966BA95E28C33F
	constB      uint64 = 0x39BAE3441DB35873
	initialState uint64 = 0x2AF92545ADDE0B65

	riffSignature uint32 = 0x46464952 // "RIFF"
)

// EncodedSignature is the leading 4 bytes of an obfuscated WAV
// payload, as found in a BAR entry's raw bytes before Decode runs.
const EncodedSignature uint32 = 0xB4428C6D

// Decode reverses the keystream XOR cipher over ciphertext, which need
// not be a multiple of 8 bytes: the final partial block is treated as
// if zero-padded, and the result is truncated back to len(ciphertext).
// Decode asserts the decoded output begins with the RIFF magic and
// returns ErrNotValidDecodedWavSignature if it does not.
func Decode(ciphertext []byte) ([]byte, error) {
	nonPadded := len(ciphertext)
	padding := (8 - nonPadded%8) % 8

	padded := make([]byte, nonPadded+padding)
	copy(padded, ciphertext)

	decoded := make([]byte, 0, len(padded))
	state := initialState

	for off := 0; off < len(padded); off += 8 {
		block := binary.LittleEndian.Uint64(padded[off : off+8])

		state = bits.RotateLeft64(constB*(state+constA), 32)
		block ^= state

		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], block)
		decoded = append(decoded, buf[:]...)
	}

	decoded = decoded[:nonPadded]

	if len(decoded) < 4 || binary.LittleEndian.Uint32(decoded[:4]) != riffSignature {
		return nil, bcerr.ErrNotValidDecodedWavSignature
	}
	return decoded, nil
}
