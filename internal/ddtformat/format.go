// Package ddtformat holds the DDT format/usage/alpha byte enums shared
// by the ddt container and the dxt block codec, so neither has to
// import the other just to agree on what format byte 9 means.
package ddtformat

// Alpha classifier byte.
const (
	AlphaNone  uint8 = 0
	AlphaPlayer uint8 = 1
	AlphaTrans uint8 = 4
	AlphaBlend uint8 = 8
)

// Usage bitmask byte.
const (
	UsageStandard  uint8 = 0
	UsageAlphaTest uint8 = 1
	UsageLowDetail uint8 = 2
	UsageBump      uint8 = 4
	UsageCube      uint8 = 8
)

// Format enum byte.
const (
	FormatBGRA  uint8 = 1
	FormatDXT1  uint8 = 4
	FormatDXT1DE uint8 = 5
	FormatGrey  uint8 = 7
	FormatDXT3  uint8 = 8
	FormatDXT5  uint8 = 9
)

// IsDXT reports whether format is one of the four block-compressed
// formats the dxt codec handles.
func IsDXT(format uint8) bool {
	switch format {
	case FormatDXT1, FormatDXT1DE, FormatDXT3, FormatDXT5:
		return true
	default:
		return false
	}
}
