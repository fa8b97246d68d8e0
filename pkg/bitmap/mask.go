package bitmap

// Canonical single-byte channel masks.
const (
	maskByte0 = 0x000000FF
	maskByte1 = 0x0000FF00
	maskByte2 = 0x00FF0000
	maskByte3 = 0xFF000000
)

// MaskMap resolves a channel mask to the byte of a packed pixel holding that
// channel. Only the four byte-aligned single-byte masks resolve; any other
// pattern, including 0 and multi-byte spans, reports ok == false and the
// channel is treated as absent.
func MaskMap(mask uint32) (idx int, ok bool) {
	switch mask {
	case maskByte3:
		return 3, true
	case maskByte2:
		return 2, true
	case maskByte1:
		return 1, true
	case maskByte0:
		return 0, true
	}
	return 0, false
}
