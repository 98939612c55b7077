// Package giffix classifies GIF byte streams and repairs their frame-delay
// fields before decode. Decoders treat near-zero delays as unspecified and
// substitute a 100 ms default, so a GIF authored with tiny delays plays far
// too slowly unless the delays are raised at the source.
package giffix

// HeaderLen is the number of leading bytes IsGIF inspects.
const HeaderLen = 6

// IsGIF reports whether header starts with a GIF signature. It only peeks:
// the caller keeps the buffer positioned where it was. Callers holding a
// forward-only stream must materialize a peekable prefix first.
func IsGIF(header []byte) bool {
	if len(header) < HeaderLen {
		return false
	}
	sig := string(header[:HeaderLen])
	return sig == "GIF87a" || sig == "GIF89a"
}
