package giffix

import (
	"errors"
	"fmt"
	"io"
)

// MinDelay is the smallest per-frame delay, in hundredths of a second, that
// decoders honor. Anything below it is treated as unspecified and replaced
// with a 100 ms default, so Rewrite raises such fields to MinDelay instead.
const MinDelay = 2

var errTruncated = errors.New("giffix: truncated gif stream")

// Rewrite reads an entire GIF stream and returns it with every Graphic
// Control Extension delay below MinDelay raised to MinDelay. All other bytes
// pass through unchanged. The output is fully materialized: the decoder
// downstream needs a bounded, seekable buffer.
func Rewrite(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("giffix: read source: %w", err)
	}
	if len(b) < 13 || !IsGIF(b) {
		return nil, errors.New("giffix: not a gif stream")
	}

	// Logical screen descriptor, then the global color table if present.
	offset := 13
	if b[10]&0x80 != 0 {
		offset += 3 * (2 << (b[10] & 0x07))
	}

	for {
		if offset >= len(b) {
			return nil, errTruncated
		}
		separator := b[offset]
		offset++
		switch separator {
		case 0x3B: // trailer
			return b, nil
		case 0x21: // extension
			if offset >= len(b) {
				return nil, errTruncated
			}
			label := b[offset]
			offset++
			if label == 0xF9 {
				// Graphic control: size byte, flags, 16-bit delay
				// (little endian), transparent index, terminator.
				if offset+5 >= len(b) {
					return nil, errTruncated
				}
				delay := int(b[offset+2]) | int(b[offset+3])<<8
				if delay < MinDelay {
					b[offset+2] = MinDelay
					b[offset+3] = 0
				}
			}
			offset, err = skipSubBlocks(b, offset)
			if err != nil {
				return nil, err
			}
		case 0x2C: // image descriptor
			if offset+9 > len(b) {
				return nil, errTruncated
			}
			flags := b[offset+8]
			offset += 9
			if flags&0x80 != 0 {
				offset += 3 * (2 << (flags & 0x07))
			}
			offset++ // LZW minimum code size
			offset, err = skipSubBlocks(b, offset)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("giffix: unknown block separator 0x%02X", separator)
		}
	}
}

// skipSubBlocks advances past a chain of (size, data...) sub-blocks,
// returning the offset just after the zero-size terminator.
func skipSubBlocks(b []byte, offset int) (int, error) {
	for {
		if offset >= len(b) {
			return 0, errTruncated
		}
		n := int(b[offset])
		offset++
		if n == 0 {
			return offset, nil
		}
		offset += n
		if offset > len(b) {
			return 0, errTruncated
		}
	}
}
