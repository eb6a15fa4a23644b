package compress

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// LZ4 frame layout: [UncompressedSize uint64][Mode uint8][Data...].
// Mode 0 stores the data raw when LZ4 cannot shrink it.
const (
	lz4HeaderSize = 9
	lz4ModeRaw    = 0
	lz4ModeBlock  = 1

	// LZ4 cannot expand input by more than this factor, which bounds the
	// allocation a corrupt size field can request.
	lz4MaxRatio = 255
)

// LZ4 compresses with LZ4 block compression (github.com/pierrec/lz4/v4).
// Faster than Zstd at a lower ratio.
type LZ4 struct{}

// Compress encodes src as a single LZ4 block with a size header.
func (LZ4) Compress(src []byte) ([]byte, error) {
	out := make([]byte, lz4HeaderSize+lz4.CompressBlockBound(len(src)))
	binary.LittleEndian.PutUint64(out[0:], uint64(len(src)))

	n, err := lz4.CompressBlock(src, out[lz4HeaderSize:], nil)
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(src) {
		// Incompressible
		out[8] = lz4ModeRaw
		out = append(out[:lz4HeaderSize], src...)
		return out, nil
	}

	out[8] = lz4ModeBlock
	return out[:lz4HeaderSize+n], nil
}

// Decompress decodes a block produced by Compress.
func (LZ4) Decompress(src []byte) ([]byte, error) {
	if len(src) < lz4HeaderSize {
		return nil, fmt.Errorf("%w: lz4: block too small for header", ErrCorrupt)
	}
	size := binary.LittleEndian.Uint64(src[0:])
	data := src[lz4HeaderSize:]

	switch src[8] {
	case lz4ModeRaw:
		if uint64(len(data)) != size {
			return nil, fmt.Errorf("%w: lz4: raw block size mismatch", ErrCorrupt)
		}
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	case lz4ModeBlock:
		if size > uint64(len(data))*lz4MaxRatio {
			return nil, fmt.Errorf("%w: lz4: implausible uncompressed size %d", ErrCorrupt, size)
		}
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
		}
		if uint64(n) != size {
			return nil, fmt.Errorf("%w: lz4: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: lz4: unknown block mode %d", ErrCorrupt, src[8])
	}
}

// Name returns "lz4".
func (LZ4) Name() string { return "lz4" }
