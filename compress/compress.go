// Package compress provides the byte compressors applied to persisted dumps.
//
// Compressor selection is a breaking-change boundary for the bytes they
// produce, so every dump records the compressor name and Load selects the
// matching implementation with ByName.
package compress

import (
	"errors"
	"slices"
)

// ErrCorrupt is returned when compressed input cannot be decoded.
var ErrCorrupt = errors.New("corrupt compressed data")

// Compressor is a pure bytes-to-bytes transform.
// Implementations must be safe for concurrent use.
type Compressor interface {
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte) ([]byte, error)
	// Name is the stable identifier written into persisted data.
	Name() string
}

// DefaultMaxDecodedSize caps the output of Zstd and Gzip decompression unless
// their MaxSize field says otherwise. It bounds what a corrupt or hostile dump
// can make Load allocate. LZ4 is bounded by its maximum expansion ratio.
const DefaultMaxDecodedSize int64 = 4 << 30

func maxSize(n int64) int64 {
	if n <= 0 {
		return DefaultMaxDecodedSize
	}
	return n
}

// Default is the compressor used when none is configured.
var Default Compressor = Zstd{}

// ByName returns a built-in compressor by its stable name.
func ByName(name string) (Compressor, bool) {
	switch name {
	case Zstd{}.Name():
		return Zstd{}, true
	case LZ4{}.Name():
		return LZ4{}, true
	case Gzip{}.Name():
		return Gzip{}, true
	case None{}.Name():
		return None{}, true
	default:
		return nil, false
	}
}

// Names lists the built-in compressor names.
func Names() []string {
	return []string{Zstd{}.Name(), LZ4{}.Name(), Gzip{}.Name(), None{}.Name()}
}

// None stores bytes unchanged.
type None struct{}

// Compress returns a copy of src.
func (None) Compress(src []byte) ([]byte, error) { return slices.Clone(src), nil }

// Decompress returns a copy of src.
func (None) Decompress(src []byte) ([]byte, error) { return slices.Clone(src), nil }

// Name returns "none".
func (None) Name() string { return "none" }
