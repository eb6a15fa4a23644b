package persistence

import "errors"

const (
	// FormatVersion is the current payload format version.
	FormatVersion uint32 = 1

	// Magic identifies a sealed dump (ASCII "LVDB").
	Magic = "LVDB"

	headerSize   = 4 + 4 + 4 + 8
	checksumSize = 4
	// Fixed part of an entry: key and identifier length.
	entryFixedSize = 8 + 4

	// Upper bound on entries a writer reserves space for up front.
	maxPrealloc = 1 << 16
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported format version")
	ErrInvalidHeader  = errors.New("invalid header")
	ErrTruncated      = errors.New("truncated data")
	ErrTrailingData   = errors.New("trailing data after last entry")
	ErrUnknownCodec   = errors.New("unknown compressor")
	ErrEntryDimension = errors.New("entry vector has wrong dimension")
	ErrEntryCount     = errors.New("entry count does not match header")
)

// Header is the fixed-size prefix of a payload.
type Header struct {
	Version    uint32
	Dimension  uint32
	BucketSize uint32
	Count      uint64
}

// Entry is one persisted index entry.
type Entry struct {
	Key    uint64
	ID     string
	Vector []float32
}

func entrySize(idLen, dim int) int {
	return entryFixedSize + idLen + 4*dim
}
