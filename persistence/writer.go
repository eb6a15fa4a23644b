package persistence

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/lunavdb/internal/conv"
)

// Writer assembles a payload in memory.
//
// Entries must be written in the order they should be read back; the index
// writes them in ascending key order so equal contents produce equal bytes.
type Writer struct {
	header  Header
	buf     []byte
	written uint64
}

// NewWriter starts a payload with the given header. Version is always set to
// FormatVersion.
func NewWriter(h Header) (*Writer, error) {
	if h.Dimension == 0 || h.BucketSize == 0 {
		return nil, ErrInvalidHeader
	}
	h.Version = FormatVersion

	size := headerSize + checksumSize
	if n, err := conv.Uint64ToInt(h.Count); err == nil && n <= maxPrealloc {
		// Identifier lengths are unknown; reserve for the vectors only.
		size += n * entrySize(0, int(h.Dimension))
	}

	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint32(buf, h.Version)
	buf = binary.LittleEndian.AppendUint32(buf, h.Dimension)
	buf = binary.LittleEndian.AppendUint32(buf, h.BucketSize)
	buf = binary.LittleEndian.AppendUint64(buf, h.Count)

	return &Writer{header: h, buf: buf}, nil
}

// WriteEntry appends one entry.
func (w *Writer) WriteEntry(e Entry) error {
	if w.written >= w.header.Count {
		return fmt.Errorf("%w: more than %d entries", ErrEntryCount, w.header.Count)
	}
	if len(e.Vector) != int(w.header.Dimension) {
		return fmt.Errorf("%w: got %d, want %d", ErrEntryDimension, len(e.Vector), w.header.Dimension)
	}
	idLen, err := conv.IntToUint32(len(e.ID))
	if err != nil {
		return fmt.Errorf("identifier too long: %w", err)
	}

	w.buf = binary.LittleEndian.AppendUint64(w.buf, e.Key)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, idLen)
	w.buf = append(w.buf, e.ID...)
	for _, v := range e.Vector {
		w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
	}
	w.written++
	return nil
}

// Finish appends the checksum trailer and returns the payload.
// The writer must not be used afterwards.
func (w *Writer) Finish() ([]byte, error) {
	if w.written != w.header.Count {
		return nil, fmt.Errorf("%w: wrote %d of %d", ErrEntryCount, w.written, w.header.Count)
	}
	out := binary.LittleEndian.AppendUint32(w.buf, Checksum(w.buf))
	w.buf = nil
	return out, nil
}
