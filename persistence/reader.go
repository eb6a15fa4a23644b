package persistence

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/lunavdb/internal/conv"
)

// Reader decodes a payload produced by Writer.
type Reader struct {
	header Header
	body   []byte // entries only, header and trailer stripped
	pos    int
	read   uint64
}

// NewReader verifies the checksum and header of payload.
// Entries are decoded lazily by Next.
func NewReader(payload []byte) (*Reader, error) {
	if len(payload) < headerSize+checksumSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(payload))
	}

	end := len(payload) - checksumSize
	expected := binary.LittleEndian.Uint32(payload[end:])
	if actual := Checksum(payload[:end]); actual != expected {
		return nil, &ChecksumMismatchError{Expected: expected, Actual: actual}
	}

	h := Header{
		Version:    binary.LittleEndian.Uint32(payload[0:4]),
		Dimension:  binary.LittleEndian.Uint32(payload[4:8]),
		BucketSize: binary.LittleEndian.Uint32(payload[8:12]),
		Count:      binary.LittleEndian.Uint64(payload[12:20]),
	}
	if h.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	if h.Dimension == 0 || h.BucketSize == 0 {
		return nil, fmt.Errorf("%w: dimension=%d bucket=%d", ErrInvalidHeader, h.Dimension, h.BucketSize)
	}

	dim, err := conv.Uint32ToInt(h.Dimension)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	body := payload[headerSize:end]
	// Reject counts the body cannot possibly hold before allocating anything.
	if h.Count > uint64(len(body))/uint64(entrySize(0, dim)) {
		return nil, fmt.Errorf("%w: %d entries declared in %d bytes", ErrTruncated, h.Count, len(body))
	}

	return &Reader{header: h, body: body}, nil
}

// Header returns the decoded header.
func (r *Reader) Header() Header { return r.header }

// Next decodes the next entry. It returns io.EOF after the last entry and
// ErrTrailingData if bytes remain past the declared count.
func (r *Reader) Next() (Entry, error) {
	if r.read == r.header.Count {
		if r.pos != len(r.body) {
			return Entry{}, fmt.Errorf("%w: %d bytes", ErrTrailingData, len(r.body)-r.pos)
		}
		return Entry{}, io.EOF
	}

	rest := r.body[r.pos:]
	if len(rest) < entryFixedSize {
		return Entry{}, fmt.Errorf("%w: entry %d header", ErrTruncated, r.read)
	}
	key := binary.LittleEndian.Uint64(rest[0:8])
	idLen, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(rest[8:12]))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: entry %d: %w", ErrTruncated, r.read, err)
	}

	dim := int(r.header.Dimension)
	if idLen > len(rest)-entryFixedSize || len(rest)-entryFixedSize-idLen < 4*dim {
		return Entry{}, fmt.Errorf("%w: entry %d body", ErrTruncated, r.read)
	}

	off := entryFixedSize
	id := string(rest[off : off+idLen])
	off += idLen

	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(rest[off:]))
		off += 4
	}

	r.pos += off
	r.read++
	return Entry{Key: key, ID: id, Vector: vec}, nil
}
