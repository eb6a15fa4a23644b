package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Gzip compresses with gzip (github.com/klauspost/compress/gzip).
// Slowest of the built-ins; useful when dumps are consumed by other tools.
type Gzip struct {
	// MaxSize caps the decoded size. Zero means DefaultMaxDecodedSize.
	MaxSize int64
}

// Compress encodes src as a gzip stream.
func (Gzip) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress decodes a gzip stream. Output larger than MaxSize fails with
// ErrCorrupt; reading stops one byte past the limit.
func (g Gzip) Decompress(src []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %w", ErrCorrupt, err)
	}
	defer r.Close()

	limit := maxSize(g.MaxSize)
	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %w", ErrCorrupt, err)
	}
	if int64(len(out)) > limit {
		return nil, fmt.Errorf("%w: gzip: decoded size exceeds %d bytes", ErrCorrupt, limit)
	}
	return out, nil
}

// Name returns "gzip".
func (Gzip) Name() string { return "gzip" }
