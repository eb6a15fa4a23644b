package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithZeroFrames(true))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(uint64(DefaultMaxDecodedSize)))
}

// Zstd compresses with Zstandard (github.com/klauspost/compress/zstd).
// It is the default: good ratio on float data and a built-in frame checksum.
type Zstd struct {
	// MaxSize caps the decoded size. Zero means DefaultMaxDecodedSize.
	MaxSize int64
}

// Compress encodes src as a single zstd frame.
func (Zstd) Compress(src []byte) ([]byte, error) {
	enc, err := getZstdEncoder()
	if err != nil {
		return nil, err
	}
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(src, nil), nil
}

// Decompress decodes a zstd frame. Output larger than MaxSize fails with
// ErrCorrupt before it is fully allocated.
func (z Zstd) Decompress(src []byte) ([]byte, error) {
	var dec *zstd.Decoder
	if limit := maxSize(z.MaxSize); limit == DefaultMaxDecodedSize {
		d, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.Put(d)
		dec = d
	} else {
		d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(uint64(limit)))
		if err != nil {
			return nil, err
		}
		defer d.Close()
		dec = d
	}

	out, err := dec.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
	}
	return out, nil
}

// Name returns "zstd".
func (Zstd) Name() string { return "zstd" }
