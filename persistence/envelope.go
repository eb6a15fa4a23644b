package persistence

import (
	"fmt"
	"math"

	"github.com/hupe1980/lunavdb/compress"
)

// Seal compresses payload with c and prefixes the envelope header.
func Seal(payload []byte, c compress.Compressor) ([]byte, error) {
	name := c.Name()
	if len(name) == 0 || len(name) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: invalid name %q", ErrUnknownCodec, name)
	}

	compressed, err := c.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	out := make([]byte, 0, len(Magic)+1+len(name)+len(compressed))
	out = append(out, Magic...)
	out = append(out, byte(len(name)))
	out = append(out, name...)
	out = append(out, compressed...)
	return out, nil
}

// Unseal validates the envelope of blob and returns the decompressed payload
// together with the compressor name recorded in it.
func Unseal(blob []byte) ([]byte, string, error) {
	if len(blob) < len(Magic)+1 {
		return nil, "", fmt.Errorf("%w: %d bytes", ErrTruncated, len(blob))
	}
	if string(blob[:len(Magic)]) != Magic {
		return nil, "", ErrInvalidMagic
	}

	off := len(Magic)
	nameLen := int(blob[off])
	off++
	if nameLen == 0 || len(blob)-off < nameLen {
		return nil, "", fmt.Errorf("%w: compressor name", ErrTruncated)
	}
	name := string(blob[off : off+nameLen])
	off += nameLen

	c, ok := compress.ByName(name)
	if !ok {
		return nil, name, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	payload, err := c.Decompress(blob[off:])
	if err != nil {
		return nil, name, fmt.Errorf("decompress payload: %w", err)
	}
	return payload, name, nil
}
