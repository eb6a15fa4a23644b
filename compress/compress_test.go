package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"Empty":          {},
		"Small":          []byte("small data that won't benefit from compression"),
		"Repetitive":     bytes.Repeat([]byte("hello world! "), 1000),
		"Incompressible": incompressible(4096),
	}

	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())

		for label, data := range inputs {
			t.Run(name+"/"+label, func(t *testing.T) {
				compressed, err := c.Compress(data)
				require.NoError(t, err)

				decompressed, err := c.Decompress(compressed)
				require.NoError(t, err)
				assert.Equal(t, len(data), len(decompressed))
				if len(data) > 0 {
					assert.Equal(t, data, decompressed)
				}
			})
		}
	}
}

func TestCompressShrinks(t *testing.T) {
	data := bytes.Repeat([]byte("hello world! "), 1000)

	for _, c := range []Compressor{Zstd{}, LZ4{}, Gzip{}} {
		t.Run(c.Name(), func(t *testing.T) {
			compressed, err := c.Compress(data)
			require.NoError(t, err)
			assert.Less(t, len(compressed), len(data)/2)
		})
	}
}

func TestDecompressCorrupt(t *testing.T) {
	garbage := []byte("definitely not a compressed frame")

	for _, c := range []Compressor{Zstd{}, LZ4{}, Gzip{}} {
		t.Run(c.Name(), func(t *testing.T) {
			_, err := c.Decompress(garbage)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestDecompressSizeLimit(t *testing.T) {
	data := bytes.Repeat([]byte{0}, 64<<10)

	for _, tc := range []struct {
		c       Compressor
		limited Compressor
		roomy   Compressor
	}{
		{Zstd{}, Zstd{MaxSize: 1 << 10}, Zstd{MaxSize: 1 << 20}},
		{Gzip{}, Gzip{MaxSize: 1 << 10}, Gzip{MaxSize: int64(len(data))}},
	} {
		t.Run(tc.c.Name(), func(t *testing.T) {
			compressed, err := tc.c.Compress(data)
			require.NoError(t, err)

			_, err = tc.limited.Decompress(compressed)
			assert.ErrorIs(t, err, ErrCorrupt)

			out, err := tc.roomy.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, data, out)
		})
	}
}

func TestLZ4Corrupt(t *testing.T) {
	t.Run("ShortHeader", func(t *testing.T) {
		_, err := LZ4{}.Decompress([]byte{1, 2, 3})
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("ImplausibleSize", func(t *testing.T) {
		frame := make([]byte, lz4HeaderSize+4)
		for i := range 8 {
			frame[i] = 0xff
		}
		frame[8] = lz4ModeBlock
		_, err := LZ4{}.Decompress(frame)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("UnknownMode", func(t *testing.T) {
		frame := make([]byte, lz4HeaderSize)
		frame[8] = 42
		_, err := LZ4{}.Decompress(frame)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("Truncated", func(t *testing.T) {
		compressed, err := LZ4{}.Compress(bytes.Repeat([]byte("abc"), 500))
		require.NoError(t, err)
		_, err = LZ4{}.Decompress(compressed[:len(compressed)-5])
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestByNameUnknown(t *testing.T) {
	_, ok := ByName("brotli")
	assert.False(t, ok)
}

func incompressible(n int) []byte {
	out := make([]byte, n)
	x := uint32(2463534242)
	for i := range out {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		out[i] = byte(x)
	}
	return out
}
