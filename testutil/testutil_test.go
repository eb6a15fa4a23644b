package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lunavdb/internal/identity"
)

func TestUniformRangeVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformRangeVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
	for _, vec := range v {
		for _, x := range vec {
			assert.GreaterOrEqual(t, x, float32(-1))
			assert.Less(t, x, float32(1))
		}
	}
}

func TestClusteredVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.ClusteredVectors(100, 32, 5, 0.1)

	assert.Equal(t, 100, len(v))
	assert.Equal(t, 32, len(v[0]))
}

func TestIDs(t *testing.T) {
	rng := NewRNG(4711)

	ids := rng.IDs(500, 3)
	require.Len(t, ids, 500)

	seen := make(map[string]struct{})
	for _, id := range ids {
		assert.Len(t, id, 3)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 500)
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.UniformRangeVectors(1, 10)
	rng.Reset()
	v2 := rng.UniformRangeVectors(1, 10)
	assert.Equal(t, v1, v2)
}

func TestExactTopK(t *testing.T) {
	ids := []string{"a", "b", "c"}
	vecs := [][]float32{{0, 0}, {3, 0}, {1, 0}}

	got := ExactTopK([]float32{0, 0}, ids, vecs, 2)
	assert.Equal(t, []SearchResult{{ID: "a", Distance: 0}, {ID: "c", Distance: 1}}, got)

	all := ExactTopK([]float32{0, 0}, ids, vecs, 10)
	assert.Len(t, all, 3)

	tied := ExactTopK([]float32{0, 0}, []string{"x", "y", "z"}, [][]float32{{1, 0}, {0, 1}, {-1, 0}}, 3)
	require.Len(t, tied, 3)
	for i := 1; i < len(tied); i++ {
		assert.Equal(t, float32(1), tied[i].Distance)
		assert.Less(t, identity.Hash(tied[i-1].ID), identity.Hash(tied[i].ID))
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, []float32{1, 2, 0, 0}, Pad([]float32{1, 2}, 4))
	assert.Equal(t, []float32{1}, Pad([]float32{1, 2}, 1))
}
