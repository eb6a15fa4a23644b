package testutil

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/hupe1980/lunavdb/distance"
	"github.com/hupe1980/lunavdb/internal/identity"
)

// SearchResult represents a search result.
type SearchResult struct {
	ID       string
	Distance float32
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformRangeVectors generates random vectors with values in range [-1, 1).
// Each vector has its own backing array so callers may mutate them freely.
func (r *RNG) UniformRangeVectors(num int, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([][]float32, num)
	for i := range num {
		vec := make([]float32, dimensions)
		for j := range vec {
			vec[j] = r.rand.Float32()*2 - 1
		}
		vectors[i] = vec
	}
	return vectors
}

// ClusteredVectors generates vectors around a few random centroids. Clustered
// data exercises bucket splits far more than uniform noise.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float32) [][]float32 {
	centroids := r.UniformRangeVectors(clusters, dim)

	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([][]float32, num)
	for i := range num {
		centroid := centroids[i%clusters]
		vec := make([]float32, dim)
		for j := range dim {
			vec[j] = centroid[j] + float32(r.rand.NormFloat64())*spread
		}
		vectors[i] = vec
	}
	return vectors
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz"

// ID returns a random lowercase ASCII identifier of the given length.
func (r *RNG) ID(length int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.idLocked(length)
}

func (r *RNG) idLocked(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idAlphabet[r.rand.Intn(len(idAlphabet))]
	}
	return string(b)
}

// IDs returns num distinct random identifiers of the given length.
func (r *RNG) IDs(num, length int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, num)
	ids := make([]string, 0, num)
	for len(ids) < num {
		id := r.idLocked(length)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// ExactTopK ranks every vector against query by squared L2 distance and
// returns the k best. Equal distances are ordered by the key of the id, the
// same order the index uses.
func ExactTopK(query []float32, ids []string, vectors [][]float32, k int) []SearchResult {
	all := make([]SearchResult, len(vectors))
	for i, v := range vectors {
		all[i] = SearchResult{ID: ids[i], Distance: distance.SquaredL2(query, v)}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Distance != all[j].Distance {
			return all[i].Distance < all[j].Distance
		}
		return identity.Hash(all[i].ID) < identity.Hash(all[j].ID)
	})
	if k < len(all) {
		all = all[:k]
	}
	return all
}

// Pad returns a copy of v right-padded with zeros (or truncated) to dim.
func Pad(v []float32, dim int) []float32 {
	out := make([]float32, dim)
	copy(out, v)
	return out
}
