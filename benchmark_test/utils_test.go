package benchmark_test

import (
	"strconv"
	"testing"

	"github.com/hupe1980/lunavdb"
	"github.com/hupe1980/lunavdb/testutil"
)

const (
	dimSmall  = 32
	dimMedium = 128
	dimLarge  = lunavdb.DefaultDimension

	sizeTiny  = 1_000
	sizeSmall = 10_000
)

const benchSeed = 4711

func formatCount(n int) string {
	switch {
	case n >= 1_000_000 && n%1_000_000 == 0:
		return strconv.Itoa(n/1_000_000) + "M"
	case n >= 1_000 && n%1_000 == 0:
		return strconv.Itoa(n/1_000) + "K"
	default:
		return strconv.Itoa(n)
	}
}

// makeItems returns n clustered items of the given dimension together with
// their ids and vectors for ground-truth computation.
func makeItems(n, dim int) ([]lunavdb.Item, []string, [][]float32) {
	rng := testutil.NewRNG(benchSeed)
	ids := rng.IDs(n, 12)
	vectors := rng.ClusteredVectors(n, dim, 16, 0.05)

	items := make([]lunavdb.Item, n)
	for i := range items {
		items[i] = lunavdb.Item{ID: ids[i], Embedding: vectors[i]}
	}
	return items, ids, vectors
}

func makeQueries(n, dim int) [][]float32 {
	return testutil.NewRNG(benchSeed+1).UniformRangeVectors(n, dim)
}

func setupIndex(b *testing.B, dim, n int, opts ...lunavdb.Option) (*lunavdb.DB, []string, [][]float32) {
	b.Helper()

	items, ids, vectors := makeItems(n, dim)
	opts = append([]lunavdb.Option{lunavdb.WithDimension(dim)}, opts...)
	db, err := lunavdb.New(items, opts...)
	if err != nil {
		b.Fatal(err)
	}
	return db, ids, vectors
}

// recallAtK is the fraction of truth ids present in results.
func recallAtK(results []lunavdb.Result, truth []testutil.SearchResult) float64 {
	if len(truth) == 0 {
		return 1
	}
	want := make(map[string]struct{}, len(truth))
	for _, r := range truth {
		want[r.ID] = struct{}{}
	}
	hits := 0
	for _, r := range results {
		if _, ok := want[r.ID]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(truth))
}
