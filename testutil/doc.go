// Package testutil provides testing utilities for lunavdb.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random vectors and identifiers and for
// computing exact nearest neighbors by brute force.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.UniformRangeVectors(1000, 64)
//	ids := rng.IDs(1000, 10)
//
// # Ground Truth
//
//	want := testutil.ExactTopK(query, ids, vecs, k)
package testutil
