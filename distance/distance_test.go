package distance

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 27},
		{"Zero", []float32{0, 0, 0}, []float32{0, 0, 0}, 0},
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"Mixed", []float32{1, -1}, []float32{-1, 1}, 8},
		{"Empty", []float32{}, []float32{}, 0},
		{"Unrolled", []float32{1, 1, 1, 1, 1, 1, 1, 1, 1}, []float32{0, 0, 0, 0, 0, 0, 0, 0, 0}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SquaredL2(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-5)
		})
	}
}

func TestSquaredL2Large(t *testing.T) {
	a := make([]float32, 1024)
	b := make([]float32, 1024)
	for i := range a {
		a[i] = 1
	}
	assert.InDelta(t, 1024, SquaredL2(a, b), 1e-3)
}

func TestSquaredL2Box(t *testing.T) {
	lo := []float32{0, 0}
	hi := []float32{1, 1}

	tests := []struct {
		name     string
		q        []float32
		expected float32
	}{
		{"Inside", []float32{0.5, 0.5}, 0},
		{"OnEdge", []float32{1, 0.5}, 0},
		{"Left", []float32{-2, 0.5}, 4},
		{"Corner", []float32{2, 3}, 1 + 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SquaredL2Box(tt.q, lo, hi), 1e-6)
		})
	}
}

func TestSquaredL2BoxIsLowerBound(t *testing.T) {
	lo := []float32{-1, 2, 0}
	hi := []float32{1, 4, 0.5}
	q := []float32{3, -1, 0.25}
	points := [][]float32{lo, hi, {0, 3, 0.1}, {1, 2, 0.5}}

	bound := SquaredL2Box(q, lo, hi)
	for _, p := range points {
		assert.LessOrEqual(t, bound, SquaredL2(q, p))
	}
}

func TestSquaredL2BoxExactUnderRounding(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, dim := range []int{3, 8, 13, 64} {
		for range 500 {
			q := make([]float32, dim)
			p := make([]float32, dim)
			lo := make([]float32, dim)
			hi := make([]float32, dim)
			for i := range dim {
				q[i] = rng.Float32()*10 - 5
				p[i] = rng.Float32()*10 - 5
				lo[i] = p[i] - rng.Float32()
				hi[i] = p[i] + rng.Float32()
			}

			// A box collapsed onto p must give bit-identical results.
			assert.Equal(t, SquaredL2(q, p), SquaredL2Box(q, p, p))
			assert.LessOrEqual(t, SquaredL2Box(q, lo, hi), SquaredL2(q, p))
		}
	}
}
