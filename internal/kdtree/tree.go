// Package kdtree implements a bucketed k-d tree for exact k-nearest-neighbor
// search under squared Euclidean distance.
//
// Points live in leaf buckets of bounded capacity. A bucket that overflows is
// split on the axis of widest spread at the value boundary closest to the
// median. Every node keeps the bounding box of all points ever inserted below
// it. Deletions never shrink boxes, so a box is always a superset of its
// points and its distance to a query is always a valid lower bound.
//
// A Tree is not safe for concurrent use.
package kdtree

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/lunavdb/internal/queue"
)

var (
	// ErrPointNotFound is returned by Remove when no item matches both the
	// point and the key exactly.
	ErrPointNotFound = errors.New("point not found")

	// ErrInvalidConfig is returned by New for a non-positive dimension or bucket size.
	ErrInvalidConfig = errors.New("invalid tree configuration")
)

// ErrDimensionMismatch indicates a point whose length differs from the tree dimension.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Neighbor is a search result: the key of a stored point and its squared
// distance to the query.
type Neighbor = queue.Item

// Tree is a bucketed k-d tree keyed by uint64.
type Tree struct {
	dim        int
	bucketSize int
	root       *node
	size       int
}

// New creates an empty tree for points of length dim with leaf buckets of
// at most bucketSize points.
func New(dim, bucketSize int) (*Tree, error) {
	if dim <= 0 || bucketSize <= 0 {
		return nil, fmt.Errorf("%w: dimension=%d bucket size=%d", ErrInvalidConfig, dim, bucketSize)
	}
	return &Tree{dim: dim, bucketSize: bucketSize}, nil
}

// Dimension returns the point length.
func (t *Tree) Dimension() int { return t.dim }

// BucketSize returns the leaf bucket capacity.
func (t *Tree) BucketSize() int { return t.bucketSize }

// Len returns the number of stored points.
func (t *Tree) Len() int { return t.size }

// Reset removes all points.
func (t *Tree) Reset() {
	t.root = nil
	t.size = 0
}

// Insert adds point under key. The tree takes ownership of point; the caller
// must not modify it afterwards.
func (t *Tree) Insert(point []float32, key uint64) error {
	if err := t.checkDim(point); err != nil {
		return err
	}
	if t.root == nil {
		t.root = &node{}
	}

	n := t.root
	for {
		n.expand(point)
		if n.isLeaf() {
			break
		}
		n = n.child(point)
	}

	n.items = append(n.items, item{key: key, vec: point})
	t.size++

	if len(n.items) > t.bucketSize {
		n.splitLeaf(t.dim)
	}
	return nil
}

// Remove deletes the item whose key equals key and whose coordinates are
// bit-identical to point. Buckets are never merged after a removal.
func (t *Tree) Remove(point []float32, key uint64) error {
	if err := t.checkDim(point); err != nil {
		return err
	}
	if t.root == nil {
		return ErrPointNotFound
	}

	n := t.root
	for !n.isLeaf() {
		n = n.child(point)
	}

	for i, it := range n.items {
		if it.key == key && sameBits(it.vec, point) {
			last := len(n.items) - 1
			n.items[i] = n.items[last]
			n.items[last] = item{}
			n.items = n.items[:last]
			t.size--
			if t.size == 0 {
				t.root = nil
			}
			return nil
		}
	}
	return ErrPointNotFound
}

// Range calls fn for every stored point until fn returns false.
// The order is unspecified.
func (t *Tree) Range(fn func(key uint64, point []float32) bool) {
	if t.root == nil {
		return
	}
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.isLeaf() {
			stack = append(stack, n.right, n.left)
			continue
		}
		for _, it := range n.items {
			if !fn(it.key, it.vec) {
				return
			}
		}
	}
}

// Stats describes the shape of a tree.
type Stats struct {
	Nodes     int
	Leaves    int
	Depth     int
	MaxBucket int
}

// Stats walks the tree and reports its shape.
func (t *Tree) Stats() Stats {
	var s Stats
	if t.root == nil {
		return s
	}
	type frame struct {
		n     *node
		depth int
	}
	stack := []frame{{t.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.Nodes++
		s.Depth = max(s.Depth, f.depth)
		if f.n.isLeaf() {
			s.Leaves++
			s.MaxBucket = max(s.MaxBucket, len(f.n.items))
			continue
		}
		stack = append(stack, frame{f.n.left, f.depth + 1}, frame{f.n.right, f.depth + 1})
	}
	return s
}

func (t *Tree) checkDim(point []float32) error {
	if len(point) != t.dim {
		return &ErrDimensionMismatch{Expected: t.dim, Actual: len(point)}
	}
	return nil
}

func sameBits(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			return false
		}
	}
	return true
}

type item struct {
	key uint64
	vec []float32
}

type node struct {
	// Bounding box; nil until the first point passes through.
	lo, hi []float32

	// Internal nodes.
	axis        int
	split       float32
	left, right *node

	// Leaves.
	items []item
}

func (n *node) isLeaf() bool { return n.left == nil }

// child routes a point: strictly below the split value goes left.
func (n *node) child(point []float32) *node {
	if point[n.axis] < n.split {
		return n.left
	}
	return n.right
}

func (n *node) expand(point []float32) {
	if n.lo == nil {
		n.lo = slices.Clone(point)
		n.hi = slices.Clone(point)
		return
	}
	for i, v := range point {
		if v < n.lo[i] {
			n.lo[i] = v
		}
		if v > n.hi[i] {
			n.hi[i] = v
		}
	}
}

// splitLeaf turns an overflowing leaf into an internal node with two non-empty
// leaf children. A bucket of identical points cannot be split and is left
// as an oversized leaf.
func (n *node) splitLeaf(dim int) {
	axis, ok := widestAxis(n.items, dim)
	if !ok {
		return
	}

	vals := make([]float32, len(n.items))
	for i, it := range n.items {
		vals[i] = it.vec[axis]
	}
	slices.Sort(vals)

	cut, ok := medianBoundary(vals)
	if !ok {
		return
	}

	left := &node{items: make([]item, 0, len(n.items)/2+1)}
	right := &node{items: make([]item, 0, len(n.items)/2+1)}
	for _, it := range n.items {
		dst := right
		if it.vec[axis] < cut {
			dst = left
		}
		dst.items = append(dst.items, it)
		dst.expand(it.vec)
	}

	n.axis = axis
	n.split = cut
	n.left = left
	n.right = right
	n.items = nil
}

// widestAxis returns the axis with the largest coordinate spread across items.
// It reports false when every axis has zero spread.
func widestAxis(items []item, dim int) (int, bool) {
	best, bestSpread := 0, float32(0)
	for a := 0; a < dim; a++ {
		lo, hi := items[0].vec[a], items[0].vec[a]
		for _, it := range items[1:] {
			v := it.vec[a]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if spread := hi - lo; spread > bestSpread {
			best, bestSpread = a, spread
		}
	}
	return best, bestSpread > 0
}

// medianBoundary picks the split value from sorted values. It chooses the
// value boundary closest to the middle so that both sides are non-empty:
// everything below the returned value goes left, the rest goes right.
func medianBoundary(sorted []float32) (float32, bool) {
	mid := len(sorted) / 2
	for off := 0; off < len(sorted); off++ {
		for _, i := range [2]int{mid - off, mid + off} {
			if i >= 1 && i < len(sorted) && sorted[i-1] < sorted[i] {
				return sorted[i], true
			}
		}
	}
	return 0, false
}
