package distance

// Func is a function type for distance calculation.
type Func func(a, b []float32) float32

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	b = b[:len(a)]

	var s0, s1, s2, s3 float32
	i := 0
	for ; i+4 <= len(a); i += 4 {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
	}
	for ; i < len(a); i++ {
		d := a[i] - b[i]
		s0 += d * d
	}
	return (s0 + s1) + (s2 + s3)
}

// SquaredL2Box returns the squared distance from q to the closest point of the
// axis-aligned box [lo, hi]. It is zero when q lies inside the box.
//
// Terms are accumulated in the same lanes and order as SquaredL2, so for any
// p inside the box SquaredL2Box(q, lo, hi) <= SquaredL2(q, p) holds exactly
// in float32, not just up to rounding.
func SquaredL2Box(q, lo, hi []float32) float32 {
	lo = lo[:len(q)]
	hi = hi[:len(q)]

	var s0, s1, s2, s3 float32
	i := 0
	for ; i+4 <= len(q); i += 4 {
		d0 := boxDelta(q[i], lo[i], hi[i])
		d1 := boxDelta(q[i+1], lo[i+1], hi[i+1])
		d2 := boxDelta(q[i+2], lo[i+2], hi[i+2])
		d3 := boxDelta(q[i+3], lo[i+3], hi[i+3])
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
	}
	for ; i < len(q); i++ {
		d := boxDelta(q[i], lo[i], hi[i])
		s0 += d * d
	}
	return (s0 + s1) + (s2 + s3)
}

// boxDelta is q minus the nearest value in [lo, hi], computed as the same
// subtraction SquaredL2 performs against a point.
func boxDelta(q, lo, hi float32) float32 {
	switch {
	case q < lo:
		return q - lo
	case q > hi:
		return q - hi
	default:
		return 0
	}
}
