// Package distance provides the distance kernel used for ranking and pruning.
//
// All ranking in lunavdb uses squared Euclidean distance: the sum of squared
// per-coordinate differences. It is monotonic with the true Euclidean distance
// and avoids a square root.
//
// # Usage
//
//	d := distance.SquaredL2(a, b)
package distance
