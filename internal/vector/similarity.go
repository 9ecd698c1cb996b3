// Package vector provides distance and score helpers for the indexes.
package vector

import "math"

// SquaredL2 returns the squared Euclidean distance between two vectors.
// Accumulates in float64 so large dimension counts do not lose precision.
// Returns 0 when the lengths differ; callers validate dimensions first.
func SquaredL2(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// Score converts a squared L2 distance to a bounded similarity score
// 1/(1+distance), rounded to 4 decimal digits. The score is monotonically
// decreasing in distance, lies in (0, 1], and is 1.0 only at zero distance.
func Score(distance float64) float64 {
	score := 1 / (1 + distance)
	return math.Round(score*10000) / 10000
}
