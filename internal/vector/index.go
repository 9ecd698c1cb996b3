// Package vector provides flat exact nearest-neighbor indexes over
// fixed-dimension float32 vectors, addressed by position.
package vector

import "errors"

// ErrDimensionMismatch is returned when a vector's length differs from the
// index dimension. Callers match it with errors.Is.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Hit is a single nearest-neighbor result.
type Hit struct {
	Position int     // offset of the stored vector in the index
	Distance float64 // squared L2 distance to the query
}

// Index defines flat vector storage with exact nearest-neighbor search by
// squared L2 distance. Positions are array offsets assigned at insertion and
// reassigned by Rebuild; they are not stable identifiers.
type Index interface {
	// Add appends vec and returns its assigned position (the count before the append).
	Add(vec []float32) (int, error)
	// Search returns the k nearest stored vectors by ascending squared L2
	// distance, k clamped to the current count. Empty result when the index
	// is empty. Ties are ordered by position.
	Search(query []float32, k int) ([]Hit, error)
	// Rebuild atomically replaces all contents with vectors, whose positions
	// become 0..len-1. On error the previous contents are untouched.
	Rebuild(vectors [][]float32) error
	// Vectors returns a copy of the stored vectors in position order.
	Vectors() [][]float32
	Count() int
	Dimensions() int
	Type() string
	Close() error
}
