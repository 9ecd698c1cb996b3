// Package vector provides the default pure-Go flat index, used when FAISS is
// not compiled in.
package vector

import (
	"fmt"
	"sort"
	"sync"
)

// FlatIndex is an in-memory flat index using brute-force squared L2 search.
// Append-only; removal happens through Rebuild. Search cost is O(N log N) in
// the stored count, which is fine for the resume pools this serves.
type FlatIndex struct {
	dimensions int
	vectors    [][]float32
	mu         sync.RWMutex
}

// NewFlatIndex creates a flat index with the given dimension.
func NewFlatIndex(dimensions int) (*FlatIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &FlatIndex{
		dimensions: dimensions,
		vectors:    make([][]float32, 0),
	}, nil
}

// Type returns the index type identifier.
func (f *FlatIndex) Type() string {
	return string(IndexTypeFlat)
}

// Add appends vec and returns its assigned position.
func (f *FlatIndex) Add(vec []float32) (int, error) {
	if len(vec) != f.dimensions {
		return 0, fmt.Errorf("add: got %d dimensions, expected %d: %w", len(vec), f.dimensions, ErrDimensionMismatch)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v := make([]float32, f.dimensions)
	copy(v, vec)
	f.vectors = append(f.vectors, v)
	return len(f.vectors) - 1, nil
}

// Search returns the k nearest vectors by ascending squared L2 distance.
func (f *FlatIndex) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != f.dimensions {
		return nil, fmt.Errorf("search: got %d dimensions, expected %d: %w", len(query), f.dimensions, ErrDimensionMismatch)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if k <= 0 || len(f.vectors) == 0 {
		return nil, nil
	}
	hits := make([]Hit, len(f.vectors))
	for i, vec := range f.vectors {
		hits[i] = Hit{Position: i, Distance: SquaredL2(query, vec)}
	}
	// Stable keeps equal distances in position order.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k:k], nil
}

// Rebuild replaces all contents with vectors; positions become 0..len-1.
// Validation and copying happen before the swap, so a dimension error leaves
// the index unchanged.
func (f *FlatIndex) Rebuild(vectors [][]float32) error {
	next := make([][]float32, len(vectors))
	for i, vec := range vectors {
		if len(vec) != f.dimensions {
			return fmt.Errorf("rebuild: vector %d has %d dimensions, expected %d: %w", i, len(vec), f.dimensions, ErrDimensionMismatch)
		}
		v := make([]float32, f.dimensions)
		copy(v, vec)
		next[i] = v
	}
	f.mu.Lock()
	f.vectors = next
	f.mu.Unlock()
	return nil
}

// Vectors returns a copy of the stored vectors in position order.
func (f *FlatIndex) Vectors() [][]float32 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([][]float32, len(f.vectors))
	for i, vec := range f.vectors {
		v := make([]float32, len(vec))
		copy(v, vec)
		out[i] = v
	}
	return out
}

// Count returns the number of stored vectors.
func (f *FlatIndex) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.vectors)
}

// Dimensions returns the configured vector dimension.
func (f *FlatIndex) Dimensions() int {
	return f.dimensions
}

// Close is a no-op for FlatIndex.
func (f *FlatIndex) Close() error {
	return nil
}
