//go:build !faiss || !cgo
// +build !faiss !cgo

// Package vector provides a stub for FAISS when the faiss build tag is not set.
package vector

import "fmt"

// FAISSIndex is a stub that returns an error when FAISS is not available.
// Build with -tags=faiss to enable FAISS support.
type FAISSIndex struct{}

// NewFAISSIndex returns an error because FAISS is not available.
func NewFAISSIndex(dimensions int) (*FAISSIndex, error) {
	return nil, fmt.Errorf("FAISS not available: build with -tags=faiss and install FAISS library")
}

// Add is not implemented without FAISS.
func (f *FAISSIndex) Add(vec []float32) (int, error) {
	return 0, fmt.Errorf("FAISS not available")
}

// Search is not implemented without FAISS.
func (f *FAISSIndex) Search(query []float32, k int) ([]Hit, error) {
	return nil, fmt.Errorf("FAISS not available")
}

// Rebuild is not implemented without FAISS.
func (f *FAISSIndex) Rebuild(vectors [][]float32) error {
	return fmt.Errorf("FAISS not available")
}

// Vectors returns nil without FAISS.
func (f *FAISSIndex) Vectors() [][]float32 {
	return nil
}

// Count returns 0 without FAISS.
func (f *FAISSIndex) Count() int {
	return 0
}

// Dimensions returns 0 without FAISS.
func (f *FAISSIndex) Dimensions() int {
	return 0
}

// Close is a no-op without FAISS.
func (f *FAISSIndex) Close() error {
	return nil
}

// Type returns the index type identifier.
func (f *FAISSIndex) Type() string {
	return string(IndexTypeFAISS)
}
