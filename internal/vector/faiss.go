//go:build faiss && cgo
// +build faiss,cgo

// Package vector provides a FAISS-backed flat index for larger pools.
package vector

/*
#cgo CFLAGS: -I/opt/homebrew/include -I/usr/local/include
#cgo LDFLAGS: -L/opt/homebrew/lib -L/usr/local/lib -lfaiss_c

#include <stdlib.h>
#include <faiss/c_api/Index_c.h>
#include <faiss/c_api/index_factory_c.h>
#include <faiss/c_api/error_c.h>
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

// FAISSIndex wraps a FAISS flat L2 index. Exact search, same semantics as
// FlatIndex; FAISS assigns sequential labels on add, which are exactly the
// positions this package exposes, so no label mapping is kept.
type FAISSIndex struct {
	index      *C.FaissIndex
	dimensions int
	mu         sync.RWMutex
}

// NewFAISSIndex creates a FAISS flat L2 index with the given dimension.
func NewFAISSIndex(dimensions int) (*FAISSIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	index, err := newFlatL2(dimensions)
	if err != nil {
		return nil, err
	}
	return &FAISSIndex{
		index:      index,
		dimensions: dimensions,
	}, nil
}

func newFlatL2(dimensions int) (*C.FaissIndex, error) {
	desc := C.CString("Flat")
	defer C.free(unsafe.Pointer(desc))
	var index *C.FaissIndex
	ret := C.faiss_index_factory(&index, C.int(dimensions), desc, C.METRIC_L2)
	if ret != 0 {
		return nil, fmt.Errorf("failed to create FAISS index: %s", faissLastError())
	}
	return index, nil
}

// faissLastError returns the last FAISS error message.
func faissLastError() string {
	cErr := C.faiss_get_last_error()
	if cErr == nil {
		return "unknown error"
	}
	return C.GoString(cErr)
}

// Type returns the index type identifier.
func (f *FAISSIndex) Type() string {
	return string(IndexTypeFAISS)
}

// Add appends vec and returns its assigned position.
func (f *FAISSIndex) Add(vec []float32) (int, error) {
	if len(vec) != f.dimensions {
		return 0, fmt.Errorf("add: got %d dimensions, expected %d: %w", len(vec), f.dimensions, ErrDimensionMismatch)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	position := int(C.faiss_Index_ntotal(f.index))
	ret := C.faiss_Index_add(f.index, 1, (*C.float)(unsafe.Pointer(&vec[0])))
	if ret != 0 {
		return 0, fmt.Errorf("failed to add vector to FAISS index: %s", faissLastError())
	}
	return position, nil
}

// Search returns the k nearest vectors by ascending squared L2 distance.
func (f *FAISSIndex) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != f.dimensions {
		return nil, fmt.Errorf("search: got %d dimensions, expected %d: %w", len(query), f.dimensions, ErrDimensionMismatch)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if k <= 0 {
		return nil, nil
	}
	ntotal := int(C.faiss_Index_ntotal(f.index))
	if ntotal == 0 {
		return nil, nil
	}
	if k > ntotal {
		k = ntotal
	}

	distances := make([]float32, k)
	labels := make([]int64, k)
	ret := C.faiss_Index_search(
		f.index,
		1,
		(*C.float)(unsafe.Pointer(&query[0])),
		C.idx_t(k),
		(*C.float)(unsafe.Pointer(&distances[0])),
		(*C.idx_t)(unsafe.Pointer(&labels[0])),
	)
	if ret != 0 {
		return nil, fmt.Errorf("FAISS search failed: %s", faissLastError())
	}

	hits := make([]Hit, 0, k)
	for i := 0; i < k; i++ {
		if labels[i] < 0 {
			continue
		}
		hits = append(hits, Hit{Position: int(labels[i]), Distance: float64(distances[i])})
	}
	return hits, nil
}

// Rebuild replaces all contents with vectors; positions become 0..len-1.
// Builds a fresh FAISS index and swaps it in, so an error leaves the old
// contents untouched.
func (f *FAISSIndex) Rebuild(vectors [][]float32) error {
	next, err := newFlatL2(f.dimensions)
	if err != nil {
		return err
	}
	for i, vec := range vectors {
		if len(vec) != f.dimensions {
			C.faiss_Index_free(next)
			return fmt.Errorf("rebuild: vector %d has %d dimensions, expected %d: %w", i, len(vec), f.dimensions, ErrDimensionMismatch)
		}
		ret := C.faiss_Index_add(next, 1, (*C.float)(unsafe.Pointer(&vec[0])))
		if ret != 0 {
			C.faiss_Index_free(next)
			return fmt.Errorf("rebuild: failed to add vector %d: %s", i, faissLastError())
		}
	}
	f.mu.Lock()
	old := f.index
	f.index = next
	f.mu.Unlock()
	if old != nil {
		C.faiss_Index_free(old)
	}
	return nil
}

// Vectors reconstructs and returns all stored vectors in position order.
func (f *FAISSIndex) Vectors() [][]float32 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ntotal := int(C.faiss_Index_ntotal(f.index))
	out := make([][]float32, 0, ntotal)
	for i := 0; i < ntotal; i++ {
		vec := make([]float32, f.dimensions)
		ret := C.faiss_Index_reconstruct(f.index, C.idx_t(i), (*C.float)(unsafe.Pointer(&vec[0])))
		if ret != 0 {
			continue
		}
		out = append(out, vec)
	}
	return out
}

// Count returns the number of stored vectors.
func (f *FAISSIndex) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return int(C.faiss_Index_ntotal(f.index))
}

// Dimensions returns the configured vector dimension.
func (f *FAISSIndex) Dimensions() int {
	return f.dimensions
}

// Close frees the FAISS index resources.
func (f *FAISSIndex) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.index != nil {
		C.faiss_Index_free(f.index)
		f.index = nil
	}
	return nil
}
