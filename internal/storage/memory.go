// Package storage provides the in-memory backend for session-only stores.
package storage

import (
	"context"
	"sync"

	"github.com/hyperjump/jinzai/internal/models"
)

// MemoryBackend keeps the saved state in process memory. Nothing survives a
// restart; used for ephemeral CLI sessions and tests.
type MemoryBackend struct {
	vectors [][]float32
	records []models.ResumeRecord
	mu      sync.Mutex
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load returns copies of the last saved state.
func (b *MemoryBackend) Load(ctx context.Context) ([][]float32, []models.ResumeRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return copyVectors(b.vectors), copyRecords(b.records), nil
}

// Save retains copies of vectors and records.
func (b *MemoryBackend) Save(ctx context.Context, vectors [][]float32, records []models.ResumeRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.vectors = copyVectors(vectors)
	b.records = copyRecords(records)
	return nil
}

// Clear drops the retained state.
func (b *MemoryBackend) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.vectors = nil
	b.records = nil
	return nil
}

// Path returns empty; there is no backing location.
func (b *MemoryBackend) Path() string {
	return ""
}

// Close is a no-op for MemoryBackend.
func (b *MemoryBackend) Close() error {
	return nil
}

func copyVectors(vectors [][]float32) [][]float32 {
	if vectors == nil {
		return nil
	}
	out := make([][]float32, len(vectors))
	for i, vec := range vectors {
		v := make([]float32, len(vec))
		copy(v, vec)
		out[i] = v
	}
	return out
}

func copyRecords(records []models.ResumeRecord) []models.ResumeRecord {
	if records == nil {
		return nil
	}
	out := make([]models.ResumeRecord, len(records))
	copy(out, records)
	return out
}
