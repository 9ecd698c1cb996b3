// Package storage persists the vector index contents and the resume catalog
// as a matched pair.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/jinzai/internal/models"
)

// ErrCorruptArtifacts is returned by Load when the persisted vector and
// catalog artifacts disagree: one half of the pair is missing, or the vector
// count differs from the record count.
var ErrCorruptArtifacts = errors.New("persisted artifacts are desynchronized")

// Backend persists vectors and their records as one logical unit.
//
// Load returns empty slices when nothing has been persisted yet. A crash
// between writes must never produce a silently desynchronized pair on the
// next Load: the file backend writes each artifact temp-then-rename and
// cross-checks counts on Load, the sqlite backend writes both tables in a
// single transaction.
type Backend interface {
	Load(ctx context.Context) ([][]float32, []models.ResumeRecord, error)
	Save(ctx context.Context, vectors [][]float32, records []models.ResumeRecord) error
	// Clear removes the persisted artifacts. Idempotent.
	Clear(ctx context.Context) error
	// Path identifies the backing location for status reporting; empty for
	// the in-memory backend.
	Path() string
	Close() error
}
