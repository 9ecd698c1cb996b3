// Package storage provides a factory selecting the persistence backend.
package storage

import (
	"fmt"
	"path/filepath"
)

// BackendType represents the persistence backend to use.
type BackendType string

const (
	// BackendTypeFile stores a binary vector artifact and a JSON catalog
	// artifact under the data directory.
	BackendTypeFile BackendType = "file"
	// BackendTypeSQLite stores both halves in one SQLite database.
	BackendTypeSQLite BackendType = "sqlite"
	// BackendTypeMemory keeps state in process memory only.
	BackendTypeMemory BackendType = "memory"
)

// databaseFileName is the SQLite artifact under the data directory.
const databaseFileName = "resumes.db"

// NewBackend creates a persistence backend of the specified type rooted at
// dataDir. Supported types: "file" (default), "sqlite", "memory".
func NewBackend(backendType, dataDir string, dimensions int) (Backend, error) {
	switch BackendType(backendType) {
	case BackendTypeFile, "":
		return NewFileBackend(dataDir, dimensions)
	case BackendTypeSQLite:
		return NewSQLiteBackend(filepath.Join(dataDir, databaseFileName), dimensions)
	case BackendTypeMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s (supported: file, sqlite, memory)", backendType)
	}
}
