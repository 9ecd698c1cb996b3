package storage

import (
	"path/filepath"
	"testing"
)

func TestNewBackend(t *testing.T) {
	dir := t.TempDir()

	b, err := NewBackend("file", dir, 3)
	if err != nil {
		t.Fatalf("NewBackend(file): %v", err)
	}
	if _, ok := b.(*FileBackend); !ok {
		t.Errorf("expected *FileBackend, got %T", b)
	}

	b, err = NewBackend("", dir, 3)
	if err != nil {
		t.Fatalf("NewBackend(''): %v", err)
	}
	if _, ok := b.(*FileBackend); !ok {
		t.Errorf("empty type should default to file, got %T", b)
	}

	b, err = NewBackend("sqlite", dir, 3)
	if err != nil {
		t.Fatalf("NewBackend(sqlite): %v", err)
	}
	if b.Path() != filepath.Join(dir, databaseFileName) {
		t.Errorf("sqlite path = %q", b.Path())
	}
	_ = b.Close()

	b, err = NewBackend("memory", dir, 3)
	if err != nil {
		t.Fatalf("NewBackend(memory): %v", err)
	}
	if _, ok := b.(*MemoryBackend); !ok {
		t.Errorf("expected *MemoryBackend, got %T", b)
	}

	if _, err := NewBackend("redis", dir, 3); err == nil {
		t.Error("expected error for unknown backend type")
	}
}
