package storage

import (
	"context"
	"testing"
)

func TestMemoryBackend_RoundTrip(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	vectors, records := testState()
	if err := b.Save(ctx, vectors, records); err != nil {
		t.Fatal(err)
	}

	gotVecs, gotRecs, err := b.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotVecs) != 2 || len(gotRecs) != 2 {
		t.Fatalf("loaded %d vectors, %d records", len(gotVecs), len(gotRecs))
	}

	// Loaded state must be isolated from the backend's copy
	gotVecs[0][0] = 99
	again, _, _ := b.Load(ctx)
	if again[0][0] != 1 {
		t.Error("mutating loaded vectors must not affect the backend")
	}
}

func TestMemoryBackend_Clear(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	vectors, records := testState()
	_ = b.Save(ctx, vectors, records)
	if err := b.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	gotVecs, gotRecs, err := b.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if gotVecs != nil || gotRecs != nil {
		t.Error("Clear left state behind")
	}
}

func TestMemoryBackend_Path(t *testing.T) {
	if NewMemoryBackend().Path() != "" {
		t.Error("memory backend has no path")
	}
}
