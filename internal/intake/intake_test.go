package intake

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hyperjump/jinzai/internal/embedding"
	"github.com/hyperjump/jinzai/internal/extract"
	"github.com/hyperjump/jinzai/internal/storage"
	"github.com/hyperjump/jinzai/internal/store"
	"github.com/hyperjump/jinzai/internal/vector"
)

const testDims = 16

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	idx, err := vector.NewFlatIndex(testDims)
	if err != nil {
		t.Fatalf("NewFlatIndex: %v", err)
	}
	emb := embedding.NewMockEmbedder(testDims)
	st, err := store.Open(context.Background(), idx, storage.NewMemoryBackend(), emb)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewService(extract.NewExtractor(), emb, st), st
}

func TestSubmitBytes(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	text := "Jane Doe, Senior Go Engineer. 7 years building distributed systems."
	if err := svc.SubmitBytes(ctx, "jane.txt", []byte(text)); err != nil {
		t.Fatalf("SubmitBytes: %v", err)
	}
	if st.Count() != 1 {
		t.Fatalf("count = %d, want 1", st.Count())
	}

	records := st.ListAll()
	if records[0].Filename != "jane.txt" {
		t.Errorf("filename = %q", records[0].Filename)
	}
	// The preview keeps the extracted text as-is, punctuation and digits
	// included. Only the embedder sees the normalized form.
	if records[0].TextPreview != text {
		t.Errorf("preview = %q, want original text", records[0].TextPreview)
	}
}

func TestSubmitBytesSearchable(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	text := "Platform engineer with Kubernetes and Terraform experience."
	if err := svc.SubmitBytes(ctx, "platform.txt", []byte(text)); err != nil {
		t.Fatalf("SubmitBytes: %v", err)
	}

	// A query with the same word content must land on the same vector.
	qv, err := svc.EmbedQuery(ctx, text)
	if err != nil {
		t.Fatalf("EmbedQuery: %v", err)
	}
	results, err := st.Search(ctx, qv, 5, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Score != 1.0 {
		t.Errorf("score = %v, want 1.0", results[0].Score)
	}
}

func TestSubmitBytesDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.SubmitBytes(ctx, "dup.txt", []byte("first upload")); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	err := svc.SubmitBytes(ctx, "dup.txt", []byte("second upload"))
	if !errors.Is(err, store.ErrDuplicateResume) {
		t.Errorf("got %v, want ErrDuplicateResume", err)
	}
}

func TestSubmitBytesNoText(t *testing.T) {
	svc, st := newTestService(t)

	err := svc.SubmitBytes(context.Background(), "blank.txt", []byte("  \n\t "))
	if !errors.Is(err, ErrNoText) {
		t.Errorf("got %v, want ErrNoText", err)
	}
	if st.Count() != 0 {
		t.Errorf("count = %d after rejected submit", st.Count())
	}
}

func TestSubmitBytesUnsupportedFormat(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.SubmitBytes(context.Background(), "payload.exe", []byte("MZ"))
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestSubmitFile(t *testing.T) {
	svc, st := newTestService(t)

	path := filepath.Join(t.TempDir(), "resume.md")
	if err := os.WriteFile(path, []byte("# Backend developer\nGo, Postgres, Kafka"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := svc.SubmitFile(context.Background(), path); err != nil {
		t.Fatalf("SubmitFile: %v", err)
	}
	records := st.ListAll()
	if len(records) != 1 || records[0].Filename != "resume.md" {
		t.Fatalf("records = %+v, want one entry named resume.md", records)
	}
}

func TestSubmitFileMissing(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.SubmitFile(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSyncFileReplacesExisting(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "candidate.txt")
	if err := os.WriteFile(path, []byte("junior frontend developer"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := svc.SyncFile(ctx, path); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	updated := "senior data engineer, spark and airflow"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := svc.SyncFile(ctx, path); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	if st.Count() != 1 {
		t.Fatalf("count = %d, want 1 after replace", st.Count())
	}
	if got := st.ListAll()[0].TextPreview; got != updated {
		t.Errorf("preview = %q, want updated content", got)
	}
}

func TestRemoveFile(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	if err := svc.SubmitBytes(ctx, "gone.txt", []byte("devops engineer")); err != nil {
		t.Fatalf("SubmitBytes: %v", err)
	}

	deleted, err := svc.RemoveFile(ctx, "/drop/dir/gone.txt")
	if err != nil || !deleted {
		t.Fatalf("RemoveFile = (%v, %v), want (true, nil)", deleted, err)
	}
	if st.Count() != 0 {
		t.Errorf("count = %d after remove", st.Count())
	}

	deleted, err = svc.RemoveFile(ctx, "gone.txt")
	if err != nil || deleted {
		t.Errorf("second RemoveFile = (%v, %v), want (false, nil)", deleted, err)
	}
}

func TestEmbedQueryNormalization(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	got, err := svc.EmbedQuery(ctx, "  GO, Engineer!!  ")
	if err != nil {
		t.Fatalf("EmbedQuery: %v", err)
	}
	want, err := embedding.NewMockEmbedder(testDims).Embed(ctx, "go engineer")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("query embedding differs from embedding of normalized text")
	}
}
