package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/hyperjump/jinzai/internal/embedding"
	"github.com/hyperjump/jinzai/internal/storage"
	"github.com/hyperjump/jinzai/internal/store"
	"github.com/hyperjump/jinzai/internal/vector"
)

const benchDimensions = 384

// newBenchStore builds an in-memory store preloaded with n resumes.
func newBenchStore(b *testing.B, n int) (*store.Store, *embedding.MockEmbedder) {
	b.Helper()
	ctx := context.Background()

	index, err := vector.NewFlatIndex(benchDimensions)
	if err != nil {
		b.Fatal(err)
	}
	embedder := embedding.NewMockEmbedder(benchDimensions)
	backend, err := storage.NewBackend("memory", "", benchDimensions)
	if err != nil {
		b.Fatal(err)
	}
	st, err := store.Open(ctx, index, backend, embedder)
	if err != nil {
		b.Fatal(err)
	}

	for i := 0; i < n; i++ {
		text := fmt.Sprintf("candidate %d, engineer with skill set %d and %d years of experience", i, i%17, i%23)
		emb, err := embedder.Embed(ctx, text)
		if err != nil {
			b.Fatal(err)
		}
		if err := st.AddResume(ctx, fmt.Sprintf("resume-%05d.txt", i), text, emb); err != nil {
			b.Fatal(err)
		}
	}
	return st, embedder
}

func BenchmarkFlatIndexSearch(b *testing.B) {
	index, err := vector.NewFlatIndex(benchDimensions)
	if err != nil {
		b.Fatal(err)
	}
	vectors := make([][]float32, 1000)
	for i := range vectors {
		vectors[i] = make([]float32, benchDimensions)
		vectors[i][0] = float32(i) / 1000
	}
	if err := index.Rebuild(vectors); err != nil {
		b.Fatal(err)
	}
	query := make([]float32, benchDimensions)
	query[0] = 1.0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := index.Search(query, 10); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMockEmbedderEmbed(b *testing.B) {
	embedder := embedding.NewMockEmbedder(benchDimensions)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := embedder.Embed(ctx, "senior backend engineer python kafka postgres kubernetes"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStoreSearch(b *testing.B) {
	for _, n := range []int{100, 1000, 5000} {
		b.Run(fmt.Sprintf("resumes=%d", n), func(b *testing.B) {
			st, embedder := newBenchStore(b, n)
			defer st.Close()
			ctx := context.Background()
			query, err := embedder.Embed(ctx, "golang engineer with kafka and kubernetes")
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := st.Search(ctx, query, 10, 0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkStoreAddResume(b *testing.B) {
	st, embedder := newBenchStore(b, 0)
	defer st.Close()
	ctx := context.Background()
	const text = "staff engineer designing distributed storage systems"
	emb, err := embedder.Embed(ctx, text)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := st.AddResume(ctx, fmt.Sprintf("resume-%08d.txt", i), text, emb); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkStoreDeleteResume measures a delete including the index rebuild
// that re-embeds every surviving resume.
func BenchmarkStoreDeleteResume(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		st, _ := newBenchStore(b, 100)
		b.StartTimer()

		if deleted, err := st.DeleteResume(ctx, "resume-00050.txt"); err != nil || !deleted {
			b.Fatalf("delete: deleted=%v err=%v", deleted, err)
		}

		b.StopTimer()
		_ = st.Close()
		b.StartTimer()
	}
}
