// Package embedding provides text embedding via ONNX, with a deterministic
// mock and an LRU cache decorator.
package embedding

import "context"

// Embedder produces vector embeddings for text. One model version per
// persisted store: mixing embeddings from different models silently degrades
// every score, so the store records no model identity and relies on the
// deployment keeping it constant.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
