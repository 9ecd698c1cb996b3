package embedding

import "fmt"

// EmbedderType represents the type of embedder to use.
type EmbedderType string

const (
	// EmbedderTypeMock uses deterministic hash-based vectors. No model needed.
	EmbedderTypeMock EmbedderType = "mock"
	// EmbedderTypeONNX runs a sentence-transformer model through ONNX Runtime.
	// Requires CGO and the onnxruntime shared library.
	EmbedderTypeONNX EmbedderType = "onnx"
)

// Options configures embedder construction.
type Options struct {
	Type       string
	ModelPath  string
	Dimensions int
	MaxTokens  int
	// CacheSize is the LRU capacity for embedded texts; 0 disables caching.
	CacheSize int
}

// NewEmbedder creates an embedder of the specified type. When opts.CacheSize
// is positive the embedder is wrapped in a CachedEmbedder, so repeated texts
// (notably index rebuilds after a delete) skip inference.
func NewEmbedder(opts Options) (Embedder, error) {
	var (
		inner Embedder
		err   error
	)
	switch EmbedderType(opts.Type) {
	case EmbedderTypeMock, "":
		inner = NewMockEmbedder(opts.Dimensions)
	case EmbedderTypeONNX:
		inner, err = NewONNXEmbedder(opts.ModelPath, opts.Dimensions, opts.MaxTokens)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown embedder type: %s (supported: mock, onnx)", opts.Type)
	}
	if opts.CacheSize > 0 {
		return NewCachedEmbedder(inner, opts.CacheSize), nil
	}
	return inner, nil
}
