// Package intake turns uploaded resume files into indexed store records:
// extract text, normalize it for the embedding model, embed, add.
package intake

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/jinzai/internal/embedding"
	"github.com/hyperjump/jinzai/internal/extract"
	"github.com/hyperjump/jinzai/internal/store"
)

// ErrNoText is returned when a file extracts to nothing but whitespace,
// such as a scanned PDF with no text layer.
var ErrNoText = errors.New("no text could be extracted")

// Service wires extraction, preprocessing and embedding in front of the
// store. All resume submissions go through here so every vector in the
// index was produced from identically normalized text.
type Service struct {
	extractor *extract.Extractor
	embedder  embedding.Embedder
	store     *store.Store
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for debug events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates an intake service on top of the given store.
func NewService(extractor *extract.Extractor, embedder embedding.Embedder, st *store.Store, opts ...Option) *Service {
	s := &Service{
		extractor: extractor,
		embedder:  embedder,
		store:     st,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitBytes extracts text from an in-memory file, embeds it and adds the
// resume under filename. The stored preview keeps the original extracted
// text; only the embedder sees the normalized form.
func (s *Service) SubmitBytes(ctx context.Context, filename string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	text, err := s.extractor.ExtractBytes(data, ext)
	if err != nil {
		return fmt.Errorf("failed to extract %q: %w", filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%q: %w", filename, ErrNoText)
	}

	emb, err := s.embedder.Embed(ctx, Preprocess(text))
	if err != nil {
		return fmt.Errorf("failed to embed %q: %w", filename, err)
	}

	if err := s.store.AddResume(ctx, filename, text, emb); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Debug("resume submitted",
			zap.String("filename", filename),
			zap.Int("text_length", len(text)))
	}
	return nil
}

// SubmitFile reads a file from disk and submits it under its base name.
func (s *Service) SubmitFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", path, err)
	}
	return s.SubmitBytes(ctx, filepath.Base(path), data)
}

// SyncFile submits a file, replacing any resume already stored under the
// same base name. Used by the drop folder watcher, where a rewritten file
// means updated content rather than a duplicate.
func (s *Service) SyncFile(ctx context.Context, path string) error {
	filename := filepath.Base(path)
	if _, err := s.store.DeleteResume(ctx, filename); err != nil {
		return fmt.Errorf("failed to replace %q: %w", filename, err)
	}
	return s.SubmitFile(ctx, path)
}

// RemoveFile deletes the resume stored under the file's base name. It
// reports whether a resume was removed.
func (s *Service) RemoveFile(ctx context.Context, path string) (bool, error) {
	filename := filepath.Base(path)
	deleted, err := s.store.DeleteResume(ctx, filename)
	if err != nil {
		return deleted, err
	}
	if deleted && s.logger != nil {
		s.logger.Debug("resume removed", zap.String("filename", filename))
	}
	return deleted, nil
}

// EmbedQuery embeds a search query after the same normalization applied to
// resume text, so query vectors land in the document vector space.
func (s *Service) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	emb, err := s.embedder.Embed(ctx, Preprocess(query))
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return emb, nil
}
