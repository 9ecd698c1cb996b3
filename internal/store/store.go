// Package store provides the resume similarity store: a vector index and its
// record catalog kept in positional lockstep, with durable persistence.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/jinzai/internal/catalog"
	"github.com/hyperjump/jinzai/internal/embedding"
	"github.com/hyperjump/jinzai/internal/models"
	"github.com/hyperjump/jinzai/internal/storage"
	"github.com/hyperjump/jinzai/internal/vector"
	"github.com/hyperjump/jinzai/pkg/utils"
)

var (
	// ErrDuplicateResume rejects an add whose filename is already stored.
	ErrDuplicateResume = errors.New("resume already exists")
	// ErrEmptyFilename rejects an add with no filename.
	ErrEmptyFilename = errors.New("filename must not be empty")
	// ErrPersistence wraps storage backend failures. In-memory state may be
	// ahead of durable state until a retry or Flush succeeds.
	ErrPersistence = errors.New("persistence failed")
)

// Store is the similarity store façade. It owns the index/catalog pair, keeps
// the positions aligned (catalog record i describes index vector i), and
// persists both after every mutation. All methods are safe for concurrent
// use; mutations are serialized by a single writer lock.
type Store struct {
	index    vector.Index
	catalog  *catalog.Catalog
	backend  storage.Backend
	embedder embedding.Embedder
	logger   *zap.Logger // optional; when set, logs debug events
	mu       sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a logger for debug output (resume added, index rebuilt, etc.).
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open creates a store over the given components and restores any persisted
// state from the backend. Positions are renumbered on load, so artifacts
// written by an older process layout remain usable. The embedder is used only
// to re-embed previews during delete-triggered rebuilds; it must be the same
// model that produced the stored vectors.
func Open(
	ctx context.Context,
	index vector.Index,
	backend storage.Backend,
	embedder embedding.Embedder,
	opts ...Option,
) (*Store, error) {
	if embedder.Dimensions() != index.Dimensions() {
		return nil, fmt.Errorf("embedder produces %d dimensions, index expects %d: %w",
			embedder.Dimensions(), index.Dimensions(), vector.ErrDimensionMismatch)
	}
	s := &Store{
		index:    index,
		catalog:  catalog.New(),
		backend:  backend,
		embedder: embedder,
	}
	for _, opt := range opts {
		opt(s)
	}

	vectors, records, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted state: %w", err)
	}
	if len(vectors) != len(records) {
		return nil, fmt.Errorf("%d vectors but %d records: %w",
			len(vectors), len(records), storage.ErrCorruptArtifacts)
	}
	if len(vectors) > 0 {
		if err := index.Rebuild(vectors); err != nil {
			return nil, fmt.Errorf("failed to restore index: %w", err)
		}
		s.catalog.ReplaceAll(records)
	}
	if s.logger != nil {
		s.logger.Debug("store opened",
			zap.Int("resumes", s.catalog.Len()),
			zap.String("index", index.Type()),
			zap.String("path", backend.Path()))
	}
	return s, nil
}

// AddResume stores one (embedding, document) pair. The catalog keeps the
// first PreviewLength runes of fullText as the record's preview, which is
// also the text re-embedded during delete-triggered rebuilds. Fails with
// ErrDuplicateResume, ErrEmptyFilename or vector.ErrDimensionMismatch,
// leaving the store unchanged. A persistence failure leaves the resume
// visible in memory and returns ErrPersistence.
func (s *Store) AddResume(ctx context.Context, filename, fullText string, emb []float32) error {
	if filename == "" {
		return ErrEmptyFilename
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog.Contains(filename) {
		return fmt.Errorf("%q: %w", filename, ErrDuplicateResume)
	}
	if len(emb) != s.index.Dimensions() {
		return fmt.Errorf("embedding has %d dimensions, index expects %d: %w",
			len(emb), s.index.Dimensions(), vector.ErrDimensionMismatch)
	}
	position, err := s.index.Add(emb)
	if err != nil {
		return fmt.Errorf("failed to index embedding: %w", err)
	}
	s.catalog.Append(models.ResumeRecord{
		Position:    position,
		Filename:    filename,
		TextPreview: utils.TruncateRunes(fullText, models.PreviewLength),
	})
	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Debug("resume added", zap.String("filename", filename), zap.Int("position", position))
	}
	return nil
}

// Search returns up to topK catalog records nearest to the query embedding,
// scored 1/(1+distance) and filtered to score >= minScore. The index is
// overfetched by a factor of five so threshold attrition does not starve the
// result set. Results are sorted by descending score; an empty store or an
// all-filtered candidate set yields an empty result, not an error.
func (s *Store) Search(ctx context.Context, query []float32, topK int, minScore float64) ([]models.SearchMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := s.index.Count()
	if n == 0 || topK <= 0 {
		return nil, nil
	}
	fetchK := topK * 5
	if fetchK > n {
		fetchK = n
	}
	hits, err := s.index.Search(query, fetchK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	matches := make([]models.SearchMatch, 0, topK)
	for _, hit := range hits {
		score := vector.Score(hit.Distance)
		if score < minScore {
			continue
		}
		rec, ok := s.catalog.Get(hit.Position)
		if !ok {
			continue
		}
		matches = append(matches, models.SearchMatch{
			Filename:    rec.Filename,
			TextPreview: rec.TextPreview,
			Score:       score,
		})
		if len(matches) == topK {
			break
		}
	}
	// Distance order and score order coincide, but rounding to four digits
	// can produce ties; the explicit sort keeps the output deterministic.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}

// ListAll returns a snapshot of every stored record in position order.
func (s *Store) ListAll() []models.ResumeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.All()
}

// Count returns the number of stored resumes.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Len()
}

// IndexType names the vector index implementation in use.
func (s *Store) IndexType() string {
	return s.index.Type()
}

// BackendPath is the persistence location, empty for in-memory backends.
func (s *Store) BackendPath() string {
	return s.backend.Path()
}

// DeleteResume removes the record with the given filename. The index has no
// arbitrary-position removal, so a hit rebuilds it from scratch by
// re-embedding every survivor's preview in catalog order; positions are
// renumbered 0..n-1. Returns false with the store untouched when the filename
// is unknown. An embedding failure aborts the rebuild with no visible change;
// the embedding calls honor ctx, which is the caller's cancellation handle
// for this O(n) operation.
func (s *Store) DeleteResume(ctx context.Context, filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.catalog.Contains(filename) {
		return false, nil
	}
	records := s.catalog.All()
	survivors := make([]models.ResumeRecord, 0, len(records)-1)
	previews := make([]string, 0, len(records)-1)
	for _, rec := range records {
		if rec.Filename == filename {
			continue
		}
		survivors = append(survivors, rec)
		previews = append(previews, rec.TextPreview)
	}

	vectors, err := s.embedder.EmbedBatch(ctx, previews)
	if err != nil {
		return false, fmt.Errorf("failed to re-embed surviving resumes: %w", err)
	}
	if err := s.index.Rebuild(vectors); err != nil {
		return false, fmt.Errorf("failed to rebuild index: %w", err)
	}
	s.catalog.ReplaceAll(survivors)

	if s.logger != nil {
		s.logger.Debug("resume deleted",
			zap.String("filename", filename),
			zap.Int("survivors", len(survivors)))
	}
	return true, s.persistLocked(ctx)
}

// Clear empties the index and catalog and removes persisted artifacts.
// Idempotent; clearing an empty store succeeds.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Rebuild(nil); err != nil {
		return fmt.Errorf("failed to reset index: %w", err)
	}
	s.catalog.Clear()
	if err := s.backend.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if s.logger != nil {
		s.logger.Debug("store cleared")
	}
	return nil
}

// Flush re-persists the current in-memory state. This is the retry path
// after a mutation returned ErrPersistence.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

// Close releases the index and the storage backend. The embedder is owned by
// the caller and stays open; it may be shared with the intake pipeline.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if err := s.index.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close index: %w", err))
	}
	if err := s.backend.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close backend: %w", err))
	}
	return errors.Join(errs...)
}

// persistLocked writes the current index/catalog pair through the backend.
// Callers must hold the write lock.
func (s *Store) persistLocked(ctx context.Context) error {
	if err := s.backend.Save(ctx, s.index.Vectors(), s.catalog.All()); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}
