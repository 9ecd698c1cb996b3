// Package storage provides the paired-file backend: a binary vector artifact
// and a JSON catalog artifact, each replaced atomically.
package storage

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/hyperjump/jinzai/internal/models"
)

const (
	vectorsFileName = "resume_index.bin"
	catalogFileName = "resume_meta.json"
)

// FileBackend stores vectors in a little-endian binary file and records in a
// JSON file, side by side under one directory. Writes go to a temp file that
// is renamed over the old artifact, so readers never see a partial write.
type FileBackend struct {
	dir        string
	dimensions int
}

// NewFileBackend creates the data directory if needed and returns a backend
// rooted there.
func NewFileBackend(dir string, dimensions int) (*FileBackend, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{dir: dir, dimensions: dimensions}, nil
}

func (b *FileBackend) vectorsPath() string { return filepath.Join(b.dir, vectorsFileName) }
func (b *FileBackend) catalogPath() string { return filepath.Join(b.dir, catalogFileName) }

// Load reads both artifacts. Neither present means a fresh store; exactly one
// present, or mismatched counts, is a desynchronized pair.
func (b *FileBackend) Load(ctx context.Context) ([][]float32, []models.ResumeRecord, error) {
	vecExists := fileExists(b.vectorsPath())
	catExists := fileExists(b.catalogPath())
	if !vecExists && !catExists {
		return nil, nil, nil
	}
	if vecExists != catExists {
		return nil, nil, fmt.Errorf("only one of %s, %s present: %w", vectorsFileName, catalogFileName, ErrCorruptArtifacts)
	}

	vectors, err := b.readVectors()
	if err != nil {
		return nil, nil, err
	}
	records, err := b.readCatalog()
	if err != nil {
		return nil, nil, err
	}
	if len(vectors) != len(records) {
		return nil, nil, fmt.Errorf("%d vectors but %d records: %w", len(vectors), len(records), ErrCorruptArtifacts)
	}
	return vectors, records, nil
}

// Save writes both artifacts, vectors first, each temp-then-rename.
func (b *FileBackend) Save(ctx context.Context, vectors [][]float32, records []models.ResumeRecord) error {
	if err := b.writeVectors(vectors); err != nil {
		return err
	}
	return b.writeCatalog(records)
}

// Clear removes both artifacts. Missing files are fine.
func (b *FileBackend) Clear(ctx context.Context) error {
	for _, p := range []string{b.vectorsPath(), b.catalogPath()} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", filepath.Base(p), err)
		}
	}
	return nil
}

// Path returns the data directory.
func (b *FileBackend) Path() string {
	return b.dir
}

// Close is a no-op for FileBackend.
func (b *FileBackend) Close() error {
	return nil
}

// Vector artifact format: dimensions (uint32), count (uint32), then
// count*dimensions little-endian float32s in position order.
func (b *FileBackend) writeVectors(vectors [][]float32) error {
	buf := make([]byte, 0, 8+len(vectors)*b.dimensions*4)
	header := make([]byte, 8)
	binary.LittleEndian.PutUint32(header[0:4], uint32(b.dimensions))
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(vectors)))
	buf = append(buf, header...)
	for i, vec := range vectors {
		if len(vec) != b.dimensions {
			return fmt.Errorf("vector %d has %d dimensions, expected %d", i, len(vec), b.dimensions)
		}
		buf = append(buf, float32SliceToBytes(vec)...)
	}
	return replaceFile(b.vectorsPath(), buf)
}

func (b *FileBackend) readVectors() ([][]float32, error) {
	data, err := os.ReadFile(b.vectorsPath())
	if err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}
	if len(data) < 8 {
		return nil, fmt.Errorf("vector artifact truncated: %w", ErrCorruptArtifacts)
	}
	dim := int(binary.LittleEndian.Uint32(data[0:4]))
	count := int(binary.LittleEndian.Uint32(data[4:8]))
	if dim != b.dimensions {
		return nil, fmt.Errorf("vector artifact has dimension %d, expected %d", dim, b.dimensions)
	}
	body := data[8:]
	if len(body) != count*dim*4 {
		return nil, fmt.Errorf("vector artifact truncated: %w", ErrCorruptArtifacts)
	}
	vectors := make([][]float32, count)
	for i := 0; i < count; i++ {
		vectors[i] = bytesToFloat32Slice(body[i*dim*4 : (i+1)*dim*4])
	}
	return vectors, nil
}

func (b *FileBackend) writeCatalog(records []models.ResumeRecord) error {
	if records == nil {
		records = []models.ResumeRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return replaceFile(b.catalogPath(), data)
}

func (b *FileBackend) readCatalog() ([]models.ResumeRecord, error) {
	data, err := os.ReadFile(b.catalogPath())
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var records []models.ResumeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return records, nil
}

// replaceFile writes data to a temp file in the target's directory and
// renames it over path.
func replaceFile(path string, data []byte) error {
	tmp := path + ".tmp-" + uuid.New().String()[:8]
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func float32SliceToBytes(s []float32) []byte {
	const size = 4
	out := make([]byte, len(s)*size)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*size:(i+1)*size], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(b []byte) []float32 {
	const size = 4
	out := make([]float32, len(b)/size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size : (i+1)*size]))
	}
	return out
}
