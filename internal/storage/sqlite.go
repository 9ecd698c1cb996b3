// Package storage provides the SQLite backend: one database file holding
// vectors and records, written in a single transaction per save.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/jinzai/internal/models"
)

// SQLiteBackend implements Backend on a single SQLite database. Both tables
// change under one transaction, so a crash can never leave the vector and
// record sides disagreeing.
type SQLiteBackend struct {
	db         *sql.DB
	path       string
	dimensions int
}

// NewSQLiteBackend opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do not exist.
func NewSQLiteBackend(dbPath string, dimensions int) (*SQLiteBackend, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteBackend{db: db, path: dbPath, dimensions: dimensions}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS vectors (
		position INTEGER PRIMARY KEY,
		embedding BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS resumes (
		position INTEGER PRIMARY KEY,
		filename TEXT NOT NULL UNIQUE,
		text_preview TEXT NOT NULL
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Load reads both tables in position order.
func (b *SQLiteBackend) Load(ctx context.Context) ([][]float32, []models.ResumeRecord, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT position, embedding FROM vectors ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("load vectors: %w", err)
	}
	defer rows.Close()

	var vectors [][]float32
	for rows.Next() {
		var position int
		var blob []byte
		if err := rows.Scan(&position, &blob); err != nil {
			return nil, nil, err
		}
		vec := bytesToFloat32Slice(blob)
		if len(vec) != b.dimensions {
			return nil, nil, fmt.Errorf("vector %d has dimension %d, expected %d", position, len(vec), b.dimensions)
		}
		vectors = append(vectors, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	recRows, err := b.db.QueryContext(ctx, `SELECT position, filename, text_preview FROM resumes ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("load resumes: %w", err)
	}
	defer recRows.Close()

	var records []models.ResumeRecord
	for recRows.Next() {
		var rec models.ResumeRecord
		if err := recRows.Scan(&rec.Position, &rec.Filename, &rec.TextPreview); err != nil {
			return nil, nil, err
		}
		records = append(records, rec)
	}
	if err := recRows.Err(); err != nil {
		return nil, nil, err
	}

	if len(vectors) != len(records) {
		return nil, nil, fmt.Errorf("%d vectors but %d records: %w", len(vectors), len(records), ErrCorruptArtifacts)
	}
	return vectors, records, nil
}

// Save replaces both tables in one transaction.
func (b *SQLiteBackend) Save(ctx context.Context, vectors [][]float32, records []models.ResumeRecord) error {
	if len(vectors) != len(records) {
		return fmt.Errorf("save: %d vectors but %d records", len(vectors), len(records))
	}
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vectors`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM resumes`); err != nil {
		return err
	}

	vecStmt, err := tx.PrepareContext(ctx, `INSERT INTO vectors (position, embedding) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer vecStmt.Close()
	recStmt, err := tx.PrepareContext(ctx, `INSERT INTO resumes (position, filename, text_preview) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer recStmt.Close()

	for i, vec := range vectors {
		if len(vec) != b.dimensions {
			return fmt.Errorf("vector %d has %d dimensions, expected %d", i, len(vec), b.dimensions)
		}
		if _, err := vecStmt.ExecContext(ctx, i, float32SliceToBytes(vec)); err != nil {
			return err
		}
		rec := records[i]
		if _, err := recStmt.ExecContext(ctx, i, rec.Filename, rec.TextPreview); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Clear empties both tables in one transaction.
func (b *SQLiteBackend) Clear(ctx context.Context) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM vectors`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM resumes`); err != nil {
		return err
	}
	return tx.Commit()
}

// Path returns the database file path.
func (b *SQLiteBackend) Path() string {
	return b.path
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
