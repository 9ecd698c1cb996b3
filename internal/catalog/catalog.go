// Package catalog keeps the ordered resume records that sit in lockstep with
// the vector index.
package catalog

import (
	"sync"

	"github.com/hyperjump/jinzai/internal/models"
)

// Catalog is an ordered list of resume records addressed by position.
// Record i describes the vector at index position i; the similarity store
// maintains that correspondence across rebuilds. The catalog itself does not
// enforce filename uniqueness; the store rejects duplicates before Append.
type Catalog struct {
	records []models.ResumeRecord
	mu      sync.RWMutex
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{records: make([]models.ResumeRecord, 0)}
}

// Append adds rec to the end of the catalog.
func (c *Catalog) Append(rec models.ResumeRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
}

// All returns a copy of the records in position order.
func (c *Catalog) All() []models.ResumeRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.ResumeRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Contains reports whether a record with the given filename exists.
func (c *Catalog) Contains(filename string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, rec := range c.records {
		if rec.Filename == filename {
			return true
		}
	}
	return false
}

// Get returns the record at position.
func (c *Catalog) Get(position int) (models.ResumeRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if position < 0 || position >= len(c.records) {
		return models.ResumeRecord{}, false
	}
	return c.records[position], true
}

// RemoveByFilename removes records matching filename and reports whether any
// were removed. Surviving records keep their old Position values; the caller
// rebuilds the index and renumbers through ReplaceAll.
func (c *Catalog) RemoveByFilename(filename string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.records[:0]
	removed := false
	for _, rec := range c.records {
		if rec.Filename == filename {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	c.records = kept
	return removed
}

// ReplaceAll replaces the contents with recs, reassigning Position 0..len-1
// in order.
func (c *Catalog) ReplaceAll(recs []models.ResumeRecord) {
	next := make([]models.ResumeRecord, len(recs))
	copy(next, recs)
	for i := range next {
		next[i].Position = i
	}
	c.mu.Lock()
	c.records = next
	c.mu.Unlock()
}

// Clear removes all records.
func (c *Catalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = c.records[:0]
}
