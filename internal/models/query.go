package models

import "fmt"

// SearchRequest represents a semantic search request.
type SearchRequest struct {
	Query    string  `json:"query"`
	TopK     int     `json:"top_k,omitempty"`
	MinScore float64 `json:"min_score,omitempty"` // 0 means use the configured default
}

// Validate rejects requests the store cannot serve.
func (r *SearchRequest) Validate() error {
	if r.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if r.TopK < 0 {
		return fmt.Errorf("top_k cannot be negative")
	}
	if r.MinScore < 0 || r.MinScore > 1 {
		return fmt.Errorf("min_score must be within [0, 1]")
	}
	return nil
}

// ApplyBounds fills in the configured default top_k and min_score and clamps
// top_k to the configured maximum.
func (r *SearchRequest) ApplyBounds(defaultTopK, maxTopK int, defaultMinScore float64) {
	if r.TopK == 0 {
		r.TopK = defaultTopK
	}
	if r.TopK > maxTopK {
		r.TopK = maxTopK
	}
	if r.MinScore == 0 {
		r.MinScore = defaultMinScore
	}
}
