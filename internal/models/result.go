package models

// SearchMatch represents a single search hit.
type SearchMatch struct {
	Filename    string  `json:"filename"`
	TextPreview string  `json:"text_preview"`
	Score       float64 `json:"score"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Query     string        `json:"query"`
	Total     int           `json:"total"`
	Results   []SearchMatch `json:"results"`
	QueryTime int64         `json:"query_time_ms"`
}

// ListResponse is the response for a resume listing request.
type ListResponse struct {
	Total   int            `json:"total"`
	Resumes []ResumeRecord `json:"resumes"`
}

// StatusResponse describes the running service.
type StatusResponse struct {
	Status         string `json:"status"`
	ResumeCount    int    `json:"resume_count"`
	IndexType      string `json:"index_type"`
	Embedder       string `json:"embedder"`
	Storage        string `json:"storage"`
	DiskUsageBytes int64  `json:"disk_usage_bytes"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	Version        string `json:"version"`
}
