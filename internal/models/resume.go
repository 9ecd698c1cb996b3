// Package models defines core data structures for resumes, search requests, and results.
package models

// PreviewLength is the number of characters of extracted text retained per resume.
// The preview doubles as the re-embedding source when the index is rebuilt, so it
// must be a plain prefix of the original text with no truncation marker.
const PreviewLength = 1000

// ResumeRecord is the catalog entry for one stored resume.
//
// Position is the record's offset in the vector index as of its last
// (re)insertion. It is reassigned whenever the index is rebuilt after a
// delete; Filename is the stable key callers use.
type ResumeRecord struct {
	Position    int    `json:"position"`
	Filename    string `json:"filename"`
	TextPreview string `json:"text_preview"`
}
