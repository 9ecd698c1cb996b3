package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/jinzai/internal/models"
)

var sampleResponse = &models.SearchResponse{
	Query: "go engineer",
	Total: 2,
	Results: []models.SearchMatch{
		{Filename: "jane.pdf", TextPreview: "Senior Go engineer\nwith seven years", Score: 0.8731},
		{Filename: "bob.docx", TextPreview: "Backend developer", Score: 0.5102},
	},
	QueryTime: 3,
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"json", OutputJSON, false},
		{"csv", OutputCSV, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteSearchResults_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Found 2 matches in 3ms") {
		t.Errorf("missing summary line: %s", out)
	}
	if !strings.Contains(out, "jane.pdf") || !strings.Contains(out, "87%") {
		t.Errorf("missing top match: %s", out)
	}
	if !strings.Contains(out, "Rank: 2") {
		t.Errorf("missing second rank: %s", out)
	}
}

func TestWriteSearchResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Total != 2 || decoded.Results[0].Filename != "jane.pdf" {
		t.Errorf("decoded: %+v", decoded)
	}
}

func TestWriteSearchResults_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse, OutputCSV); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][2] != "Match Score" {
		t.Errorf("header: %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][1] != "jane.pdf" || rows[1][2] != "87%" {
		t.Errorf("first row: %v", rows[1])
	}
}

func TestWriteResumeList_Text(t *testing.T) {
	resp := &models.ListResponse{
		Total: 1,
		Resumes: []models.ResumeRecord{
			{Position: 0, Filename: "jane.pdf", TextPreview: "line one\nline two"},
		},
	}
	var buf bytes.Buffer
	if err := WriteResumeList(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "1 resumes stored") {
		t.Errorf("missing summary: %s", out)
	}
	// Preview newlines must not break the table row.
	if !strings.Contains(out, "line one line two") {
		t.Errorf("preview not flattened: %s", out)
	}
}

func TestWriteResumeList_CSV(t *testing.T) {
	resp := &models.ListResponse{
		Total: 2,
		Resumes: []models.ResumeRecord{
			{Position: 0, Filename: "a.txt", TextPreview: "alpha"},
			{Position: 1, Filename: "b.txt", TextPreview: "beta"},
		},
	}
	var buf bytes.Buffer
	if err := WriteResumeList(&buf, resp, OutputCSV); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[2][1] != "b.txt" {
		t.Errorf("rows: %v", rows)
	}
}

func TestWriteStatus(t *testing.T) {
	st := &models.StatusResponse{
		Status:         "ok",
		ResumeCount:    4,
		IndexType:      "flat",
		Embedder:       "mock",
		Storage:        "file",
		DiskUsageBytes: 2048,
		UptimeSeconds:  75,
		Version:        "1.0.0",
	}
	var buf bytes.Buffer
	if err := WriteStatus(&buf, st, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"ok", "4", "flat", "mock", "file", "2048 bytes", "1m15s", "1.0.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q: %s", want, out)
		}
	}

	buf.Reset()
	if err := WriteStatus(&buf, st, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.StatusResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ResumeCount != 4 {
		t.Errorf("decoded: %+v", decoded)
	}

	if err := WriteStatus(&buf, st, OutputCSV); err == nil {
		t.Error("expected error for csv status output")
	}
}
