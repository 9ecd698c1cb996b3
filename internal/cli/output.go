// Package cli provides output writers for the Jinzai command line.
package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hyperjump/jinzai/internal/models"
	"github.com/hyperjump/jinzai/pkg/utils"
)

// OutputFormat selects how command results are rendered.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
	// OutputCSV matches the server's CSV export columns.
	OutputCSV OutputFormat = "csv"
)

// ParseFormat converts a -format flag value. Empty means text.
func ParseFormat(s string) (OutputFormat, error) {
	switch s {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	case "csv":
		return OutputCSV, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or csv)", s)
	}
}

// WriteSearchResults writes search results to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, response)
	case OutputCSV:
		return writeSearchResultsCSV(w, response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d matches in %dms\n\n", response.Total, response.QueryTime)
	for i, m := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Match: %d%% (score %.4f)\n", i+1, int(m.Score*100), m.Score)
		fmt.Fprintf(w, "File: %s\n", m.Filename)
		fmt.Fprintf(w, "\n%s\n", utils.Truncate(m.TextPreview, 200))
		fmt.Fprintln(w)
	}
}

func writeSearchResultsCSV(w io.Writer, response *models.SearchResponse) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Rank", "Filename", "Match Score", "Preview"}); err != nil {
		return err
	}
	for i, m := range response.Results {
		row := []string{
			strconv.Itoa(i + 1),
			m.Filename,
			fmt.Sprintf("%d%%", int(m.Score*100)),
			utils.Truncate(m.TextPreview, 300),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResumeList writes the stored resume listing to w in the given format.
func WriteResumeList(w io.Writer, response *models.ListResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, response)
	case OutputCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"Position", "Filename", "Preview"}); err != nil {
			return err
		}
		for _, rec := range response.Resumes {
			row := []string{
				strconv.Itoa(rec.Position),
				rec.Filename,
				utils.Truncate(oneLine(rec.TextPreview), 300),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		fmt.Fprintf(w, "\n%d resumes stored\n\n", response.Total)
		for _, rec := range response.Resumes {
			fmt.Fprintf(w, "%4d  %-36s %s\n",
				rec.Position, rec.Filename, utils.Truncate(oneLine(rec.TextPreview), 60))
		}
		return nil
	}
}

// WriteStatus writes the service status to w. CSV is not supported here.
func WriteStatus(w io.Writer, status *models.StatusResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, status)
	case OutputCSV:
		return fmt.Errorf("csv output is not supported for status")
	default:
		fmt.Fprintf(w, "Status:      %s\n", status.Status)
		fmt.Fprintf(w, "Resumes:     %d\n", status.ResumeCount)
		fmt.Fprintf(w, "Index:       %s\n", status.IndexType)
		fmt.Fprintf(w, "Embedder:    %s\n", status.Embedder)
		fmt.Fprintf(w, "Storage:     %s\n", status.Storage)
		fmt.Fprintf(w, "Disk usage:  %d bytes\n", status.DiskUsageBytes)
		fmt.Fprintf(w, "Uptime:      %s\n", (time.Duration(status.UptimeSeconds) * time.Second).String())
		fmt.Fprintf(w, "Version:     %s\n", status.Version)
		return nil
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// oneLine collapses whitespace runs so previews fit a single table row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
