package server

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/jinzai/internal/extract"
	"github.com/hyperjump/jinzai/internal/intake"
	"github.com/hyperjump/jinzai/internal/models"
	"github.com/hyperjump/jinzai/internal/storage"
	"github.com/hyperjump/jinzai/internal/store"
	"github.com/hyperjump/jinzai/pkg/utils"
)

// maxUploadMemory caps the in-memory portion of a multipart resume upload.
const maxUploadMemory = 32 << 20

// csvPreviewLength is the preview column width in CSV exports.
const csvPreviewLength = 300

func (s *Server) handleSubmitResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	// Browsers may send a full client-side path; keep only the base name.
	filename := filepath.Base(header.Filename)

	s.logger.Debug("submit resume request", zap.String("filename", filename), zap.Int("bytes", len(data)))
	if err := s.intake.SubmitBytes(r.Context(), filename, data); err != nil {
		s.respondSubmitError(w, filename, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{
		"filename": filename,
		"message":  "resume indexed",
	})
}

func (s *Server) respondSubmitError(w http.ResponseWriter, filename string, err error) {
	switch {
	case errors.Is(err, store.ErrDuplicateResume):
		s.respondError(w, http.StatusConflict, fmt.Sprintf("%s already exists", filename))
	case errors.Is(err, intake.ErrNoText):
		s.respondError(w, http.StatusBadRequest, "could not extract text from resume")
	case errors.Is(err, extract.ErrUnsupportedFormat):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrEmptyFilename):
		s.respondError(w, http.StatusBadRequest, "filename is required")
	default:
		s.logger.Error("submit failed", zap.String("filename", filename), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.ApplyBounds(s.cfg.Search.DefaultTopK, s.cfg.Search.MaxTopK, s.cfg.Search.MinScore)
	s.logger.Debug("search request",
		zap.String("query", req.Query),
		zap.Int("top_k", req.TopK),
		zap.Float64("min_score", req.MinScore))

	start := time.Now()
	queryVec, err := s.intake.EmbedQuery(r.Context(), req.Query)
	if err != nil {
		s.logger.Error("query embedding failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	results, err := s.store.Search(r.Context(), queryVec, req.TopK, req.MinScore)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []models.SearchMatch{}
	}

	if r.URL.Query().Get("format") == "csv" {
		s.respondSearchCSV(w, results)
		return
	}
	s.respondJSON(w, http.StatusOK, &models.SearchResponse{
		Query:     req.Query,
		Total:     len(results),
		Results:   results,
		QueryTime: time.Since(start).Milliseconds(),
	})
}

func (s *Server) respondSearchCSV(w http.ResponseWriter, results []models.SearchMatch) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="resume_matches.csv"`)
	w.WriteHeader(http.StatusOK)
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Rank", "Filename", "Match Score", "Preview"})
	for i, m := range results {
		_ = cw.Write([]string{
			strconv.Itoa(i + 1),
			m.Filename,
			fmt.Sprintf("%d%%", int(m.Score*100)),
			utils.Truncate(m.TextPreview, csvPreviewLength),
		})
	}
	cw.Flush()
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	records := s.store.ListAll()
	if records == nil {
		records = []models.ResumeRecord{}
	}
	s.respondJSON(w, http.StatusOK, &models.ListResponse{
		Total:   len(records),
		Resumes: records,
	})
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if decoded, err := url.PathUnescape(filename); err == nil {
		filename = decoded
	}
	s.logger.Debug("delete resume request", zap.String("filename", filename))
	deleted, err := s.store.DeleteResume(r.Context(), filename)
	if err != nil {
		s.logger.Error("deletion failed", zap.String("filename", filename), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		body := map[string]string{"error": fmt.Sprintf("%s not found", filename)}
		if hint, ok := s.store.SuggestFilename(filename); ok {
			body["error"] = fmt.Sprintf("%s not found (did you mean %s?)", filename, hint)
			body["suggestion"] = hint
		}
		s.respondJSON(w, http.StatusNotFound, body)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"deleted":  true,
		"filename": filename,
	})
}

func (s *Server) handleClearResumes(w http.ResponseWriter, r *http.Request) {
	removed := s.store.Count()
	if err := s.store.Clear(r.Context()); err != nil {
		s.logger.Error("clear failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Debug("cleared resumes", zap.Int("removed", removed))
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"cleared": true,
		"removed": removed,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := &models.StatusResponse{
		Status:        "ok",
		ResumeCount:   s.store.Count(),
		IndexType:     s.store.IndexType(),
		Embedder:      s.cfg.Embedding.Type,
		Storage:       s.cfg.Storage.Type,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Version:       s.version,
	}
	if diskBytes, err := storage.DiskUsageBytes(s.store.BackendPath()); err == nil {
		resp.DiskUsageBytes = diskBytes
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
