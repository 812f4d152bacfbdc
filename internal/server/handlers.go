package server

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/kotae/internal/extract"
	"github.com/hyperjump/kotae/internal/models"
	"go.uber.org/zap"
)

// maxUploadBytes caps the accepted upload body at 10 MiB.
const maxUploadBytes = 10 << 20

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid or oversized multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "no file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extract.Supported(ext) {
		s.respondError(w, http.StatusBadRequest, "unsupported document type")
		return
	}
	s.logger.Info("upload received",
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size))

	// Spool the upload to a temp file; it is removed as soon as extraction has
	// run, whether or not it succeeded.
	tmp, err := os.CreateTemp("", "kotae-upload-*"+ext)
	if err != nil {
		s.logger.Error("temp file creation failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		s.logger.Error("upload spool failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tmp.Close(); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.ingest.IngestFile(r.Context(), tmpPath)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			s.respondError(w, http.StatusBadRequest, "unsupported document type")
			return
		}
		s.logger.Error("extraction failed", zap.String("filename", header.Filename), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Reply before embeddings are computed; the background phase reports only
	// through the log.
	s.respondJSON(w, http.StatusOK, models.UploadResponse{
		Message:         "File received - processing started",
		EstimatedChunks: result.EstimatedChunks,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		s.respondError(w, http.StatusBadRequest, "no question")
		return
	}
	s.logger.Debug("ask request", zap.String("question", req.Question))

	answer, top, err := s.query.AnswerQuestion(r.Context(), req.Question)
	if err != nil {
		s.logger.Error("ask failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sources := make([]models.Source, len(top))
	for i, sc := range top {
		sources[i] = models.Source{Page: sc.Chunk.Page, Score: roundScore(sc.Score)}
	}
	s.respondJSON(w, http.StatusOK, models.AskResponse{Answer: answer, Sources: sources})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Chunks: s.store.Count()})
}

// roundScore rounds a similarity to 4 decimals for presentation.
func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
