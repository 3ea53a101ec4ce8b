package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/j-Karnika/Dubbing/internal/jobs"
	"github.com/j-Karnika/Dubbing/internal/logging"
	"github.com/j-Karnika/Dubbing/internal/services"
)

// allowedVideoExtensions lists the upload formats the pipeline can handle.
var allowedVideoExtensions = map[string]struct{}{
	".mp4": {},
	".avi": {},
	".mov": {},
	".mkv": {},
}

const maxUploadMemory = 32 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "AI Video Dubbing System",
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Video file is required")
		return
	}
	defer file.Close()

	sourceLanguage := strings.TrimSpace(r.FormValue("source_language"))
	targetLanguage := strings.TrimSpace(r.FormValue("target_language"))
	if sourceLanguage == "" || targetLanguage == "" {
		s.writeError(w, http.StatusBadRequest, "source_language and target_language are required")
		return
	}

	// Reject unsupported formats before any state exists for the request.
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedVideoExtensions[ext]; !ok {
		s.writeError(w, http.StatusBadRequest, "Invalid video format")
		return
	}

	jobID := uuid.NewString()
	videoPath := filepath.Join(s.cfg.Paths.UploadDir, jobID+ext)
	dst, err := os.Create(videoPath)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Upload failed: %v", err))
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		_ = os.Remove(videoPath)
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Upload failed: %v", err))
		return
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(videoPath)
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Upload failed: %v", err))
		return
	}

	job := &jobs.Job{
		ID:              jobID,
		Filename:        header.Filename,
		SourceLanguage:  sourceLanguage,
		TargetLanguage:  targetLanguage,
		Status:          jobs.StatusUploaded,
		SourceVideoPath: videoPath,
	}
	if err := s.store.Create(r.Context(), job); err != nil {
		_ = os.Remove(videoPath)
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Upload failed: %v", err))
		return
	}

	s.logger.Info("video uploaded",
		logging.String(logging.FieldJobID, jobID),
		logging.String("filename", header.Filename),
	)
	s.writeJSON(w, http.StatusOK, map[string]string{
		"job_id":  jobID,
		"status":  string(jobs.StatusUploaded),
		"message": "Video uploaded successfully",
	})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	job, err := s.runner.Run(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "Job not found")
		case errors.Is(err, services.ErrValidation):
			s.writeError(w, http.StatusConflict, services.Message(err))
		default:
			// The detail mirrors the error_message persisted on the record.
			s.writeError(w, http.StatusInternalServerError, services.Message(err))
		}
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"job_id":  id,
		"status":  string(job.Status),
		"message": "Dubbing completed successfully",
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if job == nil {
		s.writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	s.writeJSON(w, http.StatusOK, viewFromJob(job))
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, viewsFromJobs(list))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if job == nil || job.Status != jobs.StatusCompleted {
		s.writeError(w, http.StatusNotFound, "Completed job not found")
		return
	}
	if job.FinalVideoPath == "" {
		s.writeError(w, http.StatusNotFound, "Dubbed video file not found")
		return
	}
	if _, err := os.Stat(job.FinalVideoPath); err != nil {
		s.writeError(w, http.StatusNotFound, "Dubbed video file not found")
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", job.Filename+"_dubbed.mp4"))
	http.ServeFile(w, r, job.FinalVideoPath)
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

func (s *Server) handleTranslateText(w http.ResponseWriter, r *http.Request) {
	if s.translator == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Translation not configured")
		return
	}

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	translated, err := s.translator.Translate(r.Context(), req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Translation error: %v", err))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"original":        req.Text,
		"translated":      translated,
		"source_language": req.SourceLang,
		"target_language": req.TargetLang,
	})
}
