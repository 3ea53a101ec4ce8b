package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/j-Karnika/Dubbing/internal/config"
	"github.com/j-Karnika/Dubbing/internal/jobs"
	"github.com/j-Karnika/Dubbing/internal/logging"
	"github.com/j-Karnika/Dubbing/internal/pipeline"
)

// Server serves the dubbing job API.
type Server struct {
	cfg        *config.Config
	store      *jobs.Store
	runner     *pipeline.Runner
	translator pipeline.Translator
	logger     *slog.Logger

	listener net.Listener
	server   *http.Server
}

// New constructs the API server over the given store, runner, and translator.
func New(cfg *config.Config, store *jobs.Store, runner *pipeline.Runner, translator pipeline.Translator, logger *slog.Logger) (*Server, error) {
	if cfg == nil || store == nil || runner == nil {
		return nil, errors.New("server requires config, store, and runner")
	}

	srv := &Server{
		cfg:        cfg,
		store:      store,
		runner:     runner,
		translator: translator,
		logger:     logging.NewComponentLogger(logger, "api"),
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/health", srv.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/upload-video", srv.handleUpload).Methods(http.MethodPost)
	router.HandleFunc("/api/process-dubbing/{id}", srv.handleProcess).Methods(http.MethodPost)
	router.HandleFunc("/api/job-status/{id}", srv.handleJobStatus).Methods(http.MethodGet)
	router.HandleFunc("/api/jobs", srv.handleJobs).Methods(http.MethodGet)
	router.HandleFunc("/api/download/{id}", srv.handleDownload).Methods(http.MethodGet)
	router.HandleFunc("/api/translate-text", srv.handleTranslateText).Methods(http.MethodPost)
	router.PathPrefix("/files/").Handler(
		http.StripPrefix("/files/", http.FileServer(http.Dir(cfg.Paths.ProcessedDir))),
	).Methods(http.MethodGet)

	srv.server = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving on the configured bind address. It returns once the
// listener is up; serving continues until the context is canceled or Stop is
// called.
func (s *Server) Start(ctx context.Context) error {
	bind := strings.TrimSpace(s.cfg.Paths.APIBind)
	if bind == "" {
		return errors.New("api bind address required")
	}
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound listener address, or empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", logging.Error(err))
	}
}

// writeError emits the {"detail": ...} error body existing clients parse.
func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}
