// Package http exposes a Pathwise engine as a JSON API: one session per
// player, choices applied via POST, matches and evidence read on demand.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pathwise/pathwise"
	"github.com/pathwise/pathwise/internal/logging"
	"github.com/pathwise/pathwise/pkg/domain"
)

// Server wraps an engine and its live sessions.
type Server struct {
	engine  *pathwise.Engine
	logger  *slog.Logger
	metrics http.Handler

	mu       sync.Mutex
	sessions map[string]*liveSession
}

// liveSession serializes access to one session. Session itself is not safe
// for concurrent use.
type liveSession struct {
	mu      sync.Mutex
	session *pathwise.Session
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler mounts a handler at /metrics (typically promhttp).
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine *pathwise.Engine, opts ...ServerOption) http.Handler {
	s := &Server{
		engine:   engine,
		logger:   logging.NewNop(),
		sessions: make(map[string]*liveSession),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/choices", s.handleApplyChoice)
			r.Post("/reset", s.handleReset)
			r.Get("/matches", s.handleMatches)
			r.Get("/evidence", s.handleEvidence)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createSessionRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	id := req.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	live, err := s.open(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to open session", "session", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to open session")
		return
	}

	live.mu.Lock()
	defer live.mu.Unlock()
	view, err := s.sessionView(live.session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render session")
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	live, ok := s.lookup(w, r)
	if !ok {
		return
	}
	live.mu.Lock()
	defer live.mu.Unlock()

	view, err := s.sessionView(live.session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render session")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type applyChoiceRequest struct {
	ChoiceID string `json:"choice_id"`
}

func (s *Server) handleApplyChoice(w http.ResponseWriter, r *http.Request) {
	live, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req applyChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChoiceID == "" {
		writeError(w, http.StatusBadRequest, "choice_id is required")
		return
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	result, err := live.session.Apply(r.Context(), req.ChoiceID)
	if err != nil {
		var illegal *domain.IllegalChoiceError
		if errors.As(err, &illegal) {
			writeError(w, http.StatusUnprocessableEntity, illegal.Error())
			return
		}
		s.logger.Error("failed to apply choice", "session", live.session.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to apply choice")
		return
	}

	view, err := s.applyView(live.session, result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render session")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	live, ok := s.lookup(w, r)
	if !ok {
		return
	}
	live.mu.Lock()
	defer live.mu.Unlock()

	if err := live.session.Reset(r.Context()); err != nil {
		s.logger.Error("failed to reset session", "session", live.session.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reset session")
		return
	}
	view, err := s.sessionView(live.session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render session")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	live, ok := s.lookup(w, r)
	if !ok {
		return
	}
	live.mu.Lock()
	matches := live.session.Matches()
	live.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

func (s *Server) handleEvidence(w http.ResponseWriter, r *http.Request) {
	live, ok := s.lookup(w, r)
	if !ok {
		return
	}
	live.mu.Lock()
	snap := live.session.Snapshot()
	live.mu.Unlock()

	writeJSON(w, http.StatusOK, snap)
}
