// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the orchestration engine over HTTP. It is a
// thin JSON adapter: every handler decodes a request, calls one engine
// method, and maps the error kind to a status code.
// See docs/ARCHITECTURE.md § Server.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/blog-engine/internal/orchestrator"
	"github.com/pdiddy/blog-engine/internal/stages"
	"github.com/pdiddy/blog-engine/internal/workflow"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Server routes workflow requests to an Engine.
type Server struct {
	engine *orchestrator.Engine
	log    *slog.Logger
}

// New wraps an engine in an HTTP adapter.
func New(engine *orchestrator.Engine, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{engine: engine, log: log}
}

// Routes returns the HTTP handler for the workflow API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/workflows", s.handleWorkflows)
	mux.HandleFunc("/api/workflows/", s.handleWorkflowByID)
	mux.HandleFunc("/api/sessions/", s.handleSessionResolve)
	mux.HandleFunc("/api/export", s.handleExport)
	return s.logMiddleware(mux)
}

type startRequest struct {
	Topic        string   `json:"topic"`
	Title        string   `json:"title"`
	BlogID       string   `json:"blog_id"`
	Instructions string   `json:"instructions"`
	SessionID    string   `json:"session_id"`
	Labels       []string `json:"labels"`
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
}

type updateRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Labels  []string `json:"labels"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWorkflows(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req startRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
			return
		}
		item, err := s.engine.Start(orchestrator.StartRequest{
			Topic:        req.Topic,
			Title:        req.Title,
			BlogID:       req.BlogID,
			Instructions: req.Instructions,
			SessionID:    req.SessionID,
			Labels:       req.Labels,
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	case http.MethodGet:
		if state := r.URL.Query().Get("state"); state != "" {
			writeJSON(w, http.StatusOK, s.engine.ListByState(types.WorkflowState(state)))
			return
		}
		writeJSON(w, http.StatusOK, s.engine.ListAll())
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

// handleWorkflowByID serves /api/workflows/{id} and its action sub-paths
// {id}/approve, {id}/feedback, {id}/advance, {id}/run, {id}/update,
// {id}/status.
func (s *Server) handleWorkflowByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/workflows/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		item, err := s.engine.Get(id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case action == "" && r.Method == http.MethodDelete:
		if err := s.engine.Delete(id); err != nil {
			s.writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case action == "status" && r.Method == http.MethodGet:
		st, err := s.engine.StatusOf(id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	case action == "approve" && r.Method == http.MethodPost:
		item, err := s.engine.Approve(id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case action == "feedback" && r.Method == http.MethodPost:
		var req feedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
			return
		}
		item, err := s.engine.SubmitFeedback(id, req.Feedback)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case action == "advance" && r.Method == http.MethodPost:
		item, err := s.engine.Advance(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case action == "run" && r.Method == http.MethodPost:
		item, err := s.engine.Run(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case action == "update" && r.Method == http.MethodPost:
		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
			return
		}
		item, err := s.engine.UpdatePost(r.Context(), id, orchestrator.PostEdit{
			Title:   req.Title,
			Content: req.Content,
			Labels:  req.Labels,
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	default:
		// A known action with the wrong method is 405; anything else
		// under the item is an unknown resource.
		switch action {
		case "", "status", "approve", "feedback", "advance", "run", "update":
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		default:
			http.NotFound(w, r)
		}
	}
}

func (s *Server) handleSessionResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	sessionID := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	if sessionID == "" {
		http.NotFound(w, r)
		return
	}
	item, err := s.engine.Resolve(sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleExport streams a YAML snapshot of every item.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	if err := s.engine.ExportYAML(w); err != nil {
		s.log.Error("export failed", "error", err)
	}
}

// writeError maps engine error kinds to HTTP statuses: unknown items are
// 404, workflow violations 409, a spent revision budget 422, missing
// configuration or preconditions 400, a busy item 423, and collaborator
// failures 502.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ce *stages.CollaboratorError
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, workflow.ErrIllegalTransition):
		status = http.StatusConflict
	case errors.Is(err, workflow.ErrRevisionBudgetExhausted):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrMissingConfiguration),
		errors.Is(err, workflow.ErrMissingPrecondition):
		status = http.StatusBadRequest
	case errors.Is(err, orchestrator.ErrBusy):
		status = http.StatusLocked
	case errors.As(err, &ce):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request served", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}
