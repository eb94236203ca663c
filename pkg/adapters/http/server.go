// Package http exposes the editor over a JSON API. It is the entry
// point for the UI event layer: the UI dispatches commands and re-reads
// workflow state here, while all mutation is serialized through one
// editor per workflow.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/espalier-dev/espalier"
	presentation "github.com/espalier-dev/espalier/internal/presentation/graph"
	"github.com/espalier-dev/espalier/pkg/command"
	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/ports"
)

// Server routes workflow CRUD and command dispatch to per-workflow
// editors backed by a WorkflowStore.
type Server struct {
	store      ports.WorkflowStore
	logger     *slog.Logger
	gatherer   prometheus.Gatherer
	editorOpts []espalier.Option

	mu       sync.Mutex
	sessions map[string]*session
}

// session pairs an open editor with the document metadata it was
// hydrated from.
type session struct {
	editor *espalier.Editor
	name   string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithMetrics exposes the gatherer's metrics on GET /metrics.
func WithMetrics(g prometheus.Gatherer) ServerOption {
	return func(s *Server) { s.gatherer = g }
}

// WithEditorOptions forwards options to every editor the server opens.
func WithEditorOptions(opts ...espalier.Option) ServerOption {
	return func(s *Server) { s.editorOpts = opts }
}

// NewServer creates a server over the given store.
func NewServer(store ports.WorkflowStore, opts ...ServerOption) *Server {
	s := &Server{
		store:    store,
		logger:   slog.New(slog.DiscardHandler),
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the chi router for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Route("/workflows", func(r chi.Router) {
		r.Get("/", s.listWorkflows)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getWorkflow)
			r.Put("/", s.putWorkflow)
			r.Delete("/", s.deleteWorkflow)
			r.Post("/commands", s.postCommand)
			r.Post("/undo", s.postUndo)
			r.Post("/redo", s.postRedo)
			r.Get("/diagram", s.getDiagram)
			r.Get("/validate", s.getValidate)
		})
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// workflowResponse is the envelope returned after reads and mutations.
type workflowResponse struct {
	ID      string        `json:"id"`
	Name    string        `json:"name,omitempty"`
	Steps   []domain.Step `json:"steps"`
	CanUndo bool          `json:"canUndo"`
	CanRedo bool          `json:"canRedo"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) listWorkflows(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"ids": ids})
}

func (s *Server) getWorkflow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.openSession(r, id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.response(id, sess))
}

func (s *Server) putWorkflow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var wf domain.Workflow
	if err := json.NewDecoder(r.Body).Decode(&wf); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	wf.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(r.Context(), &wf); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	// Replacing the document discards any open editing session.
	delete(s.sessions, id)
	sess, err := s.openSession(r, id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.response(id, sess))
}

func (s *Server) deleteWorkflow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	delete(s.sessions, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postCommand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	kind, _ := raw["type"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.openSession(r, id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if err := s.dispatch(sess.editor, kind, raw); err != nil {
		s.writeCommandError(w, err)
		return
	}
	if err := s.persist(r, id, sess); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.response(id, sess))
}

func (s *Server) postUndo(w http.ResponseWriter, r *http.Request) {
	s.replayHistory(w, r, func(e *espalier.Editor) error { return e.Undo() })
}

func (s *Server) postRedo(w http.ResponseWriter, r *http.Request) {
	s.replayHistory(w, r, func(e *espalier.Editor) error { return e.Redo() })
}

func (s *Server) replayHistory(w http.ResponseWriter, r *http.Request, step func(*espalier.Editor) error) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.openSession(r, id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if err := step(sess.editor); err != nil {
		s.writeCommandError(w, err)
		return
	}
	if err := s.persist(r, id, sess); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.response(id, sess))
}

func (s *Server) getDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.openSession(r, id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	var overlay *presentation.Overlay
	if selected := r.URL.Query().Get("selected"); selected != "" {
		overlay = &presentation.Overlay{SelectedNode: selected}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, presentation.GenerateMermaid(sess.editor.Graph(), overlay))
}

func (s *Server) getValidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.openSession(r, id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	issues := sess.editor.Validate()
	s.writeJSON(w, http.StatusOK, map[string]any{"issues": issues, "valid": len(issues) == 0})
}

// openSession returns the live editor for a workflow, hydrating it from
// the store on first access. Callers must hold s.mu.
func (s *Server) openSession(r *http.Request, id string) (*session, error) {
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	wf, err := s.store.Load(r.Context(), id)
	if err != nil {
		return nil, err
	}
	opts := append([]espalier.Option{espalier.WithLogger(s.logger)}, s.editorOpts...)
	sess := &session{
		editor: espalier.Load(wf.Steps, opts...),
		name:   wf.Name,
	}
	s.sessions[id] = sess
	return sess, nil
}

func (s *Server) persist(r *http.Request, id string, sess *session) error {
	return s.store.Save(r.Context(), sess.editor.Workflow(id, sess.name))
}

func (s *Server) response(id string, sess *session) workflowResponse {
	return workflowResponse{
		ID:      id,
		Name:    sess.name,
		Steps:   sess.editor.Steps(),
		CanUndo: sess.editor.CanUndo(),
		CanRedo: sess.editor.CanRedo(),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("request failed", "status", status, "error", err)
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrWorkflowNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeError(w, http.StatusInternalServerError, err)
}

func (s *Server) writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNodeNotFound), errors.Is(err, domain.ErrEdgeNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, command.ErrNothingToUndo), errors.Is(err, command.ErrNothingToRedo):
		s.writeError(w, http.StatusConflict, err)
	default:
		s.writeError(w, http.StatusBadRequest, err)
	}
}
