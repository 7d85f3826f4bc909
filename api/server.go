// Package api exposes the simulators over HTTP/JSON and provides a typed client for them.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/ossim/sim"
	"github.com/inference-sim/ossim/sim/deadlock"
	"github.com/inference-sim/ossim/sim/filetree"
	"github.com/inference-sim/ossim/sim/memory"
)

// RequestIDHeader carries the per-request id assigned (or propagated) by the server.
const RequestIDHeader = "X-Request-Id"

// Error kinds reported in ErrorResponse.Kind.
const (
	KindUnsupportedAlgorithm = "unsupported_algorithm"
	KindUnsupportedMethod    = "unsupported_method"
	KindValidation           = "validation"
	KindBadRequest           = "bad_request"
	KindFileTree             = "filetree"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// FileTreeRequest is the body of POST and DELETE /filetree.
type FileTreeRequest struct {
	Action string        `json:"action,omitempty"` // "create" (default) or "reset"
	Path   []string      `json:"path"`
	Name   string        `json:"name,omitempty"`
	Type   filetree.Kind `json:"type,omitempty"`
}

// Server routes simulation requests. Simulation handlers are stateless; the
// file tree is the only shared state and is owned by the injected Store.
type Server struct {
	store *filetree.Store
	mux   *http.ServeMux
}

// NewServer creates a Server backed by store.
func NewServer(store *filetree.Store) *Server {
	s := &Server{store: store, mux: http.NewServeMux()}
	s.mux.HandleFunc("POST /cpu", s.handleCPU)
	s.mux.HandleFunc("POST /memory", s.handleMemory)
	s.mux.HandleFunc("POST /rag", s.handleRAG)
	s.mux.HandleFunc("POST /banker", s.handleBanker)
	s.mux.HandleFunc("GET /filetree", s.handleFileTreeGet)
	s.mux.HandleFunc("POST /filetree", s.handleFileTreePost)
	s.mux.HandleFunc("DELETE /filetree", s.handleFileTreeDelete)
	return s
}

// Handler returns the routed handler wrapped with request-id tagging and access logging.
func (s *Server) Handler() http.Handler {
	return withRequestID(s.mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) handleCPU(w http.ResponseWriter, r *http.Request) {
	var req sim.ScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := sim.Run(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMemory(w http.ResponseWriter, r *http.Request) {
	var req memory.Request
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := memory.Run(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRAG(w http.ResponseWriter, r *http.Request) {
	var req deadlock.Request
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := deadlock.DetectCycle(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBanker(w http.ResponseWriter, r *http.Request) {
	var req deadlock.Request
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := deadlock.CheckSafety(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleFileTreeGet(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleFileTreePost(w http.ResponseWriter, r *http.Request) {
	var req FileTreeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	switch req.Action {
	case "", "create":
		tree, err := s.store.Create(req.Path, req.Name, req.Type)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tree)
	case "reset":
		writeJSON(w, http.StatusOK, s.store.Reset())
	default:
		writeError(w, r, fmt.Errorf("%w: unknown action %q", errBadRequest, req.Action))
	}
}

func (s *Server) handleFileTreeDelete(w http.ResponseWriter, r *http.Request) {
	var req FileTreeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tree, err := s.store.Delete(req.Path)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

var errBadRequest = errors.New("bad request")

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, fmt.Errorf("%w: decoding body: %v", errBadRequest, err))
		return false
	}
	return true
}

// errorKind classifies err for ErrorResponse.Kind.
func errorKind(err error) string {
	var unsupportedAlgo *sim.UnsupportedAlgorithmError
	var unsupportedMethod *memory.UnsupportedMethodError
	var validation *sim.ValidationError
	switch {
	case errors.As(err, &unsupportedAlgo):
		return KindUnsupportedAlgorithm
	case errors.As(err, &unsupportedMethod):
		return KindUnsupportedMethod
	case errors.As(err, &validation):
		return KindValidation
	case errors.Is(err, filetree.ErrInvalidParent), errors.Is(err, filetree.ErrNameExists),
		errors.Is(err, filetree.ErrDeleteRoot), errors.Is(err, filetree.ErrInvalidPath),
		errors.Is(err, filetree.ErrInvalidNode):
		return KindFileTree
	default:
		return KindBadRequest
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errorKind(err)
	logrus.WithFields(logrus.Fields{
		"request_id": w.Header().Get(RequestIDHeader),
		"path":       r.URL.Path,
		"kind":       kind,
	}).Warnf("rejected request: %v", err)
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("Error writing response: %v", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		logrus.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"elapsed":    time.Since(start),
		}).Debug("handled request")
	})
}
