// If you are AI: This file implements the liveness and readiness endpoints for monitoring and integration tests.

package health

import (
	"net/http"
	"sync/atomic"

	"github.com/go-json-experiment/json"
	"github.com/gorilla/mux"
)

// DocumentCounter reports how many documents are loaded.
type DocumentCounter interface {
	Count() int
}

// ReadyResponse represents the /readyz response.
type ReadyResponse struct {
	Ready     bool `json:"ready"`
	Documents int  `json:"documents"`
}

// Service provides health check functionality.
type Service struct {
	documents DocumentCounter
	ready     atomic.Bool
}

// New creates a new health service instance.
// The service reports not ready until MarkReady is called.
func New(documents DocumentCounter) *Service {
	return &Service{documents: documents}
}

// MarkReady flips readiness once startup work is done.
func (s *Service) MarkReady() {
	s.ready.Store(true)
}

// RegisterRoutes adds health check routes to the provided router.
func (s *Service) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", s.handleHealth)
	r.HandleFunc("/readyz", s.handleReady)
}

// handleHealth responds to liveness requests.
// Returns 200 OK to indicate the server is running.
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleReady responds 200 with the document count once ready, 503 before.
func (s *Service) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	resp := ReadyResponse{Ready: s.ready.Load(), Documents: s.documents.Count()}
	status := http.StatusOK
	if !resp.Ready {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.MarshalWrite(w, resp)
}
