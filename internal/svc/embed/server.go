// If you are AI: This file provides the embed API service integration.
// The API renders registered documents and ad-hoc request bodies as script snippets.

package embed

import (
	"net/http"

	"github.com/go-kit/log"
	"github.com/gorilla/mux"

	"scriptvar/internal/core/docs"
	"scriptvar/internal/core/jsvar"
)

// Service provides the rendering HTTP API.
type Service struct {
	registry   *docs.Registry
	cache      *docs.Cache
	serializer *jsvar.Serializer
	varName    string
	maxBody    int64
	logger     log.Logger
	metrics    *Metrics
}

// Settings carries the request-independent knobs of the service.
type Settings struct {
	VarName      string // Default variable name for /api/embed
	MaxBodyBytes int64  // Request body limit
}

// NewService creates a new embed API service.
func NewService(registry *docs.Registry, cache *docs.Cache, serializer *jsvar.Serializer,
	settings Settings, logger log.Logger, metrics *Metrics) *Service {
	if settings.VarName == "" {
		settings.VarName = jsvar.DefaultVarName
	}
	return &Service{
		registry:   registry,
		cache:      cache,
		serializer: serializer,
		varName:    settings.VarName,
		maxBody:    settings.MaxBodyBytes,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterRoutes registers API routes on the provided router.
func (s *Service) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/documents", s.handleDocuments).Methods(http.MethodGet)
	r.HandleFunc("/api/serialize", s.handleSerialize).Methods(http.MethodPost)
	r.HandleFunc("/api/embed", s.handleEmbed).Methods(http.MethodPost)
	r.HandleFunc("/embed/{name}", s.handleDocument).Methods(http.MethodGet)
}
