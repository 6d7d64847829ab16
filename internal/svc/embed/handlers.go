// If you are AI: This file implements the embed API handlers.
// Rendering is pure; handlers only decode, look up the cache and record metrics.

package embed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"

	"scriptvar/internal/core/docs"
	"scriptvar/internal/core/jsvar"
	"scriptvar/internal/core/value"
)

// Render modes, also used as the endpoint metric label.
const (
	ModeSerialize = "serialize"
	ModeEmbed     = "embed"
	ModeDocument  = "document"
)

// DocumentInfo describes a registered document in /api/documents.
type DocumentInfo struct {
	Name     string    `json:"name"`
	VarName  string    `json:"var_name"`
	Path     string    `json:"path"`
	LoadedAt time.Time `json:"loaded_at"`
}

// DocumentsResponse represents the /api/documents response.
type DocumentsResponse struct {
	Documents []DocumentInfo `json:"documents"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrInvalidParameter reports a malformed query parameter.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParseQuery reads var and strict_null from q on top of the base options.
// The variable name is validated even for serialize requests so cache keys stay canonical.
func ParseQuery(q url.Values, base jsvar.Options, defaultVar string) (jsvar.Options, string, error) {
	opts := base
	if raw := q.Get("strict_null"); raw != "" {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, "", fmt.Errorf("%w: strict_null=%q", ErrInvalidParameter, raw)
		}
		opts.StrictNull = strict
	}

	varName := q.Get("var")
	if varName == "" {
		varName = defaultVar
	}
	if !jsvar.ValidVarName(varName) {
		return opts, "", fmt.Errorf("%w: var=%q is not a valid identifier", ErrInvalidParameter, varName)
	}
	return opts, varName, nil
}

// handleDocuments handles GET /api/documents.
func (s *Service) handleDocuments(w http.ResponseWriter, r *http.Request) {
	list := s.registry.List()
	infos := make([]DocumentInfo, 0, len(list))
	for _, doc := range list {
		infos = append(infos, DocumentInfo{
			Name:     doc.Name,
			VarName:  doc.VarName,
			Path:     doc.Path,
			LoadedAt: doc.LoadedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, DocumentsResponse{Documents: infos})
}

// handleDocument handles GET /embed/{name} with the pre-rendered snippet.
func (s *Service) handleDocument(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := mux.Vars(r)["name"]

	doc := s.registry.Get(name)
	if doc == nil {
		s.metrics.observe(ModeDocument, OutcomeNotFound, time.Since(start).Seconds())
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("document %q not found", name))
		return
	}

	s.writeText(w, "text/html; charset=utf-8", doc.Script)
	s.metrics.observe(ModeDocument, OutcomeOK, time.Since(start).Seconds())
}

// handleSerialize handles POST /api/serialize.
func (s *Service) handleSerialize(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, ModeSerialize)
}

// handleEmbed handles POST /api/embed.
func (s *Service) handleEmbed(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, ModeEmbed)
}

// render decodes the request body and answers with serialized or embedded text.
func (s *Service) render(w http.ResponseWriter, r *http.Request, mode string) {
	start := time.Now()
	outcome := OutcomeOK
	defer func() {
		s.metrics.observe(mode, outcome, time.Since(start).Seconds())
	}()

	format, err := requestFormat(r)
	if err != nil {
		outcome = OutcomeBadRequest
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts, varName, err := ParseQuery(r.URL.Query(), s.serializer.Options(), s.varName)
	if err != nil {
		outcome = OutcomeBadRequest
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			outcome = OutcomeTooLarge
			s.writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return
		}
		outcome = OutcomeBadRequest
		s.writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	contentType := "text/plain; charset=utf-8"
	if mode == ModeEmbed {
		contentType = "text/html; charset=utf-8"
	}

	key := docs.Key(mode, string(format), varName, opts, body)
	if out, ok := s.cache.Get(key); ok {
		outcome = OutcomeCached
		s.metrics.CacheHits.Inc()
		s.writeText(w, contentType, out)
		return
	}

	v, err := value.Decode(bytes.NewReader(body), format)
	if err != nil {
		outcome = OutcomeBadRequest
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	serializer := s.serializer
	if opts != serializer.Options() {
		serializer = jsvar.New(opts)
	}

	var out string
	if mode == ModeEmbed {
		out, err = serializer.Embed(v, varName)
	} else {
		out, err = serializer.Serialize(v)
	}
	if err != nil {
		outcome = OutcomeUnprocessable
		level.Warn(s.logger).Log("msg", "render failed", "mode", mode, "err", err)
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.cache.Add(key, out)
	s.writeText(w, contentType, out)
}

// requestFormat takes the format query parameter, falling back to Content-Type.
func requestFormat(r *http.Request) (value.Format, error) {
	if name := r.URL.Query().Get("format"); name != "" {
		return value.ParseFormat(name)
	}
	return value.FormatFromContentType(r.Header.Get("Content-Type"))
}

// writeText writes a successful text response.
func (s *Service) writeText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, body)
}

// writeJSON writes a JSON response.
func (s *Service) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.MarshalWrite(w, data); err != nil {
		level.Error(s.logger).Log("msg", "write response", "err", err)
	}
}

// writeError writes an error response.
func (s *Service) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
