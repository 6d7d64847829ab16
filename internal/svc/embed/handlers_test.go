// If you are AI: This file contains unit tests for embed API handlers.
// Tests verify rendered bodies, status codes and metrics.

package embed

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/go-kit/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptvar/internal/core/docs"
	"scriptvar/internal/core/jsvar"
	"scriptvar/internal/core/value"
)

type fixture struct {
	router   *mux.Router
	registry *docs.Registry
	metrics  *Metrics
}

func newFixture(t *testing.T, opts jsvar.Options) *fixture {
	t.Helper()

	serializer := jsvar.New(opts)
	registry := docs.NewRegistry(serializer)
	cache, err := docs.NewCache(16)
	require.NoError(t, err)

	metrics := NewMetrics(prometheus.NewRegistry())
	service := NewService(registry, cache, serializer, Settings{MaxBodyBytes: 64}, log.NewNopLogger(), metrics)

	router := mux.NewRouter()
	service.RegisterRoutes(router)
	return &fixture{router: router, registry: registry, metrics: metrics}
}

func (f *fixture) do(method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestHandleSerialize(t *testing.T) {
	f := newFixture(t, jsvar.Options{})

	w := f.do(http.MethodPost, "/api/serialize", "application/json", `{"a":null,"n":5,"s":"<b>"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"a":{},"n":"5","s":"&lt;b&gt;"}`, w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))

	w = f.do(http.MethodPost, "/api/serialize?strict_null=true", "application/json", `{"a":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"a":null}`, w.Body.String())
}

func TestHandleSerializeYAML(t *testing.T) {
	f := newFixture(t, jsvar.Options{})

	w := f.do(http.MethodPost, "/api/serialize?format=yaml", "", "b: 1\na: [x]\n")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"b":"1","a":["x"]}`, w.Body.String())
}

func TestHandleEmbed(t *testing.T) {
	f := newFixture(t, jsvar.Options{})

	w := f.do(http.MethodPost, "/api/embed?var=cfg", "application/json", `{"x":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `<script type="text/javascript">var cfg={"x":"1"}</script>`, w.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	w = f.do(http.MethodPost, "/api/embed", "application/json", `[]`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `<script type="text/javascript">var config=[]</script>`, w.Body.String())

	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Requests.WithLabelValues(ModeEmbed, OutcomeOK)))
}

func TestHandleEmbedCache(t *testing.T) {
	f := newFixture(t, jsvar.Options{})

	for i := 0; i < 2; i++ {
		w := f.do(http.MethodPost, "/api/embed?var=cfg", "application/json", `{"x":1}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `<script type="text/javascript">var cfg={"x":"1"}</script>`, w.Body.String())
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Requests.WithLabelValues(ModeEmbed, OutcomeCached)))
}

func TestHandleRenderErrors(t *testing.T) {
	f := newFixture(t, jsvar.Options{MaxDepth: 1})

	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		status      int
	}{
		{"bad var", "/api/embed?var=a-b", "application/json", `{}`, http.StatusBadRequest},
		{"bad strict_null", "/api/serialize?strict_null=maybe", "application/json", `{}`, http.StatusBadRequest},
		{"bad format", "/api/serialize?format=toml", "", `{}`, http.StatusBadRequest},
		{"bad content type", "/api/serialize", "text/csv", `a,b`, http.StatusBadRequest},
		{"bad json", "/api/serialize", "application/json", `{"a":`, http.StatusBadRequest},
		{"empty body", "/api/serialize", "application/json", ``, http.StatusBadRequest},
		{"too large", "/api/serialize", "application/json", `"` + strings.Repeat("x", 100) + `"`, http.StatusRequestEntityTooLarge},
		{"too deep", "/api/serialize", "application/json", `[[[1]]]`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(http.MethodPost, tt.target, tt.contentType, tt.body)
			assert.Equal(t, tt.status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleDocument(t *testing.T) {
	f := newFixture(t, jsvar.Options{})

	doc, err := f.registry.Render("answers", "answers", value.Choices([]value.Choice{{Code: "1", Label: "Yes"}}))
	require.NoError(t, err)
	f.registry.Put(doc)

	w := f.do(http.MethodGet, "/embed/answers", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `<script type="text/javascript">var answers=[{"Code":"1","Label":"Yes"}]</script>`, w.Body.String())

	w = f.do(http.MethodGet, "/embed/"+url.PathEscape("missing"), "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Requests.WithLabelValues(ModeDocument, OutcomeNotFound)))
}

func TestHandleDocuments(t *testing.T) {
	f := newFixture(t, jsvar.Options{})

	w := f.do(http.MethodGet, "/api/documents", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var empty DocumentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	assert.NotNil(t, empty.Documents)
	assert.Empty(t, empty.Documents)

	for _, name := range []string{"b", "a"} {
		doc, err := f.registry.Render(name, "", value.Null{})
		require.NoError(t, err)
		f.registry.Put(doc)
	}

	w = f.do(http.MethodGet, "/api/documents", "", "")
	var resp DocumentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Documents, 2)
	assert.Equal(t, "a", resp.Documents[0].Name)
	assert.Equal(t, "config", resp.Documents[0].VarName)
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t, jsvar.Options{})

	w := f.do(http.MethodGet, "/api/embed", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestParseQuery(t *testing.T) {
	opts, name, err := ParseQuery(url.Values{"var": {"page"}, "strict_null": {"1"}}, jsvar.Options{MaxDepth: 3}, "config")
	require.NoError(t, err)
	assert.Equal(t, "page", name)
	assert.Equal(t, jsvar.Options{MaxDepth: 3, StrictNull: true}, opts)

	_, name, err = ParseQuery(url.Values{}, jsvar.Options{}, "config")
	require.NoError(t, err)
	assert.Equal(t, "config", name)

	_, _, err = ParseQuery(url.Values{"var": {"1x"}}, jsvar.Options{}, "config")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
