// If you are AI: This file contains unit tests for the WebSocket embed handler.
// Tests verify upgrade, per-message replies and session options.

package wsembed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptvar/internal/core/jsvar"
	"scriptvar/internal/svc/embed"
)

func newTestServer(t *testing.T) (*httptest.Server, *embed.Metrics) {
	t.Helper()
	metrics := embed.NewMetrics(prometheus.NewRegistry())
	handler := NewHandler(jsvar.New(jsvar.Options{}), embed.Settings{MaxBodyBytes: 1024}, log.NewNopLogger(), metrics)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, metrics
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/embed" + query
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWSEmbedReplies(t *testing.T) {
	server, metrics := newTestServer(t)
	conn := dial(t, server, "?var=cfg")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"x":1}`)))
	messageType, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, messageType)
	assert.Equal(t, `<script type="text/javascript">var cfg={"x":"1"}</script>`, string(data))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`["a",null]`)))
	_, data, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `<script type="text/javascript">var cfg=["a",{}]</script>`, string(data))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("ws", embed.OutcomeOK)))
}

func TestWSEmbedStrictNull(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dial(t, server, "?strict_null=true")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`[null]`)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `<script type="text/javascript">var config=[null]</script>`, string(data))
}

func TestWSEmbedBadMessage(t *testing.T) {
	server, metrics := newTestServer(t)
	conn := dial(t, server, "")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"x":`)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error"`)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{1, 2}))
	_, data, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "only text messages")

	// The session stays usable after errors
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`true`)))
	_, data, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `<script type="text/javascript">var config=true</script>`, string(data))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("ws", embed.OutcomeBadRequest)))
}

func TestWSEmbedRejectsBadQuery(t *testing.T) {
	metrics := embed.NewMetrics(prometheus.NewRegistry())
	handler := NewHandler(jsvar.New(jsvar.Options{}), embed.Settings{}, log.NewNopLogger(), metrics)

	req := httptest.NewRequest(http.MethodGet, "/ws/embed?var=not-valid", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/ws/embed", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
