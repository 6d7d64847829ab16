// If you are AI: This file implements the WebSocket handler for interactive embedding.
// Handles GET /ws/embed; every text message is a JSON document answered with its snippet.

package wsembed

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"scriptvar/internal/core/jsvar"
	"scriptvar/internal/core/value"
	"scriptvar/internal/svc/embed"
)

// endpoint is the metric label for websocket renders.
const endpoint = "ws"

// Handler handles WebSocket embed sessions.
type Handler struct {
	serializer *jsvar.Serializer
	varName    string
	maxMessage int64
	logger     log.Logger
	metrics    *embed.Metrics
	upgrader   websocket.Upgrader
}

// NewHandler creates a new WebSocket embed handler.
func NewHandler(serializer *jsvar.Serializer, settings embed.Settings, logger log.Logger, metrics *embed.Metrics) *Handler {
	if settings.VarName == "" {
		settings.VarName = jsvar.DefaultVarName
	}
	return &Handler{
		serializer: serializer,
		varName:    settings.VarName,
		maxMessage: settings.MaxBodyBytes,
		logger:     logger,
		metrics:    metrics,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins
				return true
			},
		},
	}
}

// ServeHTTP upgrades the connection and answers messages until the client leaves.
// Query parameters var and strict_null apply to the whole session.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	opts, varName, err := embed.ParseQuery(r.URL.Query(), h.serializer.Options(), h.varName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	serializer := h.serializer
	if opts != serializer.Options() {
		serializer = jsvar.New(opts)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade failed, response already sent
		return
	}
	defer conn.Close()

	if h.maxMessage > 0 {
		conn.SetReadLimit(h.maxMessage)
	}

	level.Debug(h.logger).Log("msg", "websocket session started", "remote", r.RemoteAddr, "var", varName)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				level.Debug(h.logger).Log("msg", "websocket session ended", "remote", r.RemoteAddr, "err", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			if err := h.writeError(conn, "only text messages are accepted"); err != nil {
				return
			}
			continue
		}

		if err := h.answer(conn, serializer, varName, data); err != nil {
			return
		}
	}
}

// answer renders one message and writes the reply.
func (h *Handler) answer(conn *websocket.Conn, serializer *jsvar.Serializer, varName string, data []byte) error {
	start := time.Now()

	v, err := value.DecodeJSON(bytes.NewReader(data))
	if err != nil {
		h.metrics.Requests.WithLabelValues(endpoint, embed.OutcomeBadRequest).Inc()
		return h.writeError(conn, err.Error())
	}

	out, err := serializer.Embed(v, varName)
	if err != nil {
		h.metrics.Requests.WithLabelValues(endpoint, embed.OutcomeUnprocessable).Inc()
		return h.writeError(conn, err.Error())
	}

	h.metrics.Requests.WithLabelValues(endpoint, embed.OutcomeOK).Inc()
	h.metrics.Duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	return conn.WriteMessage(websocket.TextMessage, []byte(out))
}

// writeError sends an error object as a text message.
func (h *Handler) writeError(conn *websocket.Conn, message string) error {
	data, err := json.Marshal(embed.ErrorResponse{Error: message})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

// RegisterRoutes registers the WebSocket route on the given router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Handle("/ws/embed", h)
}
