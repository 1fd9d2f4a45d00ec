package http

import (
	"log/slog"
	"net/http"

	"github.com/eagleai/eaglechat/internal/adapter/gateway"
	"github.com/eagleai/eaglechat/internal/domain/chat"
)

// defaultMaxBodyBytes caps chat request bodies when no limit is configured.
const defaultMaxBodyBytes = 1 << 20

// Handlers carries the proxy's dependencies. The proxy is stateless: nothing
// here is mutated between requests.
type Handlers struct {
	Gateway      *gateway.Client
	DefaultModel string
	MaxBodyBytes int64
}

// ListModels handles GET /api/models: the gateway's model listing is relayed
// verbatim on success.
func (h *Handlers) ListModels(w http.ResponseWriter, r *http.Request) {
	body, err := h.Gateway.ListModels(r.Context())
	if err != nil {
		slog.Error("model listing failed", "error", err)
		writeGatewayError(w, "Failed to fetch models", err)
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}

// ChatCompletion handles POST /api/chat. The request is validated, defaults
// are filled in, and the gateway's completion body is relayed verbatim on
// success. Temperature and max_tokens pass through only when the caller sent
// them.
func (h *Handlers) ChatCompletion(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}

	req, ok := readJSON[chat.CompletionRequest](w, r, limit)
	if !ok {
		return
	}
	if req.Messages == nil {
		writeError(w, http.StatusBadRequest, "Messages array is required")
		return
	}
	if req.Model == "" {
		req.Model = h.DefaultModel
	}

	body, err := h.Gateway.CreateChatCompletion(r.Context(), req)
	if err != nil {
		slog.Error("chat completion failed", "model", req.Model, "error", err)
		writeGatewayError(w, "Failed to get chat completion", err)
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}

// Health handles GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
