package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/eagleai/eaglechat/internal/adapter/gateway"
)

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// readJSON decodes a JSON request body with a size limit.
func readJSON[T any](w http.ResponseWriter, r *http.Request, bodyLimit int64) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		if err.Error() == "http: request body too large" {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return v, false
	}
	return v, true
}

// ---------------------------------------------------------------------------
// Response helpers
// ---------------------------------------------------------------------------

type errorResponse struct {
	Error string `json:"error"`
}

// proxyError is the normalized failure envelope for upstream errors: a short
// summary plus whatever the gateway reported.
type proxyError struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// writeRawJSON relays an upstream body verbatim.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response body", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeGatewayError translates a gateway failure into the {error, details}
// envelope. The upstream status is preserved when the gateway reported one;
// transport failures become a 500.
func writeGatewayError(w http.ResponseWriter, summary string, err error) {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		details := json.RawMessage(apiErr.Body)
		if !json.Valid(details) {
			details, _ = json.Marshal(string(apiErr.Body))
		}
		writeJSON(w, apiErr.Status, proxyError{Error: summary, Details: details})
		return
	}

	details, _ := json.Marshal(err.Error())
	writeJSON(w, http.StatusInternalServerError, proxyError{Error: summary, Details: details})
}
