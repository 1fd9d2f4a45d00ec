package chat

// CompletionRequest is the body accepted by the proxy's chat endpoint and
// forwarded to the gateway. Temperature and MaxTokens are pointers so that
// absence is distinguishable from zero and omitted fields stay omitted.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
}

// CompletionResponse is the subset of the gateway's completion body the
// client needs; the proxy itself relays the body verbatim.
type CompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// ModelList is the subset of the gateway's model listing the client needs.
type ModelList struct {
	Data []ModelInfo `json:"data"`
}

// ModelInfo describes one selectable model.
type ModelInfo struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}
