package ai

import (
	"context"
	"errors"
	"fmt"
)

// Message roles understood by all chat backends.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a chat conversation.
//
// Role must be one of:
//   - "system"    → instructions for the model
//   - "user"      → a user-provided message
//   - "assistant" → a message from the AI assistant
type ChatMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// ProviderConfig describes one configured inference backend. It is
// immutable once constructed; credentials are supplied by the caller and
// never persisted here.
type ProviderConfig struct {
	Name      string // backend identifier, selects the client implementation
	Endpoint  string // base URL, empty for the backend default
	APIKey    string
	Model     string
	MaxTokens int // maximum output tokens per response
}

// ProviderResult is the outcome of one provider call attempt. It is never
// mutated after creation.
type ProviderResult struct {
	Provider  string `json:"provider"`
	Content   string `json:"content"`
	LatencyMs int64  `json:"latency_ms"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// ChatClient is the common capability implemented by every backend
// adapter: given the full ordered transcript, produce plain response text.
// Implementations differ only in request payload shape and response-field
// extraction.
type ChatClient interface {
	Send(ctx context.Context, messages []ChatMessage) (string, error)
}

// ErrUnsupportedProvider is returned when a ProviderConfig names a backend
// no adapter exists for.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// ProviderError reports a transport or HTTP failure from one backend.
// StatusCode is zero for transport-level failures.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}
