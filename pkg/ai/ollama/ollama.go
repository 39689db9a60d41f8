package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/citenav/backend/pkg/ai"

	"github.com/ollama/ollama/api"
	"github.com/pkoukk/tiktoken-go"
	"golang.org/x/sync/semaphore"
)

// Client adapts a locally hosted Ollama server to the ai.ChatClient
// contract. Requests are limited by a weighted semaphore so a burst of
// orchestrator fan-outs cannot overload a single local model.
//
// A Client should be created using NewClient.
type Client struct {
	name  string
	model string

	reqLock *semaphore.Weighted

	Client *api.Client
}

// NewClientParams contains configuration options for creating a new Client.
type NewClientParams struct {
	Name    string
	BaseURL string
	Model   string

	MaxConcurrentRequests int64
}

// NewClient creates a new Ollama-based chat client. It connects to the
// Ollama server at the given BaseURL (or the default if empty).
func NewClient(params NewClientParams) (*Client, error) {
	var (
		u   *url.URL
		err error
	)

	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &Client{
		name:    params.Name,
		model:   params.Model,
		reqLock: semaphore.NewWeighted(maxConcurrent),
		Client:  api.NewClient(u, http.DefaultClient),
	}, nil
}

// Send submits the full transcript and returns the assistant reply text.
// The context window is widened when the prompt exceeds the default 4096
// tokens, estimated with the o200k_base encoding.
func (c *Client) Send(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return "", &ai.ProviderError{Provider: c.name, Message: err.Error()}
	}
	defer c.reqLock.Release(1)

	msgs := make([]api.Message, 0, len(messages))
	var promptText string
	for _, message := range messages {
		msgs = append(msgs, api.Message{Role: message.Role, Content: message.Message})
		promptText += message.Message
	}

	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: msgs,
		Stream:   &stream,
		Options:  map[string]any{"temperature": 0.7},
	}

	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return "", fmt.Errorf("failed to load token encoding: %w", err)
	}
	tokens := 200 + len(enc.Encode(promptText, nil, nil))
	if tokens > 4096 {
		req.Options["num_ctx"] = tokens
	}

	var final api.ChatResponse
	if err := c.Client.Chat(ctx, req, func(cr api.ChatResponse) error {
		final.Message.Content += cr.Message.Content
		if cr.Done {
			final.Done = true
		}
		return nil
	}); err != nil {
		return "", &ai.ProviderError{
			Provider: c.name,
			Message:  fmt.Sprintf("chat failed: %v", err),
		}
	}

	return final.Message.Content, nil
}
