package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/citenav/backend/pkg/ai"
)

const defaultEndpoint = "https://api.cohere.ai/v1/chat"

// Client adapts the Cohere chat API to the ai.ChatClient contract. The
// endpoint takes a single message string, so only the most recent message
// is sent.
type Client struct {
	name     string
	endpoint string
	apiKey   string
	model    string

	httpClient *http.Client
}

// NewClientParams defines the configuration for creating a Client.
type NewClientParams struct {
	Name     string
	Endpoint string
	APIKey   string
	Model    string
}

// NewClient creates a chat client for the Cohere chat API.
func NewClient(params NewClientParams) *Client {
	endpoint := params.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		name:       params.Name,
		endpoint:   endpoint,
		apiKey:     params.APIKey,
		model:      params.Model,
		httpClient: http.DefaultClient,
	}
}

type chatRequest struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Text string `json:"text"`
}

// Send submits the latest message and returns the model reply text.
func (c *Client) Send(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", &ai.ProviderError{Provider: c.name, Message: "empty transcript"}
	}
	last := messages[len(messages)-1]

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Message:     last.Message,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ai.ProviderError{
			Provider: c.name,
			Message:  fmt.Sprintf("request failed: %v", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ai.ProviderError{
			Provider:   c.name,
			StatusCode: resp.StatusCode,
			Message:    "chat failed",
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var decoded chatResponse
	if err := ai.UnmarshalFlexible(string(body), &decoded); err != nil {
		return "", &ai.ProviderError{
			Provider: c.name,
			Message:  fmt.Sprintf("failed to decode response: %v", err),
		}
	}
	return decoded.Text, nil
}
