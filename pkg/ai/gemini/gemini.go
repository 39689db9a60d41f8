package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/citenav/backend/pkg/ai"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client adapts the Google Generative Language API to the ai.ChatClient
// contract. The API is prompt-oriented rather than transcript-oriented,
// so only the most recent message is sent.
type Client struct {
	name      string
	baseURL   string
	apiKey    string
	model     string
	maxTokens int

	httpClient *http.Client
}

// NewClientParams defines the configuration for creating a Client.
type NewClientParams struct {
	Name      string
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
}

// NewClient creates a chat client for the Google Generative Language API.
func NewClient(params NewClientParams) *Client {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		name:       params.Name,
		baseURL:    baseURL,
		apiKey:     params.APIKey,
		model:      params.Model,
		maxTokens:  params.MaxTokens,
		httpClient: http.DefaultClient,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Send submits the latest message and returns the model reply text.
func (c *Client) Send(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", &ai.ProviderError{Provider: c.name, Message: "empty transcript"}
	}
	last := messages[len(messages)-1]

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: last.Message}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
			Message:    "generateContent failed",
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var decoded generateResponse
	if err := ai.UnmarshalFlexible(string(body), &decoded); err != nil {
		return "", &ai.ProviderError{
			Provider: c.name,
			Message:  fmt.Sprintf("failed to decode response: %v", err),
		}
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", &ai.ProviderError{Provider: c.name, Message: "no candidates in response"}
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
