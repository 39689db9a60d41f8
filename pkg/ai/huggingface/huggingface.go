package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/citenav/backend/pkg/ai"
)

const defaultBaseURL = "https://api-inference.huggingface.co"

// Client adapts the Hugging Face Inference API to the ai.ChatClient
// contract. The text-generation endpoint takes a raw prompt, so only the
// most recent message is sent.
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

// NewClient creates a chat client for the Hugging Face Inference API.
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

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type inferenceResult struct {
	GeneratedText string `json:"generated_text"`
}

// Send submits the latest message and returns the generated text.
func (c *Client) Send(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", &ai.ProviderError{Provider: c.name, Message: "empty transcript"}
	}
	last := messages[len(messages)-1]

	payload, err := json.Marshal(inferenceRequest{
		Inputs: last.Message,
		Parameters: inferenceParameters{
			MaxNewTokens:   c.maxTokens,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
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
			Message:    "inference failed",
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var decoded []inferenceResult
	if err := ai.UnmarshalFlexible(string(body), &decoded); err != nil {
		return "", &ai.ProviderError{
			Provider: c.name,
			Message:  fmt.Sprintf("failed to decode response: %v", err),
		}
	}

	if len(decoded) == 0 {
		return "", &ai.ProviderError{Provider: c.name, Message: "empty inference result"}
	}
	return decoded[0].GeneratedText, nil
}
