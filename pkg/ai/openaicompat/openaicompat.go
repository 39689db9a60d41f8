package openaicompat

import (
	"context"
	"errors"
	"fmt"

	"github.com/citenav/backend/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client adapts any backend that speaks the OpenAI chat-completions wire
// format (Groq, OpenRouter, Mistral) to the ai.ChatClient contract. The
// backends differ only in base URL, default model and extra headers.
//
// A Client should be created using NewClient.
type Client struct {
	name      string
	model     string
	maxTokens int

	client *openai.Client
}

// NewClientParams defines the configuration for creating a Client.
//
// Name identifies the backend in results and errors. BaseURL selects the
// compatible endpoint; Headers are added to every request (OpenRouter
// requires attribution headers, the others none).
type NewClientParams struct {
	Name      string
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Headers   map[string]string
}

// NewClient creates a chat client for an OpenAI-compatible backend.
//
// Example:
//
//	client := openaicompat.NewClient(openaicompat.NewClientParams{
//		Name:      "groq",
//		BaseURL:   "https://api.groq.com/openai/v1",
//		APIKey:    os.Getenv("GROQ_API_KEY"),
//		Model:     "llama3-70b-8192",
//		MaxTokens: 1024,
//	})
func NewClient(params NewClientParams) *Client {
	options := []option.RequestOption{
		option.WithAPIKey(params.APIKey),
	}
	if params.BaseURL != "" {
		options = append(options, option.WithBaseURL(params.BaseURL))
	}
	for k, v := range params.Headers {
		options = append(options, option.WithHeader(k, v))
	}

	client := openai.NewClient(options...)

	return &Client{
		name:      params.Name,
		model:     params.Model,
		maxTokens: params.MaxTokens,
		client:    &client,
	}
}

// Send submits the full transcript and returns the assistant reply text.
func (c *Client) Send(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, message := range messages {
		switch message.Role {
		case ai.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(message.Message))
		case ai.RoleUser:
			msgs = append(msgs, openai.UserMessage(message.Message))
		case ai.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(message.Message))
		}
	}

	body := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    msgs,
		MaxTokens:   openai.Int(int64(c.maxTokens)),
		Temperature: openai.Float(0.7),
	}

	response, err := c.client.Chat.Completions.New(ctx, body)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &ai.ProviderError{
				Provider:   c.name,
				StatusCode: apiErr.StatusCode,
				Message:    "chat completion failed",
			}
		}
		return "", &ai.ProviderError{
			Provider: c.name,
			Message:  fmt.Sprintf("chat completion failed: %v", err),
		}
	}

	if len(response.Choices) == 0 {
		return "", &ai.ProviderError{
			Provider: c.name,
			Message:  "no choices in response",
		}
	}
	return response.Choices[0].Message.Content, nil
}
