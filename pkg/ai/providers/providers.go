package providers

import (
	"fmt"

	"github.com/citenav/backend/pkg/ai"
	"github.com/citenav/backend/pkg/ai/cohere"
	"github.com/citenav/backend/pkg/ai/gemini"
	"github.com/citenav/backend/pkg/ai/huggingface"
	"github.com/citenav/backend/pkg/ai/ollama"
	"github.com/citenav/backend/pkg/ai/openaicompat"
)

// Backend names accepted by NewChatClient. Adding a backend means adding
// one adapter package and one case here; the orchestrator is untouched.
const (
	Groq        = "groq"
	HuggingFace = "huggingface"
	OpenRouter  = "openrouter"
	Google      = "google"
	Cohere      = "cohere"
	Mistral     = "mistral"
	Ollama      = "ollama"
)

const (
	groqBaseURL       = "https://api.groq.com/openai/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	mistralBaseURL    = "https://api.mistral.ai/v1"

	ollamaMaxConcurrentRequests = 4
)

// NewChatClient builds the backend adapter selected by cfg.Name. An
// unknown name fails with ai.ErrUnsupportedProvider.
func NewChatClient(cfg ai.ProviderConfig) (ai.ChatClient, error) {
	switch cfg.Name {
	case Groq:
		return openaicompat.NewClient(openaicompat.NewClientParams{
			Name:      cfg.Name,
			BaseURL:   endpointOrDefault(cfg.Endpoint, groqBaseURL),
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		}), nil
	case OpenRouter:
		return openaicompat.NewClient(openaicompat.NewClientParams{
			Name:      cfg.Name,
			BaseURL:   endpointOrDefault(cfg.Endpoint, openRouterBaseURL),
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
			Headers: map[string]string{
				"HTTP-Referer": "https://github.com/citenav/backend",
				"X-Title":      "citenav",
			},
		}), nil
	case Mistral:
		return openaicompat.NewClient(openaicompat.NewClientParams{
			Name:      cfg.Name,
			BaseURL:   endpointOrDefault(cfg.Endpoint, mistralBaseURL),
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		}), nil
	case Google:
		return gemini.NewClient(gemini.NewClientParams{
			Name:      cfg.Name,
			BaseURL:   cfg.Endpoint,
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		}), nil
	case Cohere:
		return cohere.NewClient(cohere.NewClientParams{
			Name:     cfg.Name,
			Endpoint: cfg.Endpoint,
			APIKey:   cfg.APIKey,
			Model:    cfg.Model,
		}), nil
	case HuggingFace:
		return huggingface.NewClient(huggingface.NewClientParams{
			Name:      cfg.Name,
			BaseURL:   cfg.Endpoint,
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		}), nil
	case Ollama:
		return ollama.NewClient(ollama.NewClientParams{
			Name:                  cfg.Name,
			BaseURL:               cfg.Endpoint,
			Model:                 cfg.Model,
			MaxConcurrentRequests: ollamaMaxConcurrentRequests,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ai.ErrUnsupportedProvider, cfg.Name)
	}
}

// NewOrchestrator builds one adapter per config and wraps them in an
// orchestrator. Configuration is resolved here, once; nothing ambient is
// read during calls.
func NewOrchestrator(configs []ai.ProviderConfig) (*ai.Orchestrator, error) {
	providers := make([]ai.Provider, 0, len(configs))
	for _, cfg := range configs {
		client, err := NewChatClient(cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, ai.Provider{Config: cfg, Client: client})
	}
	return ai.NewOrchestrator(providers), nil
}

func endpointOrDefault(endpoint, fallback string) string {
	if endpoint != "" {
		return endpoint
	}
	return fallback
}
