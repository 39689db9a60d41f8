// Package config assembles provider configuration from the environment.
// It is read once at startup; nothing here is consulted on call paths.
package config

import (
	"github.com/citenav/backend/internal/util"
	"github.com/citenav/backend/pkg/ai"
	"github.com/citenav/backend/pkg/ai/providers"
	"github.com/citenav/backend/pkg/logger"
)

const defaultMaxTokens = 1024

// providerDefaults maps each hosted backend to its credential variable and
// default model. A missing credential omits the provider, it is not an
// error.
var providerDefaults = []struct {
	name         string
	keyVariable  string
	defaultModel string
}{
	{providers.Groq, "GROQ_API_KEY", "llama3-70b-8192"},
	{providers.HuggingFace, "HUGGINGFACE_API_KEY", "meta-llama/Meta-Llama-3-70B-Instruct"},
	{providers.OpenRouter, "OPENROUTER_API_KEY", "meta-llama/llama-3-70b-instruct"},
	{providers.Google, "GOOGLE_API_KEY", "gemma-2-9b-it"},
	{providers.Cohere, "COHERE_API_KEY", "command-r"},
	{providers.Mistral, "MISTRAL_API_KEY", "mistral-small-latest"},
}

// LoadProviders reads per-backend credentials from the environment and
// returns the configured provider set. Hosted backends need their
// *_API_KEY set and accept an optional *_MODEL override; the local Ollama
// backend is enabled by OLLAMA_URL (model via OLLAMA_MODEL).
func LoadProviders() []ai.ProviderConfig {
	configs := make([]ai.ProviderConfig, 0, len(providerDefaults)+1)

	for _, def := range providerDefaults {
		apiKey := util.GetEnv(def.keyVariable)
		if apiKey == "" {
			continue
		}
		configs = append(configs, ai.ProviderConfig{
			Name:      def.name,
			APIKey:    apiKey,
			Model:     util.GetEnvString(modelVariable(def.name), def.defaultModel),
			MaxTokens: int(util.GetEnvNumeric("PROVIDER_MAX_TOKENS", defaultMaxTokens)),
		})
	}

	if ollamaURL := util.GetEnv("OLLAMA_URL"); ollamaURL != "" {
		configs = append(configs, ai.ProviderConfig{
			Name:     providers.Ollama,
			Endpoint: ollamaURL,
			Model:    util.GetEnvString("OLLAMA_MODEL", "llama3"),
		})
	}

	if len(configs) == 0 {
		logger.Warn("No AI providers configured, conversations will use scripted replies")
	}
	return configs
}

// LoadSearch reads the citation-data source settings. The API key is
// optional; the public tier works without one.
func LoadSearch() (baseURL, apiKey string) {
	return util.GetEnv("SEMANTIC_SCHOLAR_URL"), util.GetEnv("SEMANTIC_SCHOLAR_API_KEY")
}

func modelVariable(name string) string {
	switch name {
	case providers.Groq:
		return "GROQ_MODEL"
	case providers.HuggingFace:
		return "HUGGINGFACE_MODEL"
	case providers.OpenRouter:
		return "OPENROUTER_MODEL"
	case providers.Google:
		return "GOOGLE_MODEL"
	case providers.Cohere:
		return "COHERE_MODEL"
	case providers.Mistral:
		return "MISTRAL_MODEL"
	default:
		return ""
	}
}
