package ai

import (
	"context"
	"sync"
	"time"
)

// Provider pairs a ProviderConfig with the ChatClient built for it.
type Provider struct {
	Config ProviderConfig
	Client ChatClient
}

// Orchestrator fans a conversation out to every configured provider
// concurrently and collects one ProviderResult per provider.
//
// An Orchestrator should be created using NewOrchestrator; it holds its
// provider set for its whole lifetime and reads no ambient configuration.
type Orchestrator struct {
	providers []Provider
}

// NewOrchestrator creates an Orchestrator over the given providers. The
// slice may be empty, in which case CallAll returns an empty result set
// and callers are expected to fall back to scripted dialogue.
func NewOrchestrator(providers []Provider) *Orchestrator {
	return &Orchestrator{
		providers: providers,
	}
}

// Providers returns the number of configured providers.
func (o *Orchestrator) Providers() int {
	return len(o.providers)
}

// Names returns the configured provider names in input order.
func (o *Orchestrator) Names() []string {
	names := make([]string, len(o.providers))
	for i, p := range o.providers {
		names[i] = p.Config.Name
	}
	return names
}

// CallAll invokes every provider's Send concurrently and waits for all
// attempts to settle. One ProviderResult is produced per provider, and
// result[i] always corresponds to providers[i] regardless of completion
// order. A failed provider yields a result with Success=false and is not
// retried; it never blocks or fails the other calls.
func (o *Orchestrator) CallAll(ctx context.Context, messages []ChatMessage) []ProviderResult {
	results := make([]ProviderResult, len(o.providers))

	var wg sync.WaitGroup
	for i, provider := range o.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()

			start := time.Now()
			content, err := p.Client.Send(ctx, messages)
			latency := time.Since(start).Milliseconds()

			if err != nil {
				results[i] = ProviderResult{
					Provider:  p.Config.Name,
					LatencyMs: latency,
					Success:   false,
					Error:     err.Error(),
				}
				return
			}

			results[i] = ProviderResult{
				Provider:  p.Config.Name,
				Content:   content,
				LatencyMs: latency,
				Success:   true,
			}
		}(i, provider)
	}
	wg.Wait()

	return results
}
