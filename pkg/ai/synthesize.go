package ai

import "strings"

// SynthesisFallback is returned by Synthesize when no provider produced a
// usable answer. Callers detect it by equality and substitute their own
// fallback dialogue; it is never shown to the user directly.
const SynthesisFallback = "I apologize, but I'm having trouble connecting to the AI models right now. Please try again."

// Synthesize reduces multiple provider results to one answer. It is pure
// and deterministic: identical input always yields identical output.
//
// Results that failed or returned only whitespace are discarded. A single
// surviving result is returned verbatim; among several, the longest
// content wins, with ties broken by input order. Longest-wins is a
// deliberately simple, testable policy rather than a quality judgment;
// replace it with scored synthesis if answer quality ever matters here.
func Synthesize(results []ProviderResult) string {
	var best *ProviderResult
	for i := range results {
		r := &results[i]
		if !r.Success || strings.TrimSpace(r.Content) == "" {
			continue
		}
		if best == nil || len(r.Content) > len(best.Content) {
			best = r
		}
	}

	if best == nil {
		return SynthesisFallback
	}
	return best.Content
}
