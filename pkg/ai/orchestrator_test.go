package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubClient struct {
	send func(ctx context.Context, messages []ChatMessage) (string, error)
}

func (s *stubClient) Send(ctx context.Context, messages []ChatMessage) (string, error) {
	return s.send(ctx, messages)
}

func TestCallAll_EmptyProviderSet(t *testing.T) {
	o := NewOrchestrator(nil)
	results := o.CallAll(context.Background(), []ChatMessage{{Role: RoleUser, Message: "hi"}})
	if len(results) != 0 {
		t.Fatalf("expected empty result set, got %d results", len(results))
	}
}

func TestCallAll_PreservesInputOrder(t *testing.T) {
	// The failing provider finishes only after the succeeding one, so a
	// completion-ordered implementation would swap the results.
	second := make(chan struct{})

	o := NewOrchestrator([]Provider{
		{
			Config: ProviderConfig{Name: "slow-fail"},
			Client: &stubClient{send: func(context.Context, []ChatMessage) (string, error) {
				<-second
				return "", errors.New("backend down")
			}},
		},
		{
			Config: ProviderConfig{Name: "fast-ok"},
			Client: &stubClient{send: func(context.Context, []ChatMessage) (string, error) {
				defer close(second)
				return "answer", nil
			}},
		},
	})

	results := o.CallAll(context.Background(), []ChatMessage{{Role: RoleUser, Message: "hi"}})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Provider != "slow-fail" || results[0].Success {
		t.Fatalf("results[0] = %+v, want failed slow-fail", results[0])
	}
	if results[0].Error == "" {
		t.Fatal("expected error detail on failed result")
	}
	if results[1].Provider != "fast-ok" || !results[1].Success || results[1].Content != "answer" {
		t.Fatalf("results[1] = %+v, want successful fast-ok", results[1])
	}
}

func TestCallAll_FailureDoesNotBlockOthers(t *testing.T) {
	o := NewOrchestrator([]Provider{
		{
			Config: ProviderConfig{Name: "broken"},
			Client: &stubClient{send: func(context.Context, []ChatMessage) (string, error) {
				return "", &ProviderError{Provider: "broken", StatusCode: 500, Message: "boom"}
			}},
		},
		{
			Config: ProviderConfig{Name: "healthy"},
			Client: &stubClient{send: func(context.Context, []ChatMessage) (string, error) {
				return "still here", nil
			}},
		},
	})

	results := o.CallAll(context.Background(), nil)
	if !results[1].Success {
		t.Fatalf("healthy provider failed: %+v", results[1])
	}
	if results[0].Success {
		t.Fatalf("broken provider reported success: %+v", results[0])
	}
	if !strings.Contains(results[0].Error, "boom") {
		t.Fatalf("expected wrapped provider error, got %q", results[0].Error)
	}
}

func TestCallAll_MeasuresLatency(t *testing.T) {
	o := NewOrchestrator([]Provider{
		{
			Config: ProviderConfig{Name: "timed"},
			Client: &stubClient{send: func(context.Context, []ChatMessage) (string, error) {
				time.Sleep(15 * time.Millisecond)
				return "ok", nil
			}},
		},
	})

	results := o.CallAll(context.Background(), nil)
	if results[0].LatencyMs < 10 {
		t.Fatalf("expected latency >= 10ms, got %d", results[0].LatencyMs)
	}
}
