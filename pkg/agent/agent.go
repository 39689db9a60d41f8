// Package agent drives the clarify-then-search research conversation. An
// Agent owns one transcript and one citation graph; callers serialize
// access (the HTTP layer locks per session).
package agent

import (
	"context"
	"strings"
	"sync"

	"github.com/citenav/backend/pkg/ai"
	"github.com/citenav/backend/pkg/citegraph"
	"github.com/citenav/backend/pkg/logger"
	"github.com/citenav/backend/pkg/papers"

	"github.com/pkoukk/tiktoken-go"
)

// State is the conversation progress of an Agent.
type State string

const (
	// StateCollecting: no provider configured yet, or still gathering intent.
	StateCollecting State = "collecting"
	// StateClarifying: providers configured, exchanging clarifying turns.
	StateClarifying State = "clarifying"
	// StateSearching: the search trigger fired; paper search in flight or failed.
	StateSearching State = "searching"
	// StateComplete: the citation graph was built and delivered.
	StateComplete State = "complete"
)

// triggerLength is the transcript size (greeting plus turns, including the
// assistant reply just produced) at which a search fires unconditionally.
const triggerLength = 6

// Agent is the conversation controller. Not safe for concurrent use.
//
// An Agent should be created using New.
type Agent struct {
	orchestrator *ai.Orchestrator
	search       papers.SearchClient

	state      State
	transcript []ai.ChatMessage
	triggered  bool
	graph      *citegraph.Graph
}

// NewAgentParams defines the collaborators of an Agent. Orchestrator may
// be nil or empty; the agent then answers from the scripted generator.
type NewAgentParams struct {
	Orchestrator *ai.Orchestrator
	Search       papers.SearchClient
}

// New creates an Agent seeded with the fixed greeting.
func New(params NewAgentParams) *Agent {
	return &Agent{
		orchestrator: params.Orchestrator,
		search:       params.Search,
		state:        StateCollecting,
		transcript: []ai.ChatMessage{
			{Role: ai.RoleAssistant, Message: Greeting},
		},
	}
}

// TurnResult is what one user turn produced: the assistant replies in
// order (reply, then the transitional message when the search fired),
// the resulting state, and the graph when this turn completed a search.
type TurnResult struct {
	Replies []string         `json:"replies"`
	State   State            `json:"state"`
	Graph   *citegraph.Graph `json:"graph,omitempty"`
}

// Turn processes one user message. It never fails: provider errors fall
// back to the scripted generator, a canceled provider call becomes the
// fixed apology, and a failed paper search is logged and leaves the
// conversation in StateSearching.
func (a *Agent) Turn(ctx context.Context, userText string) TurnResult {
	a.transcript = append(a.transcript, ai.ChatMessage{Role: ai.RoleUser, Message: userText})

	reply, err := a.reply(ctx)
	if err != nil {
		logger.Error("[Agent] Turn failed", "err", err)
		a.transcript = append(a.transcript, ai.ChatMessage{Role: ai.RoleAssistant, Message: ApologyMessage})
		// Recovery never moves the conversation backwards: a session that
		// already fired its search keeps its state.
		if a.state == StateCollecting || a.state == StateClarifying {
			a.state = StateClarifying
		}
		return TurnResult{Replies: []string{ApologyMessage}, State: a.state}
	}

	a.transcript = append(a.transcript, ai.ChatMessage{Role: ai.RoleAssistant, Message: reply})
	if a.state == StateCollecting && a.configured() {
		a.state = StateClarifying
	}

	result := TurnResult{Replies: []string{reply}}
	if !a.triggered && shouldTrigger(len(a.transcript), reply) {
		a.triggered = true
		a.state = StateSearching
		a.transcript = append(a.transcript, ai.ChatMessage{Role: ai.RoleAssistant, Message: TransitionalMessage})
		result.Replies = append(result.Replies, TransitionalMessage)

		params := a.searchParams(userText)
		found, err := a.search.Search(ctx, params)
		if err != nil {
			logger.Warn("[Agent] Paper search failed", "query", params.Query, "err", err)
		} else {
			a.graph = citegraph.BuildFromPapers(found)
			a.state = StateComplete
			result.Graph = a.graph
			logger.Info("[Agent] Graph built", "query", params.Query, "nodes", a.graph.NodeCount())
		}
	}

	result.State = a.state
	return result
}

// reply produces the assistant text for the current transcript. The
// synthesis sentinel is never surfaced; it selects the scripted generator
// for the turn instead.
func (a *Agent) reply(ctx context.Context) (string, error) {
	if !a.configured() {
		return scriptedReply(a.transcript), nil
	}

	prompt := make([]ai.ChatMessage, 0, len(a.transcript)+1)
	prompt = append(prompt, ai.ChatMessage{Role: ai.RoleSystem, Message: systemPrompt})
	prompt = append(prompt, a.transcript...)
	logPromptTokens(prompt)

	results := a.orchestrator.CallAll(ctx, prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	synthesized := ai.Synthesize(results)
	if synthesized == ai.SynthesisFallback {
		return scriptedReply(a.transcript), nil
	}
	return synthesized, nil
}

func (a *Agent) configured() bool {
	return a.orchestrator != nil && a.orchestrator.Providers() > 0
}

// searchParams derives the paper query from the latest user message. The
// year lower bound is set when any earlier message signalled
// current-research intent.
func (a *Agent) searchParams(userText string) papers.SearchParams {
	params := papers.SearchParams{Query: userText}
	for _, msg := range a.transcript {
		if strings.Contains(strings.ToLower(msg.Message), "current") {
			params.YearStart = 2020
			break
		}
	}
	return params
}

// shouldTrigger checks the search heuristic against the reply just
// produced. "find"/"search" are matched as whole words so that replies
// like "current research" do not fire; "let me" is a case-insensitive
// substring while "papers" is deliberately case-sensitive.
func shouldTrigger(transcriptLen int, reply string) bool {
	if transcriptLen >= triggerLength {
		return true
	}
	lower := strings.ToLower(reply)
	for _, token := range strings.FieldsFunc(lower, func(r rune) bool {
		return r < 'a' || r > 'z'
	}) {
		if token == "find" || token == "search" {
			return true
		}
	}
	return strings.Contains(lower, "let me") && strings.Contains(reply, "papers")
}

// State returns the current conversation state.
func (a *Agent) State() State {
	return a.state
}

// Transcript returns a copy of the conversation so far.
func (a *Agent) Transcript() []ai.ChatMessage {
	out := make([]ai.ChatMessage, len(a.transcript))
	copy(out, a.transcript)
	return out
}

// Graph returns the citation graph built by a completed search, or nil.
func (a *Agent) Graph() *citegraph.Graph {
	return a.graph
}

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

func logPromptTokens(prompt []ai.ChatMessage) {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("o200k_base")
		if err != nil {
			logger.Debug("[Agent] Token encoding unavailable", "err", err)
			return
		}
		encoding = enc
	})
	if encoding == nil {
		return
	}

	total := 0
	for _, msg := range prompt {
		total += len(encoding.Encode(msg.Message, nil, nil))
	}
	logger.Debug("[Agent] Prompt assembled", "messages", len(prompt), "tokens", total)
}
