package agent

import (
	"fmt"

	"github.com/citenav/backend/pkg/ai"
)

// systemPrompt frames every provider call. It is prepended per call and
// never stored in the transcript.
const systemPrompt = `You are a Research Architect helping users discover academic papers. Your goal is to refine vague research intents into precise queries.

**Rules**:
1. If the user's input is broad (like "computer vision"), you MUST ask clarifying questions.
2. Check three dimensions:
   - **Scope**: Which specific subdomain? (e.g., "3D Vision" vs "Object Detection")
   - **Time Period**: Current research (2020-2024) or foundational work?
   - **Depth**: Theoretical foundations or practical applications?
3. After 2-3 clarifying questions, say you'll search for papers.
4. Ask ONE question at a time.
5. Be concise and friendly.

When ready to search, say "Let me find relevant papers for you" or similar.`

const (
	// Greeting seeds every new conversation as the first assistant message.
	Greeting = "Hey there! I'm your research navigator. What topic are you exploring today?"

	// TransitionalMessage is emitted when the search trigger fires.
	TransitionalMessage = "Perfect! Let me build your knowledge graph..."

	// ApologyMessage is the turn-boundary recovery reply.
	ApologyMessage = "Sorry, I encountered an error. Please try again."
)

const scriptedAnnounce = "Excellent! Let me find relevant papers for you..."

// scriptedReply is the deterministic fallback generator used when no
// provider is configured or every provider failed. It is keyed purely on
// transcript length (greeting + alternating user/assistant turns): the
// first user turn gets the time-period question, the second the subdomain
// question, everything after that announces the search. It is total and
// never fails.
func scriptedReply(transcript []ai.ChatMessage) string {
	switch len(transcript) {
	case 2:
		return fmt.Sprintf(
			"Great! %s is a fascinating field!\n\nAre you looking for current research (last 3 years) or foundational articles?",
			transcript[1].Message,
		)
	case 4:
		return fmt.Sprintf(
			"Perfect! Within %s, which specific area interests you most?\n\nFor example: 3D Vision, Object Detection, Neural Rendering, or something else?",
			transcript[1].Message,
		)
	default:
		return scriptedAnnounce
	}
}
