// Package session keeps the in-memory registry of research conversations.
// Sessions live for the process lifetime; there is no persistence.
package session

import (
	"fmt"
	"sync"

	"github.com/citenav/backend/pkg/agent"
	"github.com/citenav/backend/pkg/citegraph"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Session is one conversation with its graph machinery. The embedded
// mutex serializes turns and unfolds; the agent and graph themselves are
// single-owner.
type Session struct {
	sync.Mutex

	ID      string
	Agent   *agent.Agent
	Builder *citegraph.Builder
}

// Store is a concurrency-safe session registry.
//
// A Store should be created using NewStore.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session registry.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session around the given agent and builder and
// returns it with a fresh ID.
func (s *Store) Create(a *agent.Agent, b *citegraph.Builder) (*Session, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	sess := &Session{
		ID:      id,
		Agent:   a,
		Builder: b,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get returns the session with the given ID.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	return sess, ok
}

// Len returns the number of registered sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
