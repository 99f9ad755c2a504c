// Package session holds the per-process context of the CLI: who is logged
// in, whether the last login hit a lock, the selected model and the
// conversation history.
package session

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/common"
	"github.com/google/uuid"
)

type State int

const (
	Anonymous State = iota
	Locked
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Locked:
		return "locked"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

type Session struct {
	mu           sync.RWMutex
	id           string
	state        State
	username     string
	role         string
	lockedUntil  time.Time
	model        string
	conversation Conversation
}

func New(model string) *Session {
	return &Session{id: uuid.NewString(), model: model}
}

// ID identifies the session in client logs.
func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) LockedUntil() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lockedUntil
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == Authenticated
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == Authenticated && s.role == common.RoleAdmin
}

// Authenticate records a successful login. A different user starts with an
// empty conversation.
func (s *Session) Authenticate(username, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.username != username {
		s.conversation.Clear()
	}
	s.state = Authenticated
	s.username = username
	s.role = role
	s.lockedUntil = time.Time{}
}

// Lock records a rejected login against a locked account.
func (s *Session) Lock(until time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Locked
	s.username = ""
	s.role = ""
	s.lockedUntil = until
	s.conversation.Clear()
}

// Reset returns to Anonymous and clears the conversation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Anonymous
	s.username = ""
	s.role = ""
	s.lockedUntil = time.Time{}
	s.conversation.Clear()
}

func (s *Session) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

func (s *Session) SetModel(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = model
}

func (s *Session) BuildPrompt(query string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conversation.BuildPrompt(query)
}

func (s *Session) AppendTurn(userText, aiText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation.Append(userText, aiText)
}

func (s *Session) History() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conversation.Turns()
}

func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation.Clear()
}
