// Package chat keeps a bounded in-memory history of room messages for
// front ends that render a scrollback (the TUI, logging bots).
package chat

import (
	"sync"
	"time"
)

const MaxChatHistory = 1000

// Kind classifies a stored message by the notification that produced it.
type Kind int

const (
	KindChat Kind = iota
	KindServer
	KindItemLog
	KindHint
	KindDeathLink
)

func (k Kind) String() string {
	switch k {
	case KindChat:
		return "chat"
	case KindServer:
		return "server"
	case KindItemLog:
		return "item"
	case KindHint:
		return "hint"
	case KindDeathLink:
		return "death"
	default:
		return "other"
	}
}

// Message is one scrollback entry.
type Message struct {
	Kind     Kind
	Source   string
	Text     string
	Received time.Time
}

// Store is a mutex-guarded rolling history, oldest entries evicted past
// MaxChatHistory (or a smaller configured limit).
type Store struct {
	mu      sync.RWMutex
	history []Message
	limit   int
}

// NewStore creates a store bounded at limit entries; limit <= 0 uses
// MaxChatHistory.
func NewStore(limit int) *Store {
	if limit <= 0 || limit > MaxChatHistory {
		limit = MaxChatHistory
	}
	return &Store{limit: limit}
}

// Add appends a message, stamping it if Received is zero.
func (s *Store) Add(msg Message) {
	if msg.Received.IsZero() {
		msg.Received = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, msg)
	if len(s.history) > s.limit {
		s.history = s.history[1:]
	}
}

// Recent returns up to count newest messages, oldest first.
func (s *Store) Recent(count int) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := len(s.history) - count
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(s.history)-start)
	copy(out, s.history[start:])
	return out
}

// ByKind returns every stored message of one kind, oldest first.
func (s *Store) ByKind(kind Kind) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Message
	for _, msg := range s.history {
		if msg.Kind == kind {
			out = append(out, msg)
		}
	}
	return out
}

// Len reports the stored message count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// Clear drops the history.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}
