package chat

import (
	"sync"
	"time"
)

// Store keeps conversation state in memory, keyed by session ID. State is
// lost on restart; there is no persistence layer behind it.
type Store struct {
	mu            sync.RWMutex
	conversations map[string][]Message
}

// NewStore creates an empty in-memory conversation store.
func NewStore() *Store {
	return &Store{conversations: make(map[string][]Message)}
}

// Append adds a message to the conversation and returns it with its
// ordinal ID and timestamp assigned.
func (s *Store) Append(sessionID string, sender Sender, text string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := Message{
		ID:        len(s.conversations[sessionID]) + 1,
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	}
	s.conversations[sessionID] = append(s.conversations[sessionID], msg)
	return msg
}

// History returns a copy of the conversation's ordered message sequence.
func (s *Store) History(sessionID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.conversations[sessionID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
