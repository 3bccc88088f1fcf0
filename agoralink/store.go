package agoralink

import "sync"

// MessageStore holds the ordered message backlog for the active room.
// Order is arrival order: the history seed first, then live appends.
// Entries are never re-sorted by timestamp.
type MessageStore struct {
	mu   sync.RWMutex
	msgs []Message
}

func NewMessageStore() *MessageStore { return &MessageStore{} }

// Seed replaces the store contents with the fetched history.
func (s *MessageStore) Seed(msgs []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs[:0:0], msgs...)
}

// Append adds one message at the tail. No deduplication is performed:
// a message id redelivered by the transport is appended again.
func (s *MessageStore) Append(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, m)
}

// Messages returns a copy of the ordered sequence.
func (s *MessageStore) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.msgs)
}

// Clear empties the store. Called when the room is left.
func (s *MessageStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = nil
}
