package agoralink

import "sync"

// TypingIndicators tracks which usernames are currently composing.
// Entries are keyed by username, not user id: presence and typing use
// different key spaces in the AgoraLink protocol.
type TypingIndicators struct {
	mu    sync.RWMutex
	users map[string]struct{}
}

func NewTypingIndicators() *TypingIndicators {
	return &TypingIndicators{users: make(map[string]struct{})}
}

// Mark records username as typing. Marking an already-typing username
// is a no-op.
func (t *TypingIndicators) Mark(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.users[username] = struct{}{}
}

// Unmark clears the typing state for username. Unmarking a username
// that was never marked is a no-op.
func (t *TypingIndicators) Unmark(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.users, username)
}

// IsTyping reports whether username is currently marked.
func (t *TypingIndicators) IsTyping(username string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.users[username]
	return ok
}

// Typing returns the marked usernames in no particular order.
func (t *TypingIndicators) Typing() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.users))
	for u := range t.users {
		out = append(out, u)
	}
	return out
}

func (t *TypingIndicators) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.users)
}

func (t *TypingIndicators) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.users = make(map[string]struct{})
}
