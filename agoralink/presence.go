package agoralink

import "sync"

// PresenceTracker holds the set of users currently joined to the room,
// keyed by user id.
type PresenceTracker struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{users: make(map[string]User)}
}

// SetAll replaces the full set from a snapshot. Replaying an identical
// snapshot yields the same set, not a union.
func (p *PresenceTracker) SetAll(users []User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users = make(map[string]User, len(users))
	for _, u := range users {
		p.users[u.ID] = u
	}
}

// Add inserts a user unless the id is already present.
func (p *PresenceTracker) Add(u User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.users[u.ID]; ok {
		return
	}
	p.users[u.ID] = u
}

// Remove deletes the user with the given id. Removing an absent id is
// a no-op.
func (p *PresenceTracker) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.users, id)
}

// Users returns the current set in no particular order.
func (p *PresenceTracker) Users() []User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]User, 0, len(p.users))
	for _, u := range p.users {
		out = append(out, u)
	}
	return out
}

func (p *PresenceTracker) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.users)
}

func (p *PresenceTracker) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users = make(map[string]User)
}
