package game

import "sync"

// Registry maps a room id to its single active match. It is the only state
// shared across rooms, so it carries its own lock; everything inside a
// Match is serialized by the match mutex.
type Registry struct {
	mu      sync.RWMutex
	matches map[string]*Match
}

func NewRegistry() *Registry {
	return &Registry{matches: make(map[string]*Match)}
}

func (r *Registry) Get(roomID string) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[roomID]
	return m, ok
}

// PutIfAbsent registers a match for the room unless one already exists.
func (r *Registry) PutIfAbsent(roomID string, m *Match) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[roomID]; ok {
		return false
	}
	r.matches[roomID] = m
	return true
}

func (r *Registry) Remove(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.matches, roomID)
}

func (r *Registry) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matches)
}
