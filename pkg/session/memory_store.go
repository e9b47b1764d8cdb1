package session

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps session state in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]Entry
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]map[string]Entry),
		now:      time.Now,
	}
}

// Get implements Store
func (s *MemoryStore) Get(_ context.Context, sessionID, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[sessionID][key]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(entry.Value), true, nil
}

// Put implements Store
func (s *MemoryStore) Put(_ context.Context, sessionID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.sessions[sessionID]
	if !ok {
		entries = make(map[string]Entry)
		s.sessions[sessionID] = entries
	}
	entries[key] = Entry{Key: key, Value: cloneBytes(value), UpdatedAt: s.now()}
	return nil
}

// List implements Store. Entries are sorted by key.
func (s *MemoryStore) List(_ context.Context, sessionID string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.sessions[sessionID]))
	for _, e := range s.sessions[sessionID] {
		e.Value = cloneBytes(e.Value)
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Clear implements Store
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Close implements Store
func (s *MemoryStore) Close() error {
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
