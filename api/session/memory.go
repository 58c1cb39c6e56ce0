package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	values  map[string]json.RawMessage
	expires time.Time
}

// MemoryStore keeps sessions in process. Used when no redis is configured
// and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memoryEntry{}, now: time.Now}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (map[string]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.entries, id)
		return nil, ErrNotFound
	}
	return copyValues(e.values), nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, values map[string]json.RawMessage, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := memoryEntry{values: copyValues(values)}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.entries[id] = e
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func copyValues(in map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(in))
	for k, v := range in {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
