package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by a Store when no session exists for an id.
var ErrNotFound = errors.New("session not found")

// Store persists session values by id.
type Store interface {
	Load(ctx context.Context, id string) (map[string]json.RawMessage, error)
	Save(ctx context.Context, id string, values map[string]json.RawMessage, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// Session is one visitor's key/value bag. Values are held JSON encoded so
// every store sees the same representation.
type Session struct {
	id     string
	isNew  bool
	dirty  bool
	values map[string]json.RawMessage
}

func newSession(id string, values map[string]json.RawMessage, isNew bool) *Session {
	if values == nil {
		values = map[string]json.RawMessage{}
	}
	return &Session{id: id, isNew: isNew, values: values}
}

func (s *Session) ID() string  { return s.id }
func (s *Session) IsNew() bool { return s.isNew }
func (s *Session) Dirty() bool { return s.dirty }
func (s *Session) Len() int    { return len(s.values) }

// Set stores value under key.
func (s *Session) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("session set %s: %w", key, err)
	}
	s.values[key] = raw
	s.dirty = true
	return nil
}

// Get decodes the value under key into dst. It returns false when the key
// is absent.
func (s *Session) Get(key string, dst any) (bool, error) {
	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("session get %s: %w", key, err)
	}
	return true, nil
}

func (s *Session) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

func (s *Session) Remove(key string) {
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.dirty = true
	}
}
