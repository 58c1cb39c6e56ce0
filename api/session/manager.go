package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Manager ties sessions to a cookie and persists them in a Store.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
}

type Option func(*Manager)

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie() Option { return func(m *Manager) { m.secure = true } }

func NewManager(store Store, cookieName string, ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{store: store, cookieName: cookieName, ttl: ttl}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start loads the session named by the request cookie, or begins a new one
// when the cookie is missing or its session expired. The cookie is written
// to w before anything else so it survives handlers that write the body.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request) (*Session, error) {
	var s *Session
	if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
		values, err := m.store.Load(r.Context(), c.Value)
		switch {
		case err == nil:
			s = newSession(c.Value, values, false)
		case errors.Is(err, ErrNotFound):
		default:
			return nil, fmt.Errorf("session load: %w", err)
		}
	}
	if s == nil {
		s = newSession(uuid.NewString(), nil, true)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    s.id,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s, nil
}

// Save persists s when it changed. New sessions are saved even when empty
// so the issued cookie refers to a stored session.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if !s.dirty && !s.isNew {
		return nil
	}
	if err := m.store.Save(ctx, s.id, s.values, m.ttl); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	s.dirty = false
	s.isNew = false
	return nil
}

// Destroy deletes the session and expires its cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if err := m.store.Delete(ctx, s.id); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	http.SetCookie(w, &http.Cookie{Name: m.cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return nil
}
