package account

import (
	"context"
	"sync"

	"boardkeep/pkg/platform/sentinel"
)

// In-memory stores keep tests and single-process deployments lightweight.
// They intentionally favor clarity over performance.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]Identity
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[string]Identity)}
}

func (s *InMemoryUserStore) Create(_ context.Context, identity Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[identity.Email]; ok {
		return sentinel.ErrConflict
	}
	s.users[identity.Email] = identity
	return nil
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if identity, ok := s.users[email]; ok {
		return identity, nil
	}
	return Identity{}, sentinel.ErrNotFound
}

type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]Session)}
}

func (s *InMemorySessionStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *InMemorySessionStore) Find(_ context.Context, id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if session, ok := s.sessions[id]; ok {
		return session, nil
	}
	return Session{}, sentinel.ErrNotFound
}

func (s *InMemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
