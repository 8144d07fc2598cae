package app

import (
	"context"
	"sync"
	"time"

	"github.com/HailXD/Tarot-Draw/internal/domain"
)

// SessionStore keeps sessions in memory and evicts the idle ones.
type SessionStore struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	lastActive map[string]time.Time
	ttl        time.Duration
	now        func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions:   map[string]*Session{},
		lastActive: map[string]time.Time{},
		ttl:        ttl,
		now:        time.Now,
	}
}

func (m *SessionStore) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.id] = s
	m.lastActive[s.id] = m.now()
}

// Get returns the session and marks it active.
func (m *SessionStore) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	m.lastActive[id] = m.now()
	return s, nil
}

func (m *SessionStore) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	delete(m.lastActive, id)
	m.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	s.close()
	return nil
}

func (m *SessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Evict closes sessions idle for longer than the TTL and returns how many
// were removed. A non-positive TTL disables eviction.
func (m *SessionStore) Evict() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var idle []*Session
	for id, at := range m.lastActive {
		if at.Before(cutoff) {
			idle = append(idle, m.sessions[id])
			delete(m.sessions, id)
			delete(m.lastActive, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.close()
	}
	return len(idle)
}

// Run evicts idle sessions every interval until ctx is done.
func (m *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Evict()
		}
	}
}

// Close ends every session.
func (m *SessionStore) Close() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.sessions = map[string]*Session{}
	m.lastActive = map[string]time.Time{}
	m.mu.Unlock()

	for _, s := range all {
		s.close()
	}
}
