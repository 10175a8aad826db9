package models

import (
	"sync"
	"time"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingTargetPrice
)

type Session struct {
	Phase      Phase
	Symbol     string
	Current    float64
	HasCurrent bool
	StartedAt  time.Time
}

// SessionStore keeps pending alarm wizards per user. Nothing here is persisted.
type SessionStore struct {
	mu   sync.Mutex
	data map[int64]*Session
	ttl  time.Duration
	now  func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		data: make(map[int64]*Session),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *SessionStore) Begin(owner int64, symbol string, current float64, hasCurrent bool) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &Session{
		Phase:      PhaseAwaitingTargetPrice,
		Symbol:     symbol,
		Current:    current,
		HasCurrent: hasCurrent,
		StartedAt:  s.now(),
	}
	s.data[owner] = session
	return *session
}

func (s *SessionStore) Get(owner int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.data[owner]
	if !ok {
		return Session{Phase: PhaseIdle}, false
	}
	if s.expired(session) {
		delete(s.data, owner)
		return Session{Phase: PhaseIdle}, false
	}
	return *session, true
}

// Take returns the live session and removes it in one step, so only one caller
// can complete a wizard.
func (s *SessionStore) Take(user int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.data[user]
	if !ok {
		return Session{Phase: PhaseIdle}, false
	}
	delete(s.data, user)
	if s.expired(session) {
		return Session{Phase: PhaseIdle}, false
	}
	return *session, true
}

// Delete reports whether a live session was discarded.
func (s *SessionStore) Delete(owner int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.data[owner]
	if !ok {
		return false
	}
	delete(s.data, owner)
	return !s.expired(session)
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for owner, session := range s.data {
		if s.expired(session) {
			delete(s.data, owner)
		}
	}
	return len(s.data)
}

func (s *SessionStore) expired(session *Session) bool {
	return s.ttl > 0 && s.now().Sub(session.StartedAt) > s.ttl
}
