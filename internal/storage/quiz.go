package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

var ErrSessionNotFound = errors.New("quiz session not found")

// QuizStorage provides in-memory storage for quiz sessions by session ID.
// Sessions that are not touched for ttl are dropped by CleanupExpired.
type QuizStorage struct {
	mu        sync.Mutex
	sessions  map[string]*entities.QuizSession
	expiresAt map[string]time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewQuizStorage creates a new QuizStorage. A zero ttl keeps sessions forever.
func NewQuizStorage(ttl time.Duration) *QuizStorage {
	return &QuizStorage{
		sessions:  make(map[string]*entities.QuizSession),
		expiresAt: make(map[string]time.Time),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Store saves a session under its ID, replacing any previous one.
func (s *QuizStorage) Store(session *entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	s.touch(session.ID)
}

// Get returns a snapshot of the session.
func (s *QuizStorage) Get(id string) (*entities.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return snapshot(session), nil
}

// Update runs fn on the stored session while holding the storage lock and
// returns a snapshot taken after fn. Concurrent updates of the same session
// are serialized.
func (s *QuizStorage) Update(id string, fn func(*entities.QuizSession) error) (*entities.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	s.touch(id)

	return snapshot(session), nil
}

// Delete removes a session.
func (s *QuizStorage) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.expiresAt, id)
}

// Len returns the number of stored sessions.
func (s *QuizStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CleanupExpired drops sessions whose ttl has passed.
func (s *QuizStorage) CleanupExpired() int {
	if s.ttl == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, exp := range s.expiresAt {
		if now.After(exp) {
			delete(s.sessions, id)
			delete(s.expiresAt, id)
			removed++
		}
	}
	return removed
}

func (s *QuizStorage) lookup(id string) (*entities.QuizSession, bool) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 {
		if exp, ok := s.expiresAt[id]; ok && s.now().After(exp) {
			return nil, false
		}
	}
	return session, true
}

func (s *QuizStorage) touch(id string) {
	if s.ttl > 0 {
		s.expiresAt[id] = s.now().Add(s.ttl)
	}
}

// snapshot copies the mutable parts of a session. Questions are immutable and shared.
func snapshot(in *entities.QuizSession) *entities.QuizSession {
	out := *in
	if in.LastResult != nil {
		r := *in.LastResult
		out.LastResult = &r
	}
	if in.FinishedAt != nil {
		t := *in.FinishedAt
		out.FinishedAt = &t
	}
	return &out
}
