package storage

import (
	"sync"

	"github.com/aliskhannn/quran-fahras-bot/internal/service"
)

// QuizStorage keeps the quiz session of each user in memory.
type QuizStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*service.QuizSession
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sessions: make(map[int64]*service.QuizSession),
	}
}

// GetOrCreate returns the session of a user, creating it with newFn if absent.
func (s *QuizStorage) GetOrCreate(userID int64, newFn func() *service.QuizSession) *service.QuizSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[userID]; ok {
		return session
	}

	session := newFn()
	s.sessions[userID] = session
	return session
}

// Get retrieves the session of a user.
func (s *QuizStorage) Get(userID int64) (*service.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	return session, ok
}

// Delete removes the session of a user.
func (s *QuizStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
