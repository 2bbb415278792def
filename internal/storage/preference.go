package storage

import (
	"context"
	"sync"

	"github.com/aliskhannn/quran-fahras-bot/internal/repository"
)

// PreferenceStorage is a non-durable preference store used for local runs and tests.
type PreferenceStorage struct {
	mu       sync.RWMutex
	selected map[int64][]int
}

func NewPreferenceStorage() *PreferenceStorage {
	return &PreferenceStorage{
		selected: make(map[int64][]int),
	}
}

// LoadSelected returns a copy of the stored ids or repository.ErrPreferenceNotFound.
func (s *PreferenceStorage) LoadSelected(_ context.Context, userID int64) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, ok := s.selected[userID]
	if !ok {
		return nil, repository.ErrPreferenceNotFound
	}

	return append([]int{}, ids...), nil
}

// SaveSelected replaces the stored ids of a user.
func (s *PreferenceStorage) SaveSelected(_ context.Context, userID int64, ids []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected[userID] = append([]int{}, ids...)
	return nil
}
