package storage

import (
	"sync"

	"github.com/aliskhannn/quran-fahras-bot/internal/service"
)

// SelectorStorage keeps the loaded subset selector of each user in memory.
type SelectorStorage struct {
	mu        sync.RWMutex
	selectors map[int64]*service.SubsetSelector
}

func NewSelectorStorage() *SelectorStorage {
	return &SelectorStorage{
		selectors: make(map[int64]*service.SubsetSelector),
	}
}

func (s *SelectorStorage) Store(userID int64, selector *service.SubsetSelector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectors[userID] = selector
}

func (s *SelectorStorage) Get(userID int64) (*service.SubsetSelector, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	selector, ok := s.selectors[userID]
	return selector, ok
}
