package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
)

var (
	ErrChapterNotFound = errors.New("chapter not found")
	ErrInvalidCatalog  = errors.New("invalid chapter catalog")
)

// ChapterRepository provides read-only access to the chapter index.
// The catalog is loaded once and never mutated.
type ChapterRepository struct {
	chapters []entities.Chapter
	byID     map[int]int // chapter id -> position in chapters
}

// NewChapterRepository loads the chapter index from a JSON file.
func NewChapterRepository(path string) (*ChapterRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chapters: %w", err)
	}

	var chapters []entities.Chapter
	if err := json.Unmarshal(data, &chapters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chapters JSON: %w", err)
	}

	return NewChapterRepositoryFrom(chapters)
}

// NewChapterRepositoryFrom builds a repository from an in-memory catalog.
func NewChapterRepositoryFrom(chapters []entities.Chapter) (*ChapterRepository, error) {
	if len(chapters) == 0 {
		return nil, fmt.Errorf("%w: no chapters", ErrInvalidCatalog)
	}

	sorted := make([]entities.Chapter, len(chapters))
	copy(sorted, chapters)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[int]int, len(sorted))
	for i, ch := range sorted {
		if ch.ID < 1 {
			return nil, fmt.Errorf("%w: chapter id %d", ErrInvalidCatalog, ch.ID)
		}
		if ch.VerseCount < 1 {
			return nil, fmt.Errorf("%w: chapter %d has %d verses", ErrInvalidCatalog, ch.ID, ch.VerseCount)
		}
		if _, ok := byID[ch.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate chapter id %d", ErrInvalidCatalog, ch.ID)
		}
		byID[ch.ID] = i
	}

	return &ChapterRepository{
		chapters: sorted,
		byID:     byID,
	}, nil
}

// GetAll returns a copy of every chapter ordered by id.
func (r *ChapterRepository) GetAll() []entities.Chapter {
	out := make([]entities.Chapter, len(r.chapters))
	copy(out, r.chapters)
	return out
}

// GetByID returns the chapter with the given id.
func (r *ChapterRepository) GetByID(id int) (entities.Chapter, error) {
	i, ok := r.byID[id]
	if !ok {
		return entities.Chapter{}, ErrChapterNotFound
	}
	return r.chapters[i], nil
}

// Count returns the number of chapters in the catalog.
func (r *ChapterRepository) Count() int {
	return len(r.chapters)
}
