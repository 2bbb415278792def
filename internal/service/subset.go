package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
	"github.com/aliskhannn/quran-fahras-bot/internal/repository"
)

// MinSubsetSize is the smallest subset a quiz can be started with.
const MinSubsetSize = 3

var ErrUnknownChapter = errors.New("chapter is not in the catalog")

// ChapterCatalog provides the full, ordered chapter index.
type ChapterCatalog interface {
	GetAll() []entities.Chapter
}

// PreferenceStore persists the chapter ids a user has selected for study.
// LoadSelected returns repository.ErrPreferenceNotFound when nothing is stored.
type PreferenceStore interface {
	LoadSelected(ctx context.Context, userID int64) ([]int, error)
	SaveSelected(ctx context.Context, userID int64, ids []int) error
}

// SubsetSelector owns the active chapter subset of one user and the pending
// selection being edited. The preference store only changes on Apply.
type SubsetSelector struct {
	catalog []entities.Chapter
	store   PreferenceStore
	userID  int64
	logger  *zap.Logger

	active  []entities.Chapter
	pending map[int]bool
}

// NewSubsetSelector creates a selector for the given user. Call Load before use.
func NewSubsetSelector(catalog ChapterCatalog, store PreferenceStore, userID int64, logger *zap.Logger) *SubsetSelector {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SubsetSelector{
		catalog: catalog.GetAll(),
		store:   store,
		userID:  userID,
		logger:  logger,
		pending: make(map[int]bool),
	}
}

// Load reads the stored selection. Without one every chapter is active.
// Stored ids missing from the catalog are dropped.
func (s *SubsetSelector) Load(ctx context.Context) error {
	ids, err := s.store.LoadSelected(ctx, s.userID)
	switch {
	case errors.Is(err, repository.ErrPreferenceNotFound):
		s.active = make([]entities.Chapter, len(s.catalog))
		copy(s.active, s.catalog)
	case err != nil:
		return fmt.Errorf("load selected chapters: %w", err)
	default:
		s.active = s.filter(toSet(ids))
	}

	s.pending = make(map[int]bool, len(s.active))
	for _, ch := range s.active {
		s.pending[ch.ID] = true
	}

	s.logger.Debug("chapter subset loaded",
		zap.Int64("user_id", s.userID),
		zap.Int("size", len(s.active)),
	)

	return nil
}

// Toggle flips the pending membership of a chapter.
func (s *SubsetSelector) Toggle(id int) error {
	if !s.inCatalog(id) {
		return fmt.Errorf("%w: %d", ErrUnknownChapter, id)
	}

	if s.pending[id] {
		delete(s.pending, id)
	} else {
		s.pending[id] = true
	}

	return nil
}

// SelectAll marks every catalog chapter as pending.
func (s *SubsetSelector) SelectAll() {
	s.pending = make(map[int]bool, len(s.catalog))
	for _, ch := range s.catalog {
		s.pending[ch.ID] = true
	}
}

// DeselectAll clears the pending selection.
func (s *SubsetSelector) DeselectAll() {
	s.pending = make(map[int]bool)
}

// Apply persists the pending selection and makes it the active subset.
func (s *SubsetSelector) Apply(ctx context.Context) error {
	selected := s.filter(s.pending)

	ids := make([]int, 0, len(selected))
	for _, ch := range selected {
		ids = append(ids, ch.ID)
	}

	if err := s.store.SaveSelected(ctx, s.userID, ids); err != nil {
		return fmt.Errorf("save selected chapters: %w", err)
	}

	s.active = selected

	s.logger.Info("chapter subset applied",
		zap.Int64("user_id", s.userID),
		zap.Int("size", len(selected)),
	)

	return nil
}

// Active returns a copy of the active subset in catalog order.
func (s *SubsetSelector) Active() []entities.Chapter {
	out := make([]entities.Chapter, len(s.active))
	copy(out, s.active)
	return out
}

// ActiveIDs returns the ids of the active subset in catalog order.
func (s *SubsetSelector) ActiveIDs() []int {
	ids := make([]int, 0, len(s.active))
	for _, ch := range s.active {
		ids = append(ids, ch.ID)
	}
	return ids
}

// Size returns the number of chapters in the active subset.
func (s *SubsetSelector) Size() int {
	return len(s.active)
}

// CanStart reports whether the active subset is large enough for a quiz.
func (s *SubsetSelector) CanStart() bool {
	return len(s.active) >= MinSubsetSize
}

// IsPending reports whether a chapter is in the pending selection.
func (s *SubsetSelector) IsPending(id int) bool {
	return s.pending[id]
}

// PendingCount returns the size of the pending selection.
func (s *SubsetSelector) PendingCount() int {
	return len(s.pending)
}

// Catalog returns the full chapter index the selector works on.
func (s *SubsetSelector) Catalog() []entities.Chapter {
	out := make([]entities.Chapter, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *SubsetSelector) filter(ids map[int]bool) []entities.Chapter {
	out := make([]entities.Chapter, 0, len(ids))
	for _, ch := range s.catalog {
		if ids[ch.ID] {
			out = append(out, ch)
		}
	}
	return out
}

func (s *SubsetSelector) inCatalog(id int) bool {
	for _, ch := range s.catalog {
		if ch.ID == id {
			return true
		}
	}
	return false
}

func toSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
