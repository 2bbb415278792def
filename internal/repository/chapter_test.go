package repository_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
	"github.com/aliskhannn/quran-fahras-bot/internal/repository"
)

const catalogJSON = `[
  {"id": 2, "name": "Al-Baqarah", "transliteration": "Al-Baqarah", "juz": 1, "total_verses": 286},
  {"id": 1, "name": "Al-Fatiha", "transliteration": "Al-Fatihah", "juz": 1, "total_verses": 7},
  {"id": 3, "name": "Aal-E-Imran", "transliteration": "Ali 'Imran", "juz": 3, "total_verses": 200}
]`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chapters.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestNewChapterRepository_LoadsAndOrdersByID(t *testing.T) {
	repo, err := repository.NewChapterRepository(writeCatalog(t, catalogJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := repo.GetAll()
	if len(all) != 3 || repo.Count() != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(all))
	}
	for i, ch := range all {
		if ch.ID != i+1 {
			t.Errorf("position %d: expected id %d, got %d", i, i+1, ch.ID)
		}
	}

	ch, err := repo.GetByID(2)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if ch.Name != "Al-Baqarah" || ch.VerseCount != 286 || ch.Juz != 1 {
		t.Errorf("unexpected chapter: %+v", ch)
	}
}

func TestChapterRepository_GetByIDNotFound(t *testing.T) {
	repo, err := repository.NewChapterRepository(writeCatalog(t, catalogJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.GetByID(114); !errors.Is(err, repository.ErrChapterNotFound) {
		t.Errorf("expected ErrChapterNotFound, got %v", err)
	}
}

func TestChapterRepository_GetAllReturnsCopy(t *testing.T) {
	repo, err := repository.NewChapterRepository(writeCatalog(t, catalogJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := repo.GetAll()
	all[0].Name = "changed"

	ch, _ := repo.GetByID(1)
	if ch.Name != "Al-Fatiha" {
		t.Errorf("catalog was mutated through GetAll: %q", ch.Name)
	}
}

func TestNewChapterRepositoryFrom_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		chapters []entities.Chapter
	}{
		{"empty", nil},
		{"zero id", []entities.Chapter{{ID: 0, Name: "x", VerseCount: 1}}},
		{"no verses", []entities.Chapter{{ID: 1, Name: "x", VerseCount: 0}}},
		{"duplicate id", []entities.Chapter{{ID: 1, Name: "x", VerseCount: 1}, {ID: 1, Name: "y", VerseCount: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repository.NewChapterRepositoryFrom(tt.chapters); !errors.Is(err, repository.ErrInvalidCatalog) {
				t.Errorf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestNewChapterRepository_BadJSON(t *testing.T) {
	if _, err := repository.NewChapterRepository(writeCatalog(t, "{not json")); err == nil {
		t.Error("expected error for malformed catalog")
	}
}
