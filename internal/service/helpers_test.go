package service_test

import (
	"math/rand"
	"testing"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
	"github.com/aliskhannn/quran-fahras-bot/internal/repository"
)

func sampleChapters() []entities.Chapter {
	return []entities.Chapter{
		{ID: 1, Name: "Al-Fatiha", Transliteration: "Al-Fatihah", Juz: 1, VerseCount: 7},
		{ID: 2, Name: "Al-Baqarah", Transliteration: "Al-Baqarah", Juz: 1, VerseCount: 286},
		{ID: 3, Name: "Aal-E-Imran", Transliteration: "Ali 'Imran", Juz: 3, VerseCount: 200},
		{ID: 4, Name: "An-Nisa", Transliteration: "An-Nisa", Juz: 4, VerseCount: 176},
		{ID: 5, Name: "Al-Ma'idah", Transliteration: "Al-Ma'idah", Juz: 6, VerseCount: 120},
		{ID: 6, Name: "Al-An'am", Transliteration: "Al-An'am", Juz: 7, VerseCount: 165},
	}
}

func newCatalog(t *testing.T, chapters []entities.Chapter) *repository.ChapterRepository {
	t.Helper()
	repo, err := repository.NewChapterRepositoryFrom(chapters)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return repo
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
