package service

import (
	"errors"
	"fmt"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
)

const (
	optionsCount     = 3
	distractorsCount = optionsCount - 1

	// maxSamplingAttempts bounds random distractor sampling before falling
	// back to a scan of the distinct candidates.
	maxSamplingAttempts = 1000
)

var ErrNotEnoughDistractors = errors.New("not enough distinct answers for multiple choice")

// QuestionGenerator builds questions and multiple choice options for chapters.
type QuestionGenerator struct {
	rnd Random
}

// NewQuestionGenerator creates a new question generator.
func NewQuestionGenerator(rnd Random) *QuestionGenerator {
	if rnd == nil {
		rnd = DefaultRandom
	}
	return &QuestionGenerator{rnd: rnd}
}

// Generate builds the question for the current chapter. Options are only
// generated in selected mode; distractors are drawn from the whole subset.
func (g *QuestionGenerator) Generate(
	current entities.Chapter,
	subset []entities.Chapter,
	cfg entities.SessionConfig,
) (entities.Question, error) {
	text, err := current.Value(cfg.QuestionField)
	if err != nil {
		return entities.Question{}, err
	}

	correct, err := current.Value(cfg.AnswerField)
	if err != nil {
		return entities.Question{}, err
	}

	q := entities.Question{
		ChapterID:     current.ID,
		Text:          text,
		CorrectAnswer: correct,
	}

	if cfg.Mode == entities.ModeSelected {
		q.Options, err = g.Options(current, subset, cfg.AnswerField)
		if err != nil {
			return entities.Question{}, err
		}
	}

	return q, nil
}

// Options returns the correct answer and two distinct distractors in random order.
func (g *QuestionGenerator) Options(
	current entities.Chapter,
	subset []entities.Chapter,
	field entities.Field,
) ([]string, error) {
	correct, err := current.Value(field)
	if err != nil {
		return nil, err
	}

	candidates, err := distinctValues(subset, field, correct)
	if err != nil {
		return nil, err
	}
	if len(candidates) < distractorsCount {
		return nil, fmt.Errorf("%w: %d candidates for %q", ErrNotEnoughDistractors, len(candidates), field)
	}

	distractors := make([]string, 0, distractorsCount)
	for attempt := 0; attempt < maxSamplingAttempts && len(distractors) < distractorsCount; attempt++ {
		value, err := subset[g.rnd.Intn(len(subset))].Value(field)
		if err != nil {
			return nil, err
		}
		if value == correct || contains(distractors, value) {
			continue
		}
		distractors = append(distractors, value)
	}

	if len(distractors) < distractorsCount {
		g.rnd.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		for _, value := range candidates {
			if len(distractors) >= distractorsCount {
				break
			}
			if !contains(distractors, value) {
				distractors = append(distractors, value)
			}
		}
	}

	options := make([]string, 0, optionsCount)
	options = append(options, correct)
	options = append(options, distractors...)

	g.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options, nil
}

// CheckDistractors reports whether the subset can produce multiple choice
// options for the given field: it needs at least three distinct answers.
func CheckDistractors(subset []entities.Chapter, field entities.Field) error {
	seen := make(map[string]bool, len(subset))
	for _, ch := range subset {
		value, err := ch.Value(field)
		if err != nil {
			return err
		}
		seen[value] = true
	}
	if len(seen) < optionsCount {
		return fmt.Errorf("%w: %d distinct values for %q", ErrNotEnoughDistractors, len(seen), field)
	}
	return nil
}

// distinctValues returns the distinct field values of the subset except exclude.
func distinctValues(subset []entities.Chapter, field entities.Field, exclude string) ([]string, error) {
	seen := make(map[string]bool, len(subset))
	values := make([]string, 0, len(subset))

	for _, ch := range subset {
		value, err := ch.Value(field)
		if err != nil {
			return nil, err
		}
		if value == exclude || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}

	return values, nil
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
