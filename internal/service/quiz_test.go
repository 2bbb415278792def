package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
	"github.com/aliskhannn/quran-fahras-bot/internal/service"
)

var selectedVerses = entities.SessionConfig{
	QuestionField: entities.FieldChapterName,
	AnswerField:   entities.FieldVerseCount,
	Mode:          entities.ModeSelected,
}

var typedNumbers = entities.SessionConfig{
	QuestionField: entities.FieldChapterName,
	AnswerField:   entities.FieldChapterNumber,
	Mode:          entities.ModeTyped,
}

func newSession(t *testing.T, cfg entities.SessionConfig) *service.QuizSession {
	t.Helper()
	rnd := newRand(42)
	s := service.NewQuizSession(service.NewQuestionGenerator(rnd), rnd, nil)
	if err := s.Configure(cfg); err != nil {
		t.Fatalf("configure: %v", err)
	}
	return s
}

func currentQuestion(t *testing.T, s *service.QuizSession) entities.Question {
	t.Helper()
	q, ok := s.CurrentQuestion()
	if !ok {
		t.Fatal("expected a current question")
	}
	return q
}

func TestQuizSession_ExampleScenario(t *testing.T) {
	subset := sampleChapters()[:3]
	s := newSession(t, selectedVerses)

	if err := s.Start(subset); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.State() != entities.StateActive || s.Remaining() != 3 || s.Score() != 0 || len(s.Log()) != 0 {
		t.Fatalf("unexpected state after start: %s remaining=%d score=%d", s.State(), s.Remaining(), s.Score())
	}

	for i := 0; i < 3; i++ {
		q := currentQuestion(t, s)
		if len(q.Options) != 3 {
			t.Fatalf("expected 3 options, got %v", q.Options)
		}

		out, err := s.Submit(q.CorrectAnswer)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if !out.Correct {
			t.Errorf("submit %d: expected correct answer", i)
		}
		if s.Remaining() != 3-(i+1) {
			t.Errorf("after %d submits expected %d remaining, got %d", i+1, 3-(i+1), s.Remaining())
		}
	}

	if s.State() != entities.StateDone {
		t.Fatalf("expected done, got %s", s.State())
	}

	report := s.Report()
	if report.FinalScore != 3 || report.TotalQuestions != 3 || len(report.Rows) != 3 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestQuizSession_EveryChapterAskedOnce(t *testing.T) {
	subset := sampleChapters()
	s := newSession(t, typedNumbers)

	if err := s.Start(subset); err != nil {
		t.Fatalf("start: %v", err)
	}

	asked := map[int]bool{}
	submits := 0
	for s.State() == entities.StateActive {
		q := currentQuestion(t, s)
		if asked[q.ChapterID] {
			t.Fatalf("chapter %d asked twice", q.ChapterID)
		}
		asked[q.ChapterID] = true

		if _, err := s.Submit("wrong"); err != nil {
			t.Fatalf("submit: %v", err)
		}
		submits++
	}

	if submits != len(subset) || len(asked) != len(subset) {
		t.Errorf("expected %d submits, got %d", len(subset), submits)
	}
}

func TestQuizSession_ScoreCountsDeliberateMatches(t *testing.T) {
	subset := sampleChapters()
	s := newSession(t, selectedVerses)
	if err := s.Start(subset); err != nil {
		t.Fatalf("start: %v", err)
	}

	script := []bool{true, false, true, true, false, false}
	want := 0
	for _, match := range script {
		q := currentQuestion(t, s)
		answer := q.CorrectAnswer
		if match {
			want++
		} else {
			for _, o := range q.Options {
				if o != q.CorrectAnswer {
					answer = o
					break
				}
			}
		}
		out, err := s.Submit(answer)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if out.Correct != match {
			t.Errorf("expected correct=%v for %q vs %q", match, answer, q.CorrectAnswer)
		}
	}

	if s.Score() != want {
		t.Errorf("expected score %d, got %d", want, s.Score())
	}

	report := s.Report()
	if report.CorrectCount() != want || report.TotalQuestions != len(subset) {
		t.Errorf("unexpected report: %+v", report)
	}
	for i, row := range report.Rows {
		if row.Correct != script[i] {
			t.Errorf("row %d: expected correct=%v", i, script[i])
		}
	}
}

func TestQuizSession_TypedIsCaseInsensitiveAndUntrimmed(t *testing.T) {
	cfg := entities.SessionConfig{
		QuestionField: entities.FieldChapterNumber,
		AnswerField:   entities.FieldChapterName,
		Mode:          entities.ModeTyped,
	}

	s := newSession(t, cfg)
	if err := s.Start(sampleChapters()); err != nil {
		t.Fatalf("start: %v", err)
	}

	q := currentQuestion(t, s)
	out, err := s.Submit(strings.ToUpper(q.CorrectAnswer))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !out.Correct {
		t.Error("expected case-insensitive match to be correct")
	}

	q = currentQuestion(t, s)
	out, err = s.Submit(" " + q.CorrectAnswer)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Correct {
		t.Error("expected leading whitespace to make the answer incorrect")
	}
	if s.Score() != 1 {
		t.Errorf("expected score 1, got %d", s.Score())
	}
}

func TestQuizSession_SelectedIsCaseSensitive(t *testing.T) {
	cfg := entities.SessionConfig{
		QuestionField: entities.FieldVerseCount,
		AnswerField:   entities.FieldChapterName,
		Mode:          entities.ModeSelected,
	}

	s := newSession(t, cfg)
	if err := s.Start(sampleChapters()); err != nil {
		t.Fatalf("start: %v", err)
	}

	q := currentQuestion(t, s)
	out, err := s.Submit(strings.ToLower(q.CorrectAnswer))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Correct {
		t.Error("expected selected mode to compare exactly")
	}
}

func TestQuizSession_SubmitOption(t *testing.T) {
	s := newSession(t, selectedVerses)
	if err := s.Start(sampleChapters()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := s.SubmitOption(3); !errors.Is(err, service.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if len(s.Log()) != 0 {
		t.Fatal("invalid option must not be recorded")
	}

	q := currentQuestion(t, s)
	idx := -1
	for i, o := range q.Options {
		if o == q.CorrectAnswer {
			idx = i
		}
	}

	out, err := s.SubmitOption(idx)
	if err != nil {
		t.Fatalf("submit option: %v", err)
	}
	if !out.Correct || out.Record.PlayerAnswer != q.CorrectAnswer {
		t.Errorf("unexpected outcome: %+v", out)
	}
}

func TestQuizSession_StartGuards(t *testing.T) {
	rnd := newRand(1)

	s := service.NewQuizSession(service.NewQuestionGenerator(rnd), rnd, nil)
	if err := s.Start(sampleChapters()); !errors.Is(err, service.ErrIncompleteConfig) {
		t.Errorf("expected ErrIncompleteConfig, got %v", err)
	}

	s = newSession(t, selectedVerses)
	if err := s.Start(sampleChapters()[:2]); !errors.Is(err, service.ErrSubsetTooSmall) {
		t.Errorf("expected ErrSubsetTooSmall, got %v", err)
	}

	sameVerses := []entities.Chapter{
		{ID: 1, Name: "A", VerseCount: 7},
		{ID: 2, Name: "B", VerseCount: 7},
		{ID: 3, Name: "C", VerseCount: 8},
	}
	if err := s.Start(sameVerses); !errors.Is(err, service.ErrNotEnoughDistractors) {
		t.Errorf("expected ErrNotEnoughDistractors, got %v", err)
	}
	if s.State() != entities.StateSetup {
		t.Errorf("refused start must stay in setup, got %s", s.State())
	}

	if err := s.Configure(entities.SessionConfig{
		QuestionField: entities.FieldVerseCount,
		AnswerField:   entities.FieldVerseCount,
		Mode:          entities.ModeTyped,
	}); !errors.Is(err, entities.ErrSameFields) {
		t.Errorf("expected ErrSameFields, got %v", err)
	}
}

func TestQuizSession_InvalidTransitions(t *testing.T) {
	s := newSession(t, typedNumbers)

	if _, err := s.Submit("1"); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("submit in setup: expected ErrInvalidState, got %v", err)
	}

	if err := s.Start(sampleChapters()[:3]); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Configure(selectedVerses); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("configure while active: expected ErrInvalidState, got %v", err)
	}
	if err := s.Start(sampleChapters()); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("start while active: expected ErrInvalidState, got %v", err)
	}
	if _, err := s.SubmitOption(0); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("option in typed mode: expected ErrInvalidState, got %v", err)
	}

	for s.State() == entities.StateActive {
		if _, err := s.Submit("x"); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	logLen := len(s.Log())
	if _, err := s.Submit("x"); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("submit when done: expected ErrInvalidState, got %v", err)
	}
	if len(s.Log()) != logLen {
		t.Error("submit when done must not change the log")
	}
	if _, ok := s.CurrentQuestion(); ok {
		t.Error("done session must not expose a question")
	}
}

func TestQuizSession_ResetIsIdempotentAndKeepsConfig(t *testing.T) {
	subset := sampleChapters()
	s := newSession(t, selectedVerses)
	if err := s.Start(subset); err != nil {
		t.Fatalf("start: %v", err)
	}

	q := currentQuestion(t, s)
	if _, err := s.Submit(q.CorrectAnswer); err != nil {
		t.Fatalf("submit: %v", err)
	}

	s.Reset()
	first := [4]int{s.Score(), len(s.Log()), s.Remaining(), len(s.Report().Rows)}
	firstState := s.State()

	s.Reset()
	second := [4]int{s.Score(), len(s.Log()), s.Remaining(), len(s.Report().Rows)}

	if first != second || firstState != s.State() {
		t.Errorf("reset is not idempotent: %v vs %v", first, second)
	}
	if s.State() != entities.StateSetup || s.Score() != 0 || len(s.Log()) != 0 || s.Remaining() != len(subset) {
		t.Errorf("unexpected post-reset state: %s score=%d remaining=%d", s.State(), s.Score(), s.Remaining())
	}
	if s.Config() != selectedVerses {
		t.Errorf("reset must keep config, got %+v", s.Config())
	}

	if err := s.Start(subset); err != nil {
		t.Fatalf("replay start: %v", err)
	}
	if s.Remaining() != len(subset) {
		t.Errorf("expected full pool on replay, got %d", s.Remaining())
	}
}

func TestQuizSession_ReportUsesExactComparison(t *testing.T) {
	s := newSession(t, entities.SessionConfig{
		QuestionField: entities.FieldChapterNumber,
		AnswerField:   entities.FieldChapterName,
		Mode:          entities.ModeTyped,
	})
	if err := s.Start(sampleChapters()[:3]); err != nil {
		t.Fatalf("start: %v", err)
	}

	q := currentQuestion(t, s)
	if _, err := s.Submit(strings.ToUpper(q.CorrectAnswer)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	report := s.Report()
	if report.FinalScore != 1 {
		t.Errorf("expected score 1, got %d", report.FinalScore)
	}
	if report.Rows[0].Correct {
		t.Error("report rows are tagged by exact comparison")
	}
}

func TestBuildReport(t *testing.T) {
	log := []entities.QuestionRecord{
		{QuestionText: "Al-Fatiha", CorrectAnswer: "7", PlayerAnswer: "7"},
		{QuestionText: "Al-Baqarah", CorrectAnswer: "286", PlayerAnswer: "200"},
	}

	report := service.BuildReport(log, 1, 5)
	if report.FinalScore != 1 || report.TotalQuestions != 5 {
		t.Errorf("unexpected totals: %+v", report)
	}
	if !report.Rows[0].Correct || report.Rows[1].Correct {
		t.Errorf("unexpected row tags: %+v", report.Rows)
	}
	if report.Rows[1].PlayerAnswer != "200" {
		t.Errorf("row must carry the record, got %+v", report.Rows[1])
	}
}
