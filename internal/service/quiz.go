package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
)

var (
	ErrInvalidState      = errors.New("operation not allowed in current session state")
	ErrIncompleteConfig  = errors.New("session config is incomplete")
	ErrSubsetTooSmall    = errors.New("at least 3 chapters are required")
	ErrNoCurrentQuestion = errors.New("no current question")
	ErrInvalidOption     = errors.New("invalid option index")
)

// Outcome describes the result of one submitted answer.
type Outcome struct {
	Record  entities.QuestionRecord
	Correct bool
	Done    bool // the session has no questions left
}

// QuizSession is the quiz state machine: Setup -> Active -> Done -> Setup.
// It exclusively owns the remaining pool, the result log and the score.
// A session is driven by a single caller and is not safe for concurrent use.
type QuizSession struct {
	id     string
	state  entities.SessionState
	config entities.SessionConfig

	subset []entities.Chapter // subset the session was started with
	pool   []entities.Chapter // chapters not asked yet
	// current indexes pool; question is built for pool[current].
	current  int
	question *entities.Question

	score int
	log   []entities.QuestionRecord

	generator *QuestionGenerator
	rnd       Random
	logger    *zap.Logger
}

// NewQuizSession creates a session in the Setup state.
func NewQuizSession(generator *QuestionGenerator, rnd Random, logger *zap.Logger) *QuizSession {
	if rnd == nil {
		rnd = DefaultRandom
	}
	if generator == nil {
		generator = NewQuestionGenerator(rnd)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &QuizSession{
		state:     entities.StateSetup,
		current:   -1,
		generator: generator,
		rnd:       rnd,
		logger:    logger,
	}
}

// Configure sets the question field, answer field and mode. Only allowed in Setup.
func (s *QuizSession) Configure(cfg entities.SessionConfig) error {
	if s.state != entities.StateSetup {
		return fmt.Errorf("configure in %s: %w", s.state, ErrInvalidState)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.config = cfg
	return nil
}

// Start begins a new session over the given subset.
func (s *QuizSession) Start(subset []entities.Chapter) error {
	if s.state != entities.StateSetup {
		return fmt.Errorf("start in %s: %w", s.state, ErrInvalidState)
	}
	if !s.config.Complete() {
		return ErrIncompleteConfig
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if len(subset) < MinSubsetSize {
		return fmt.Errorf("%w: got %d", ErrSubsetTooSmall, len(subset))
	}
	if s.config.Mode == entities.ModeSelected {
		if err := CheckDistractors(subset, s.config.AnswerField); err != nil {
			return err
		}
	}

	chapters := make([]entities.Chapter, len(subset))
	copy(chapters, subset)

	pool := make([]entities.Chapter, len(chapters))
	copy(pool, chapters)

	current, question, err := s.pick(pool, chapters)
	if err != nil {
		return err
	}

	s.id = uuid.NewString()
	s.subset = chapters
	s.pool = pool
	s.current = current
	s.question = question
	s.score = 0
	s.log = nil
	s.state = entities.StateActive

	s.logger.Info("quiz session started",
		zap.String("session_id", s.id),
		zap.Int("total_questions", len(chapters)),
		zap.String("question_field", string(s.config.QuestionField)),
		zap.String("answer_field", string(s.config.AnswerField)),
		zap.String("mode", string(s.config.Mode)),
	)

	return nil
}

// Submit records the player's answer to the current question and moves on.
func (s *QuizSession) Submit(answer string) (Outcome, error) {
	if s.state != entities.StateActive {
		return Outcome{}, fmt.Errorf("submit in %s: %w", s.state, ErrInvalidState)
	}

	if len(s.pool) == 0 {
		s.logger.Error("submit with empty pool in active session",
			zap.String("session_id", s.id),
		)
		s.state = entities.StateDone
		return Outcome{Done: true}, ErrNoCurrentQuestion
	}

	if s.question == nil || s.current < 0 || s.current >= len(s.pool) {
		s.logger.Error("submit without current question",
			zap.String("session_id", s.id),
			zap.Int("current", s.current),
			zap.Int("remaining", len(s.pool)),
		)
		return Outcome{}, ErrNoCurrentQuestion
	}

	record := entities.QuestionRecord{
		QuestionText:  s.question.Text,
		CorrectAnswer: s.question.CorrectAnswer,
		PlayerAnswer:  answer,
	}
	correct := s.isCorrect(answer, s.question.CorrectAnswer)

	pool := make([]entities.Chapter, 0, len(s.pool)-1)
	pool = append(pool, s.pool[:s.current]...)
	pool = append(pool, s.pool[s.current+1:]...)

	next, question := -1, (*entities.Question)(nil)
	if len(pool) > 0 {
		var err error
		next, question, err = s.pick(pool, s.subset)
		if err != nil {
			return Outcome{}, err
		}
	}

	s.log = append(s.log, record)
	if correct {
		s.score++
	}
	s.pool = pool
	s.current = next
	s.question = question

	if len(pool) == 0 {
		s.state = entities.StateDone
		s.logger.Info("quiz session finished",
			zap.String("session_id", s.id),
			zap.Int("score", s.score),
			zap.Int("total_questions", len(s.subset)),
		)
	}

	return Outcome{
		Record:  record,
		Correct: correct,
		Done:    s.state == entities.StateDone,
	}, nil
}

// SubmitOption submits the option at index i of the current question.
func (s *QuizSession) SubmitOption(i int) (Outcome, error) {
	if s.state != entities.StateActive || s.config.Mode != entities.ModeSelected {
		return Outcome{}, fmt.Errorf("submit option in %s: %w", s.state, ErrInvalidState)
	}
	if s.question == nil {
		return s.Submit("")
	}
	if i < 0 || i >= len(s.question.Options) {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidOption, i)
	}

	return s.Submit(s.question.Options[i])
}

// Reset abandons the current session and returns to Setup with a full pool.
// The configuration is kept so the same quiz can be replayed.
func (s *QuizSession) Reset() {
	pool := make([]entities.Chapter, len(s.subset))
	copy(pool, s.subset)

	s.pool = pool
	s.current = -1
	s.question = nil
	s.score = 0
	s.log = nil
	s.state = entities.StateSetup
}

// ID returns the identifier of the last started session.
func (s *QuizSession) ID() string { return s.id }

// State returns the current state.
func (s *QuizSession) State() entities.SessionState { return s.state }

// Config returns the session configuration.
func (s *QuizSession) Config() entities.SessionConfig { return s.config }

// Score returns the number of correct answers so far.
func (s *QuizSession) Score() int { return s.score }

// Remaining returns the number of chapters not asked yet.
func (s *QuizSession) Remaining() int { return len(s.pool) }

// Total returns the size of the subset the session was started with.
func (s *QuizSession) Total() int { return len(s.subset) }

// CurrentQuestion returns the question waiting for an answer.
func (s *QuizSession) CurrentQuestion() (entities.Question, bool) {
	if s.state != entities.StateActive || s.question == nil {
		return entities.Question{}, false
	}

	q := *s.question
	q.Options = append([]string(nil), s.question.Options...)
	return q, true
}

// Log returns a copy of the result log in answer order.
func (s *QuizSession) Log() []entities.QuestionRecord {
	out := make([]entities.QuestionRecord, len(s.log))
	copy(out, s.log)
	return out
}

// Report builds the summary of the session.
func (s *QuizSession) Report() entities.Report {
	return BuildReport(s.log, s.score, len(s.subset))
}

func (s *QuizSession) pick(pool, subset []entities.Chapter) (int, *entities.Question, error) {
	i := s.rnd.Intn(len(pool))

	q, err := s.generator.Generate(pool[i], subset, s.config)
	if err != nil {
		return -1, nil, fmt.Errorf("generate question for chapter %d: %w", pool[i].ID, err)
	}

	return i, &q, nil
}

func (s *QuizSession) isCorrect(answer, correct string) bool {
	if s.config.Mode == entities.ModeTyped {
		return strings.EqualFold(answer, correct)
	}
	return answer == correct
}
