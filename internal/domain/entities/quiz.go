package entities

import (
	"errors"
	"fmt"
)

var (
	ErrFieldUnset  = errors.New("question or answer field is not set")
	ErrSameFields  = errors.New("question and answer fields must differ")
	ErrUnknownMode = errors.New("unknown answer mode")
)

// Mode defines how the player answers a question.
type Mode string

const (
	ModeUnset    Mode = ""
	ModeTyped    Mode = "typed"    // free-text answer
	ModeSelected Mode = "selected" // one of the generated options
)

// SessionState is the state of a quiz session.
type SessionState string

const (
	StateSetup  SessionState = "setup"
	StateActive SessionState = "active"
	StateDone   SessionState = "done"
)

// SessionConfig holds the question and answer fields and the answer mode of a quiz.
type SessionConfig struct {
	QuestionField Field
	AnswerField   Field
	Mode          Mode
}

// Complete reports whether every part of the configuration has been chosen.
func (c SessionConfig) Complete() bool {
	return c.QuestionField != FieldUnset && c.AnswerField != FieldUnset && c.Mode != ModeUnset
}

// Validate checks that the configuration can drive a session.
func (c SessionConfig) Validate() error {
	if c.QuestionField == FieldUnset || c.AnswerField == FieldUnset {
		return ErrFieldUnset
	}
	if !c.QuestionField.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, c.QuestionField)
	}
	if !c.AnswerField.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, c.AnswerField)
	}
	if c.QuestionField == c.AnswerField {
		return ErrSameFields
	}

	switch c.Mode {
	case ModeTyped, ModeSelected:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
	}
}

// Question is the question currently shown to the player.
type Question struct {
	ChapterID     int      // chapter the question is about
	Text          string   // question-field value of the chapter
	CorrectAnswer string   // answer-field value of the chapter
	Options       []string // candidate answers, empty in typed mode
}

// QuestionRecord is one answered question of a session.
type QuestionRecord struct {
	QuestionText  string
	CorrectAnswer string
	PlayerAnswer  string
}

// Matches reports whether the recorded answer equals the correct one exactly.
func (r QuestionRecord) Matches() bool {
	return r.PlayerAnswer == r.CorrectAnswer
}
