package entities_test

import (
	"errors"
	"testing"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
)

func TestSessionConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     entities.SessionConfig
		wantErr error
	}{
		{
			name: "valid selected",
			cfg:  entities.SessionConfig{QuestionField: entities.FieldChapterName, AnswerField: entities.FieldVerseCount, Mode: entities.ModeSelected},
		},
		{
			name: "valid typed",
			cfg:  entities.SessionConfig{QuestionField: entities.FieldVerseCount, AnswerField: entities.FieldChapterNumber, Mode: entities.ModeTyped},
		},
		{
			name:    "missing answer field",
			cfg:     entities.SessionConfig{QuestionField: entities.FieldChapterName, Mode: entities.ModeTyped},
			wantErr: entities.ErrFieldUnset,
		},
		{
			name:    "same fields",
			cfg:     entities.SessionConfig{QuestionField: entities.FieldChapterName, AnswerField: entities.FieldChapterName, Mode: entities.ModeTyped},
			wantErr: entities.ErrSameFields,
		},
		{
			name:    "unknown field",
			cfg:     entities.SessionConfig{QuestionField: "juz", AnswerField: entities.FieldChapterName, Mode: entities.ModeTyped},
			wantErr: entities.ErrUnknownField,
		},
		{
			name:    "unknown mode",
			cfg:     entities.SessionConfig{QuestionField: entities.FieldChapterName, AnswerField: entities.FieldVerseCount, Mode: "voice"},
			wantErr: entities.ErrUnknownMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSessionConfig_Complete(t *testing.T) {
	cfg := entities.SessionConfig{QuestionField: entities.FieldChapterName, AnswerField: entities.FieldVerseCount}
	if cfg.Complete() {
		t.Error("expected config without mode to be incomplete")
	}

	cfg.Mode = entities.ModeTyped
	if !cfg.Complete() {
		t.Error("expected config to be complete")
	}
}

func TestReport_Percentage(t *testing.T) {
	r := entities.Report{FinalScore: 3, TotalQuestions: 4}
	if got := r.Percentage(); got != 75 {
		t.Errorf("expected 75, got %v", got)
	}

	if got := (entities.Report{}).Percentage(); got != 0 {
		t.Errorf("expected 0 for empty report, got %v", got)
	}
}
