package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
	"github.com/aliskhannn/quran-fahras-bot/internal/service"
)

// buildChaptersKeyboard builds the toggle keyboard for one page of chapters.
func buildChaptersKeyboard(sel *service.SubsetSelector, page, totalPages int) tgbotapi.InlineKeyboardMarkup {
	catalog := sel.Catalog()
	from := page * chaptersPerPage
	to := min(from+chaptersPerPage, len(catalog))

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, ch := range catalog[from:to] {
		mark := "⬜"
		if sel.IsPending(ch.ID) {
			mark = "✅"
		}
		label := fmt.Sprintf("%s %d. %s", mark, ch.ID, ch.Name)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildChaptersCallback(chaptersToggle, ch.ID, page)),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️", buildChaptersCallback(chaptersPage, page-1)))
	}
	if page < totalPages-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("▶️", buildChaptersCallback(chaptersPage, page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Select all", buildChaptersCallback(chaptersAll, page)),
			tgbotapi.NewInlineKeyboardButtonData("Deselect all", buildChaptersCallback(chaptersNone, page)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💾 Apply", buildChaptersCallback(chaptersApply, page)),
		),
	)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildSetupKeyboard builds the quiz setup keyboard. Every button carries the
// draft it leads to; Start is only offered when the draft and subset allow it.
func buildSetupKeyboard(cfg entities.SessionConfig, canStart bool) tgbotapi.InlineKeyboardMarkup {
	questionRow := make([]tgbotapi.InlineKeyboardButton, 0, len(entities.Fields))
	answerRow := make([]tgbotapi.InlineKeyboardButton, 0, len(entities.Fields))

	for _, f := range entities.Fields {
		q := cfg
		q.QuestionField = f
		if q.AnswerField == f {
			q.AnswerField = entities.FieldUnset
		}
		questionRow = append(questionRow, tgbotapi.NewInlineKeyboardButtonData(
			checked(cfg.QuestionField == f, "Q: "+fieldLabels[f]), buildQuizSetupCallback(q),
		))

		a := cfg
		a.AnswerField = f
		if a.QuestionField == f {
			a.QuestionField = entities.FieldUnset
		}
		answerRow = append(answerRow, tgbotapi.NewInlineKeyboardButtonData(
			checked(cfg.AnswerField == f, "A: "+fieldLabels[f]), buildQuizSetupCallback(a),
		))
	}

	typed, selected := cfg, cfg
	typed.Mode = entities.ModeTyped
	selected.Mode = entities.ModeSelected

	rows := [][]tgbotapi.InlineKeyboardButton{
		questionRow,
		answerRow,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(checked(cfg.Mode == entities.ModeTyped, modeLabels[entities.ModeTyped]), buildQuizSetupCallback(typed)),
			tgbotapi.NewInlineKeyboardButtonData(checked(cfg.Mode == entities.ModeSelected, modeLabels[entities.ModeSelected]), buildQuizSetupCallback(selected)),
		),
	}

	if canStart && cfg.Validate() == nil {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Start", buildQuizStartCallback(cfg)),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuestionKeyboard builds the keyboard shown under a question.
func buildQuestionKeyboard(q entities.Question) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option, buildQuizAnswerCallback(q.ChapterID, i)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Reset", buildQuizCallback(quizReset)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildSummaryKeyboard builds keyboard for quiz results screen.
func buildSummaryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Play again", buildQuizCallback(quizAgain)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ New setup", buildQuizCallback(quizReset)),
		),
	)
}

func checked(on bool, label string) string {
	if on {
		return "✓ " + label
	}
	return label
}
