// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
	"github.com/aliskhannn/quran-fahras-bot/internal/service"
)

const (
	msgWelcome = "Assalamu alaikum! This bot helps you memorize the index of the Quran.\n\n" +
		"/chapters — choose the chapters to study\n" +
		"/quiz — start a quiz\n" +
		"/reset — abandon the current quiz\n" +
		"/help — show this message"
	msgInternalError     = "Something went wrong. Please try again later."
	msgUnknownCommand    = "Unknown command. Use /help to see the available commands."
	msgNeedMoreChapters  = "You need at least 3 chapters selected to start a quiz. Use /chapters."
	msgNotEnoughAnswers  = "The selected chapters do not have 3 different answers for this question type. Pick more chapters or another answer."
	msgQuizInProgress    = "A quiz is already in progress. Answer the question or use /reset."
	msgNoActiveQuiz      = "There is no active quiz. Use /quiz to start one."
	msgNoActiveQuestion  = "This question is no longer active."
	msgSelectionApplied  = "Selection saved"
	msgQuizReset         = "Quiz reset. Your settings were kept."
	msgTypeAnswer        = "Type your answer."
	msgChooseSetup       = "Set up your quiz: pick what you are asked, what you answer and how you answer."
	chaptersPerPage      = 10
	maxSummaryRowsInText = 50
)

var fieldLabels = map[entities.Field]string{
	entities.FieldChapterName:   "Name",
	entities.FieldChapterNumber: "Number",
	entities.FieldVerseCount:    "Verses",
}

var modeLabels = map[entities.Mode]string{
	entities.ModeTyped:    "Type",
	entities.ModeSelected: "Choose",
}

var answerPrompts = map[entities.Field]string{
	entities.FieldChapterName:   "What is the name of this chapter?",
	entities.FieldChapterNumber: "What is the number of this chapter?",
	entities.FieldVerseCount:    "How many verses does this chapter have?",
}

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// chapterPages returns the number of pages of the chapter selection screen.
func chapterPages(sel *service.SubsetSelector) int {
	n := len(sel.Catalog())
	return (n + chaptersPerPage - 1) / chaptersPerPage
}

// renderChaptersPage renders one page of the chapter selection screen.
// It returns the text and the number of pages.
func renderChaptersPage(sel *service.SubsetSelector, page int) (string, int) {
	catalog := sel.Catalog()
	totalPages := chapterPages(sel)

	var sb strings.Builder
	sb.WriteString(bold("📖 Chapters to study"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Active: %d · Pending: %d of %d", sel.Size(), sel.PendingCount(), len(catalog))))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Page %d/%d. Tap a chapter to toggle it, then press Apply.", page+1, totalPages)))

	if sel.PendingCount() < service.MinSubsetSize {
		sb.WriteString("\n\n")
		sb.WriteString(md("⚠️ " + msgNeedMoreChapters))
	}

	return sb.String(), totalPages
}

// renderSetup renders the quiz setup screen for a draft config.
func renderSetup(cfg entities.SessionConfig, subsetSize int) string {
	var sb strings.Builder
	sb.WriteString(bold("🎯 Quiz"))
	sb.WriteString("\n\n")
	sb.WriteString(md(msgChooseSetup))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Question: %s", labelOr(fieldLabels[cfg.QuestionField]))))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Answer: %s", labelOr(fieldLabels[cfg.AnswerField]))))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Mode: %s", labelOr(modeLabels[cfg.Mode]))))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Chapters: %d", subsetSize)))

	if subsetSize < service.MinSubsetSize {
		sb.WriteString("\n\n")
		sb.WriteString(md("⚠️ " + msgNeedMoreChapters))
	}

	return sb.String()
}

// renderQuestion renders the current question of a session.
func renderQuestion(q entities.Question, cfg entities.SessionConfig, answered, total, score int) string {
	var sb strings.Builder
	sb.WriteString(md(fmt.Sprintf("Question %d/%d · Score %d", answered+1, total, score)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fieldLabels[cfg.QuestionField] + ": "))
	sb.WriteString(bold(q.Text))
	sb.WriteString("\n")
	sb.WriteString(md(answerPrompts[cfg.AnswerField]))

	if cfg.Mode == entities.ModeTyped {
		sb.WriteString("\n\n")
		sb.WriteString(md(msgTypeAnswer))
	}

	return sb.String()
}

// renderOutcome renders the feedback for one submitted answer.
func renderOutcome(out service.Outcome) string {
	if out.Correct {
		return md("✅ Correct!")
	}
	return md("❌ Wrong. Correct answer: ") + bold(out.Record.CorrectAnswer)
}

// renderSummary renders the result table of a finished session.
func renderSummary(report entities.Report) string {
	var sb strings.Builder
	sb.WriteString(bold("🏁 Quiz finished"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Score: %d/%d (%.0f%%)", report.FinalScore, report.TotalQuestions, report.Percentage())))
	sb.WriteString("\n")

	for i, row := range report.Rows {
		if i == maxSummaryRowsInText {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("… and %d more", len(report.Rows)-i)))
			break
		}

		mark := "❌"
		if row.Correct {
			mark = "✅"
		}
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s %s → %s (you: %s)", mark, row.QuestionText, row.CorrectAnswer, row.PlayerAnswer)))
	}

	return sb.String()
}

func labelOr(label string) string {
	if label == "" {
		return "not set"
	}
	return label
}
