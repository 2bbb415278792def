package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
	"github.com/aliskhannn/quran-fahras-bot/internal/service"
)

func (h *Handler) handleChapters(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sel, err := h.selector(ctx, userID)
		if err != nil {
			return err
		}

		text, totalPages := renderChaptersPage(sel, 0)
		msg := newMessage(chatID, text)
		msg.ReplyMarkup = buildChaptersKeyboard(sel, 0, totalPages)
		h.send(msg)

		return nil
	}
}

func (h *Handler) handleQuiz(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session := h.session(userID)

		switch session.State() {
		case entities.StateActive:
			h.sendQuestion(chatID, session)
			return nil
		case entities.StateDone:
			h.sendSummary(chatID, session)
			return nil
		}

		sel, err := h.selector(ctx, userID)
		if err != nil {
			return err
		}

		cfg := session.Config()
		msg := newMessage(chatID, renderSetup(cfg, sel.Size()))
		msg.ReplyMarkup = buildSetupKeyboard(cfg, sel.CanStart())
		h.send(msg)

		return nil
	}
}

func (h *Handler) handleReset(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session := h.session(userID)
		session.Reset()

		h.send(newMessage(chatID, md(msgQuizReset)))
		return h.handleQuiz(userID)(ctx, chatID)
	}
}

func (h *Handler) handleTypedAnswer(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, ok := h.quizzes.Get(userID)
		if !ok || session.State() != entities.StateActive || session.Config().Mode != entities.ModeTyped {
			h.send(newMessage(chatID, md(msgNoActiveQuiz)))
			return nil
		}

		out, err := session.Submit(text)
		if err != nil {
			return h.submitError(chatID, session, err)
		}

		h.afterAnswer(chatID, session, out)
		return nil
	}
}

// startQuiz configures and starts the session of a user.
// It reports whether the quiz started; refusals are explained to the user.
func (h *Handler) startQuiz(ctx context.Context, userID, chatID int64, cfg entities.SessionConfig) (bool, error) {
	session := h.session(userID)

	switch session.State() {
	case entities.StateActive:
		h.send(newMessage(chatID, md(msgQuizInProgress)))
		return false, nil
	case entities.StateDone:
		session.Reset()
	}

	sel, err := h.selector(ctx, userID)
	if err != nil {
		return false, err
	}
	if !sel.CanStart() {
		h.send(newMessage(chatID, md(msgNeedMoreChapters)))
		return false, nil
	}

	if err := session.Configure(cfg); err != nil {
		return false, err
	}

	if err := session.Start(sel.Active()); err != nil {
		if errors.Is(err, service.ErrNotEnoughDistractors) {
			h.send(newMessage(chatID, md(msgNotEnoughAnswers)))
			return false, nil
		}
		return false, err
	}

	h.sendQuestion(chatID, session)
	return true, nil
}

func (h *Handler) afterAnswer(chatID int64, session *service.QuizSession, out service.Outcome) {
	h.send(newMessage(chatID, renderOutcome(out)))

	if out.Done {
		h.sendSummary(chatID, session)
		return
	}

	h.sendQuestion(chatID, session)
}

func (h *Handler) submitError(chatID int64, session *service.QuizSession, err error) error {
	if errors.Is(err, service.ErrNoCurrentQuestion) {
		h.logger.Error("quiz invariant violated",
			zap.String("session_id", session.ID()),
			zap.String("state", string(session.State())),
			zap.Error(err),
		)
		if session.State() == entities.StateDone {
			h.sendSummary(chatID, session)
		}
		return nil
	}
	return err
}

func (h *Handler) sendQuestion(chatID int64, session *service.QuizSession) {
	q, ok := session.CurrentQuestion()
	if !ok {
		h.send(newMessage(chatID, md(msgNoActiveQuiz)))
		return
	}

	answered := session.Total() - session.Remaining()
	msg := newMessage(chatID, renderQuestion(q, session.Config(), answered, session.Total(), session.Score()))
	msg.ReplyMarkup = buildQuestionKeyboard(q)
	h.send(msg)
}

func (h *Handler) sendSummary(chatID int64, session *service.QuizSession) {
	msg := newMessage(chatID, renderSummary(session.Report()))
	msg.ReplyMarkup = buildSummaryKeyboard()
	h.send(msg)
}

func editMessage(cb *tgbotapi.CallbackQuery, text string, kb *tgbotapi.InlineKeyboardMarkup) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	if kb != nil {
		edit.ReplyMarkup = kb
	}
	return edit
}
