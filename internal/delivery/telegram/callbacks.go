package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
	"github.com/aliskhannn/quran-fahras-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	cd := decodeCallback(cb.Data)
	chatID := cb.Message.Chat.ID

	var (
		notice string
		err    error
	)

	switch cd.Action {
	case actionChapters:
		notice, err = h.handleChaptersCallback(ctx, cb, cd)
	case actionQuiz:
		notice, err = h.handleQuizCallback(ctx, cb, cd)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	if err != nil {
		h.logger.Error("callback error",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.send(newMessage(chatID, md(msgInternalError)))
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, notice)
}

func (h *Handler) handleChaptersCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) (string, error) {
	sel, err := h.selector(ctx, cb.From.ID)
	if err != nil {
		return "", err
	}

	notice := ""
	page := 0

	switch cd.param(0) {
	case chaptersPage:
		page, _ = cd.intParam(1)

	case chaptersToggle:
		id, ok := cd.intParam(1)
		if !ok {
			return "", nil
		}
		page, _ = cd.intParam(2)
		if err := sel.Toggle(id); err != nil {
			if errors.Is(err, service.ErrUnknownChapter) {
				return "", nil
			}
			return "", err
		}

	case chaptersAll:
		page, _ = cd.intParam(1)
		sel.SelectAll()

	case chaptersNone:
		page, _ = cd.intParam(1)
		sel.DeselectAll()

	case chaptersApply:
		page, _ = cd.intParam(1)
		if err := sel.Apply(ctx); err != nil {
			return "", err
		}
		notice = msgSelectionApplied

	default:
		return "", nil
	}

	if page < 0 || page >= chapterPages(sel) {
		page = 0
	}
	text, totalPages := renderChaptersPage(sel, page)
	kb := buildChaptersKeyboard(sel, page, totalPages)
	h.send(editMessage(cb, text, &kb))

	return notice, nil
}

func (h *Handler) handleQuizCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) (string, error) {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	switch cd.param(0) {
	case quizSetup:
		session := h.session(userID)
		if session.State() != entities.StateSetup {
			return msgQuizInProgress, nil
		}

		sel, err := h.selector(ctx, userID)
		if err != nil {
			return "", err
		}

		cfg := decodeDraft(cd.Params[1:])
		kb := buildSetupKeyboard(cfg, sel.CanStart())
		h.send(editMessage(cb, renderSetup(cfg, sel.Size()), &kb))
		return "", nil

	case quizStart:
		cfg := decodeDraft(cd.Params[1:])
		if err := cfg.Validate(); err != nil {
			return "", nil
		}
		_, err := h.startQuiz(ctx, userID, chatID, cfg)
		return "", err

	case quizAnswer:
		chapterID, okChapter := cd.intParam(1)
		idx, okIdx := cd.intParam(2)
		if !okChapter || !okIdx {
			return "", nil
		}

		session, exists := h.quizzes.Get(userID)
		if !exists {
			return msgNoActiveQuestion, nil
		}
		// Buttons of an already answered question must not answer the next one.
		if q, ok := session.CurrentQuestion(); !ok || q.ChapterID != chapterID {
			return msgNoActiveQuestion, nil
		}

		out, err := session.SubmitOption(idx)
		if err != nil {
			if errors.Is(err, service.ErrInvalidState) || errors.Is(err, service.ErrInvalidOption) {
				return msgNoActiveQuestion, nil
			}
			return "", h.submitError(chatID, session, err)
		}

		h.afterAnswer(chatID, session, out)
		return "", nil

	case quizAgain:
		cfg := h.session(userID).Config()
		if cfg.Validate() != nil {
			return "", h.handleQuiz(userID)(ctx, chatID)
		}
		_, err := h.startQuiz(ctx, userID, chatID, cfg)
		return "", err

	case quizReset:
		return "", h.handleReset(userID)(ctx, chatID)
	}

	return "", nil
}
