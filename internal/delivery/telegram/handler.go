package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quran-fahras-bot/internal/service"
	"github.com/aliskhannn/quran-fahras-bot/internal/storage"
)

// Bot is the part of the Telegram API the handler uses. *tgbotapi.BotAPI satisfies it.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type Handler struct {
	bot       Bot
	logger    *zap.Logger
	catalog   service.ChapterCatalog
	prefs     service.PreferenceStore
	quizzes   *storage.QuizStorage
	selectors *storage.SelectorStorage
	rnd       service.Random
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	catalog service.ChapterCatalog,
	prefs service.PreferenceStore,
	quizzes *storage.QuizStorage,
	selectors *storage.SelectorStorage,
	rnd service.Random,
) *Handler {
	if rnd == nil {
		rnd = service.DefaultRandom
	}

	return &Handler{
		bot:       bot,
		logger:    logger,
		catalog:   catalog,
		prefs:     prefs,
		quizzes:   quizzes,
		selectors: selectors,
		rnd:       rnd,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start", "help":
			h.send(newMessage(chatID, md(msgWelcome)))

		case "chapters":
			_ = h.withErrorHandling(h.handleChapters(userID))(ctx, chatID)

		case "quiz":
			_ = h.withErrorHandling(h.handleQuiz(userID))(ctx, chatID)

		case "reset":
			_ = h.withErrorHandling(h.handleReset(userID))(ctx, chatID)

		default:
			h.send(newMessage(chatID, md(msgUnknownCommand)))
		}

		return
	}

	_ = h.withErrorHandling(h.handleTypedAnswer(userID, update.Message.Text))(ctx, chatID)
}

// selector returns the loaded subset selector of a user.
func (h *Handler) selector(ctx context.Context, userID int64) (*service.SubsetSelector, error) {
	if sel, ok := h.selectors.Get(userID); ok {
		return sel, nil
	}

	sel := service.NewSubsetSelector(h.catalog, h.prefs, userID, h.logger)
	if err := sel.Load(ctx); err != nil {
		return nil, fmt.Errorf("load subset for user %d: %w", userID, err)
	}

	h.selectors.Store(userID, sel)
	return sel, nil
}

// session returns the quiz session of a user.
func (h *Handler) session(userID int64) *service.QuizSession {
	return h.quizzes.GetOrCreate(userID, func() *service.QuizSession {
		return service.NewQuizSession(
			service.NewQuestionGenerator(h.rnd),
			h.rnd,
			h.logger.With(zap.Int64("user_id", userID)),
		)
	})
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
