package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quran-fahras-bot/internal/config"
	"github.com/aliskhannn/quran-fahras-bot/internal/delivery/telegram"
	"github.com/aliskhannn/quran-fahras-bot/internal/infra/postgres"
	"github.com/aliskhannn/quran-fahras-bot/internal/logger"
	"github.com/aliskhannn/quran-fahras-bot/internal/repository"
	"github.com/aliskhannn/quran-fahras-bot/internal/service"
	"github.com/aliskhannn/quran-fahras-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	catalog, err := repository.NewChapterRepository(cfg.ChaptersJSONPath)
	if err != nil {
		return fmt.Errorf("load chapter catalog: %w", err)
	}
	lg.Info("chapter catalog loaded", zap.Int("chapters", catalog.Count()))

	prefs, closePrefs, err := newPreferenceStore(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closePrefs()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "chapters", Description: "Choose chapters to study"},
		{Command: "quiz", Description: "Start a quiz"},
		{Command: "reset", Description: "Abandon the current quiz"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(
		bot,
		lg,
		catalog,
		prefs,
		storage.NewQuizStorage(),
		storage.NewSelectorStorage(),
		service.DefaultRandom,
	)

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	return nil
}

// newPreferenceStore opens the configured preference store and returns a close func.
func newPreferenceStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (service.PreferenceStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		repo, err := repository.NewSQLitePreferenceRepository(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		lg.Info("using sqlite preference store", zap.String("path", cfg.Storage.SQLitePath))
		return repo, func() { _ = repo.Close() }, nil

	case config.DriverMemory:
		lg.Warn("using in-memory preference store, selections are lost on restart")
		return storage.NewPreferenceStorage(), func() {}, nil
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	lg.Info("using postgres preference store")
	return repository.NewPreferenceRepository(pool), pool.Close, nil
}
