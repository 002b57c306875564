package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/vocab-quiz/internal/app"
	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/delivery/telegram"
	"github.com/aliskhannn/vocab-quiz/internal/logger"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
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

	token, err := cfg.TelegramToken()
	if err != nil {
		lg.Fatal("telegram token", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env == "local"
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to initialize", zap.Error(err))
	}
	defer a.Close()

	handler := telegram.NewHandler(
		bot,
		lg,
		a.Quiz,
		a.Scores,
		storage.NewPreferenceStorage(cfg.Quiz.DefaultCount),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Janitor.Run(gctx) })
	g.Go(func() error { return handler.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
