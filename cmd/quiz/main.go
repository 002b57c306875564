package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/app"
	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/delivery/tui"
	"github.com/aliskhannn/vocab-quiz/internal/logger"
)

func main() {
	var opts tui.Options
	flag.StringVar(&opts.UserName, "user", os.Getenv("USER"), "name the score is saved under")
	flag.IntVar(&opts.Count, "count", 0, "number of questions (default from config)")
	flag.BoolVar(&opts.NoRepeat, "no-repeat", false, "do not repeat words within a quiz")
	flag.IntVar(&opts.RangeFrom, "from", 0, "first word of the lesson (1-indexed)")
	flag.IntVar(&opts.RangeTo, "to", 0, "last word of the lesson (1-indexed)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// The terminal belongs to the UI.
	if cfg.LogFile == "" {
		cfg.LogFile = "quiz.log"
	}
	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		lg.Fatal("failed to initialize", zap.Error(err))
	}
	defer a.Close()

	go func() {
		if err := a.Janitor.Run(ctx); err != nil && ctx.Err() == nil {
			lg.Error("session janitor stopped", zap.Error(err))
		}
	}()

	p := tea.NewProgram(tui.NewModel(ctx, a.Quiz, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		lg.Error("terminal client stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
