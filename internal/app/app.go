// Package app wires the services shared by every entry point.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/infra/ledger"
	"github.com/aliskhannn/vocab-quiz/internal/repository"
	"github.com/aliskhannn/vocab-quiz/internal/sampler"
	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

// App holds the services of a running process.
type App struct {
	Quiz    *service.QuizService
	Scores  *service.ScoreService
	Janitor *service.SessionJanitor

	closeLedger func()
}

// New loads the workbook, opens the score ledger and builds the services.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	vocab, err := repository.NewVocabRepository(cfg.WorkbookPath)
	if err != nil {
		return nil, fmt.Errorf("load workbook: %w", err)
	}
	logger.Info("workbook loaded",
		zap.String("path", cfg.WorkbookPath),
		zap.Strings("sheets", vocab.Sheets()),
	)

	scoreLedger, closeLedger, err := ledger.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	sessions := storage.NewQuizStorage(cfg.Quiz.SessionTTL)
	scores := service.NewScoreService(scoreLedger)
	builder := service.NewQuestionBuilder(sampler.Global(), cfg.Quiz.MaxCount)

	return &App{
		Quiz:        service.NewQuizService(vocab, sessions, scores, builder, logger, cfg.Quiz.DefaultCount),
		Scores:      scores,
		Janitor:     service.NewSessionJanitor(sessions, cfg.Quiz.CleanupSchedule, logger),
		closeLedger: closeLedger,
	}, nil
}

// Close releases the score ledger.
func (a *App) Close() {
	a.closeLedger()
}
