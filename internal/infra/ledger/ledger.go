// Package ledger opens the score ledger backend selected in the configuration.
package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
	"github.com/aliskhannn/vocab-quiz/internal/infra/sqlite"
	"github.com/aliskhannn/vocab-quiz/internal/repository"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

// Ledger stores the last score of every user.
type Ledger interface {
	Save(ctx context.Context, rec *entities.ScoreRecord) error
	Get(ctx context.Context, userName string) (*entities.ScoreRecord, error)
}

// Open connects to the configured backend and bootstraps its schema.
// The returned close function releases the backend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Ledger, func(), error) {
	switch cfg.Ledger.Driver {
	case config.LedgerMemory:
		logger.Info("using in-memory score ledger")
		return storage.NewScoreStorage(), func() {}, nil

	case config.LedgerPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, fmt.Errorf("postgres ledger: %w", err)
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("postgres ledger: %w", err)
		}
		repo := repository.NewScoreRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("using postgres score ledger")
		return repo, pool.Close, nil

	case config.LedgerSQLite:
		db, err := sqlite.Open(ctx, cfg.Ledger.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite ledger: %w", err)
		}
		repo := sqlite.NewScoreRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("using sqlite score ledger", zap.String("path", cfg.Ledger.SQLitePath))
		return repo, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown ledger driver %q", cfg.Ledger.Driver)
	}
}
