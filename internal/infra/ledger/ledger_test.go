package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/repository"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	for _, driver := range []string{config.LedgerMemory, config.LedgerSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := &config.Config{Ledger: config.Ledger{
				Driver:     driver,
				SQLitePath: filepath.Join(t.TempDir(), "scores.db"),
			}}

			l, closeFn, err := Open(ctx, cfg, zap.NewNop())
			require.NoError(t, err)
			defer closeFn()

			_, err = l.Get(ctx, "anna")
			assert.ErrorIs(t, err, repository.ErrScoreNotFound)

			rec := &entities.ScoreRecord{UserName: "anna", Score: 1, Total: 2, Timestamp: time.UnixMilli(1700000000000).UTC()}
			require.NoError(t, l.Save(ctx, rec))

			got, err := l.Get(ctx, "anna")
			require.NoError(t, err)
			assert.Equal(t, rec, got)
		})
	}
}

func TestOpen_PostgresNeedsDSN(t *testing.T) {
	cfg := &config.Config{Ledger: config.Ledger{Driver: config.LedgerPostgres}}

	_, _, err := Open(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, config.ErrMissingEnvironmentVariables)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Ledger: config.Ledger{Driver: "redis"}}

	_, _, err := Open(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
