package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("Lecke,English,Magyar\n1,apple,alma\n1,pear,körte\n"), 0o600))

	cfg := &config.Config{
		WorkbookPath: path,
		Quiz:         config.Quiz{DefaultCount: 4, MaxCount: 50, SessionTTL: time.Hour, CleanupSchedule: "@every 1m"},
		Ledger:       config.Ledger{Driver: config.LedgerSQLite, SQLitePath: filepath.Join(dir, "scores.db")},
	}

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	session, _, err := a.Quiz.Start(context.Background(), entities.QuizParams{
		UserName: "anna",
		Sheet:    a.Quiz.Sheets(context.Background())[0],
		Lesson:   "1",
		Mode:     entities.ModeType,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, session.Total())
	assert.Zero(t, a.Janitor.Sweep())
}

func TestNew_MissingWorkbook(t *testing.T) {
	cfg := &config.Config{
		WorkbookPath: filepath.Join(t.TempDir(), "missing.xlsx"),
		Ledger:       config.Ledger{Driver: config.LedgerMemory},
	}

	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
