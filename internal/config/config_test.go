package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_ENV", "")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "data/szavak.xlsx", cfg.WorkbookPath)
	assert.Equal(t, 10, cfg.Quiz.DefaultCount)
	assert.Equal(t, 200, cfg.Quiz.MaxCount)
	assert.Equal(t, 2*time.Hour, cfg.Quiz.SessionTTL)
	assert.Equal(t, "@every 5m", cfg.Quiz.CleanupSchedule)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "*", cfg.HTTP.AllowedOrigin)
	assert.Equal(t, LedgerSQLite, cfg.Ledger.Driver)
	assert.Equal(t, 30*time.Second, cfg.DB.MaxConnLifetime)

	_, err = cfg.TelegramToken()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
	_, err = cfg.DB.DSN()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoadFrom_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
env: production
workbook_path: words.csv
quiz:
  default_count: 15
  max_count: 50
ledger:
  driver: memory
http:
  addr: ":9000"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_ADDR", ":9100")
	t.Setenv("TELEGRAM_API_TOKEN", "123:abc")
	t.Setenv("DATABASE_URL", "postgres://localhost/quiz")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "words.csv", cfg.WorkbookPath)
	assert.Equal(t, 15, cfg.Quiz.DefaultCount)
	assert.Equal(t, 50, cfg.Quiz.MaxCount)
	assert.Equal(t, LedgerMemory, cfg.Ledger.Driver)
	assert.Equal(t, ":9100", cfg.HTTP.Addr)

	token, err := cfg.TelegramToken()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", token)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/quiz", dsn)
}

func TestLoadFrom_RejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ledger:\n  driver: redis\n"), 0o600))

	_, err := LoadFrom(dir)
	assert.Error(t, err)
}
