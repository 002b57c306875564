package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/repository"
)

// ScoreRepository is the local key-value score ledger: one row per user name.
type ScoreRepository struct {
	db *sql.DB
}

// NewScoreRepository creates a new ScoreRepository.
func NewScoreRepository(db *sql.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// EnsureSchema creates the scores table if it does not exist.
func (r *ScoreRepository) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS scores (
		user_name       TEXT PRIMARY KEY,
		score           INTEGER NOT NULL,
		total           INTEGER NOT NULL,
		elapsed_seconds INTEGER NOT NULL,
		finished_at     INTEGER NOT NULL,
		sheet           TEXT NOT NULL DEFAULT '',
		lesson          TEXT NOT NULL DEFAULT '',
		mode            TEXT NOT NULL DEFAULT '',
		range_from      INTEGER NOT NULL DEFAULT 0,
		range_to        INTEGER NOT NULL DEFAULT 0
	);`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure scores schema: %w", err)
	}

	return nil
}

// Save inserts or overwrites the record of rec.UserName.
func (r *ScoreRepository) Save(ctx context.Context, rec *entities.ScoreRecord) error {
	query := `
	INSERT INTO scores (
		user_name, score, total, elapsed_seconds, finished_at,
		sheet, lesson, mode, range_from, range_to
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_name) DO UPDATE SET
		score = excluded.score,
		total = excluded.total,
		elapsed_seconds = excluded.elapsed_seconds,
		finished_at = excluded.finished_at,
		sheet = excluded.sheet,
		lesson = excluded.lesson,
		mode = excluded.mode,
		range_from = excluded.range_from,
		range_to = excluded.range_to`

	_, err := r.db.ExecContext(ctx, query,
		rec.UserName,
		rec.Score,
		rec.Total,
		rec.ElapsedSeconds,
		rec.Timestamp.UnixMilli(),
		rec.Sheet,
		rec.Lesson,
		string(rec.Mode),
		rec.Range.From,
		rec.Range.To,
	)
	if err != nil {
		return fmt.Errorf("save score: %w", err)
	}

	return nil
}

// Get returns the last record of userName.
// Returns repository.ErrScoreNotFound if the user has no record.
func (r *ScoreRepository) Get(ctx context.Context, userName string) (*entities.ScoreRecord, error) {
	query := `
	SELECT user_name, score, total, elapsed_seconds, finished_at,
	       sheet, lesson, mode, range_from, range_to
	FROM scores
	WHERE user_name = ?`

	var (
		rec        entities.ScoreRecord
		finishedAt int64
		mode       string
	)
	err := r.db.QueryRowContext(ctx, query, userName).Scan(
		&rec.UserName,
		&rec.Score,
		&rec.Total,
		&rec.ElapsedSeconds,
		&finishedAt,
		&rec.Sheet,
		&rec.Lesson,
		&mode,
		&rec.Range.From,
		&rec.Range.To,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrScoreNotFound
		}
		return nil, fmt.Errorf("get score by user name: %w", err)
	}
	rec.Timestamp = time.UnixMilli(finishedAt).UTC()
	rec.Mode = entities.Mode(mode)

	return &rec, nil
}
