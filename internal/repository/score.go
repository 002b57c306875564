package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

var ErrScoreNotFound = errors.New("score not found")

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// scoreColumns lists the columns of the scores table, key first.
var scoreColumns = []string{
	"user_name", "score", "total", "elapsed_seconds", "finished_at",
	"sheet", "lesson", "mode", "range_from", "range_to",
}

// DBTX is the subset of *pgxpool.Pool used by the repositories.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ScoreRepository stores the last score of every user in PostgreSQL.
type ScoreRepository struct {
	db DBTX
}

// NewScoreRepository creates a new ScoreRepository.
func NewScoreRepository(db DBTX) *ScoreRepository {
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
			finished_at     TIMESTAMPTZ NOT NULL,
			sheet           TEXT NOT NULL DEFAULT '',
			lesson          TEXT NOT NULL DEFAULT '',
			mode            TEXT NOT NULL DEFAULT '',
			range_from      INTEGER NOT NULL DEFAULT 0,
			range_to        INTEGER NOT NULL DEFAULT 0
		)
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure scores schema: %w", err)
	}

	return nil
}

// Save inserts or overwrites the record of rec.UserName.
func (r *ScoreRepository) Save(ctx context.Context, rec *entities.ScoreRecord) error {
	query, args, err := psql.Insert("scores").
		Columns(scoreColumns...).
		Values(
			rec.UserName,
			rec.Score,
			rec.Total,
			rec.ElapsedSeconds,
			rec.Timestamp,
			rec.Sheet,
			rec.Lesson,
			string(rec.Mode),
			rec.Range.From,
			rec.Range.To,
		).
		Suffix(upsertScoreSuffix("EXCLUDED")).
		ToSql()
	if err != nil {
		return fmt.Errorf("build save score query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save score: %w", err)
	}

	return nil
}

// Get returns the last record of userName.
// Returns ErrScoreNotFound if the user has no record.
func (r *ScoreRepository) Get(ctx context.Context, userName string) (*entities.ScoreRecord, error) {
	query, args, err := psql.Select(scoreColumns...).
		From("scores").
		Where(squirrel.Eq{"user_name": userName}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get score query: %w", err)
	}

	var (
		rec  entities.ScoreRecord
		mode string
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&rec.UserName,
		&rec.Score,
		&rec.Total,
		&rec.ElapsedSeconds,
		&rec.Timestamp,
		&rec.Sheet,
		&rec.Lesson,
		&mode,
		&rec.Range.From,
		&rec.Range.To,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("get score by user name: %w", err)
	}
	rec.Mode = entities.Mode(mode)

	return &rec, nil
}

// upsertScoreSuffix builds the ON CONFLICT clause overwriting every column
// but the key from the row named by excluded.
func upsertScoreSuffix(excluded string) string {
	sets := make([]string, 0, len(scoreColumns)-1)
	for _, c := range scoreColumns[1:] {
		sets = append(sets, c+" = "+excluded+"."+c)
	}
	return "ON CONFLICT (user_name) DO UPDATE SET " + strings.Join(sets, ", ")
}
