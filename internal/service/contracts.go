package service

import (
	"context"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// VocabRepository is the row store the quiz is built from.
type VocabRepository interface {
	Sheets() []string
	SheetRows(sheet string) ([]entities.VocabRow, error)
	LessonRows(sheet, lesson string) ([]entities.VocabRow, error)
	Lessons(sheet string) ([]string, error)
}

// SessionStorage keeps running quiz sessions.
type SessionStorage interface {
	Store(session *entities.QuizSession)
	Get(id string) (*entities.QuizSession, error)
	Update(id string, fn func(*entities.QuizSession) error) (*entities.QuizSession, error)
	Delete(id string)
}

// SessionCleaner drops abandoned sessions.
type SessionCleaner interface {
	CleanupExpired() int
}

// ScoreLedger persists the last score of every user.
type ScoreLedger interface {
	Save(ctx context.Context, rec *entities.ScoreRecord) error
	Get(ctx context.Context, userName string) (*entities.ScoreRecord, error)
}

// ScoreRecorder receives the summary of every finished session.
type ScoreRecorder interface {
	Save(ctx context.Context, rec *entities.ScoreRecord) error
}
