package tui

import (
	"context"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

type QuizService interface {
	Sheets(ctx context.Context) []string
	Lessons(ctx context.Context, sheet string) ([]string, error)
	Start(ctx context.Context, params entities.QuizParams) (*entities.QuizSession, service.BuildInfo, error)
	Answer(ctx context.Context, id, input string) (*entities.QuizSession, bool, error)
	AnswerOption(ctx context.Context, id string, index int) (*entities.QuizSession, bool, error)
	Advance(ctx context.Context, id string) (*entities.QuizSession, *entities.ScoreRecord, error)
	Restart(ctx context.Context, id string) (*entities.QuizSession, service.BuildInfo, error)
}
