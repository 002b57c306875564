package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type QuizService interface {
	Sheets(ctx context.Context) []string
	Lessons(ctx context.Context, sheet string) ([]string, error)
	Start(ctx context.Context, params entities.QuizParams) (*entities.QuizSession, service.BuildInfo, error)
	Get(ctx context.Context, id string) (*entities.QuizSession, error)
	Answer(ctx context.Context, id, input string) (*entities.QuizSession, bool, error)
	AnswerOption(ctx context.Context, id string, index int) (*entities.QuizSession, bool, error)
	Advance(ctx context.Context, id string) (*entities.QuizSession, *entities.ScoreRecord, error)
	Restart(ctx context.Context, id string) (*entities.QuizSession, service.BuildInfo, error)
	Delete(ctx context.Context, id string)
}

type ScoreService interface {
	LastScore(ctx context.Context, userName string) (*entities.ScoreRecord, error)
}

// PreferenceStore keeps the quiz options of every chat.
type PreferenceStore interface {
	Get(chatID int64) storage.Preferences
	Update(chatID int64, fn func(*storage.Preferences)) storage.Preferences
}
