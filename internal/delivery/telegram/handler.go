package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot          Bot
	logger       *zap.Logger
	quizService  QuizService
	scoreService ScoreService
	prefs        PreferenceStore
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	quizService QuizService,
	scoreService ScoreService,
	prefs PreferenceStore,
) *Handler {
	return &Handler{
		bot:          bot,
		logger:       logger,
		quizService:  quizService,
		scoreService: scoreService,
		prefs:        prefs,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	user := userName(update.Message.From)

	if update.Message.IsCommand() {
		args := update.Message.CommandArguments()

		switch update.Message.Command() {
		case "start", "help":
			h.send(newMessage(chatID, welcomeMarkdownV2()))

		case "quiz":
			_ = h.withErrorHandling(h.handleQuizMenu())(ctx, chatID)

		case "count":
			_ = h.withErrorHandling(h.handleCount(args))(ctx, chatID)

		case "range":
			_ = h.withErrorHandling(h.handleRange(args))(ctx, chatID)

		case "norepeat":
			_ = h.withErrorHandling(h.handleNoRepeat())(ctx, chatID)

		case "settings":
			_ = h.withErrorHandling(h.handleSettings())(ctx, chatID)

		case "score":
			_ = h.withErrorHandling(h.handleScore(user))(ctx, chatID)

		case "stop":
			_ = h.withErrorHandling(h.handleStop())(ctx, chatID)

		default:
			h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	_ = h.withErrorHandling(h.handleTextAnswer(update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// answerCallback removes the loading indicator of a button, optionally with a notice.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
