package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.sendError(chatID, h.userMessage(chatID, err))
			return nil
		}
		return nil
	}
}

// userMessage maps an error to the text shown to the user. Unexpected errors are logged.
func (h *Handler) userMessage(chatID int64, err error) string {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return msgSessionExpired
	case errors.Is(err, service.ErrNoData):
		return msgNoData
	case errors.Is(err, service.ErrUnknownSheet):
		return msgUnknownSheet
	default:
		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return msgInternalError
	}
}
