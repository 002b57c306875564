package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

// userName returns the ledger key of a Telegram user: the username, else the
// first name, else the numeric ID.
func userName(u *tgbotapi.User) string {
	switch {
	case u == nil:
		return ""
	case u.UserName != "":
		return u.UserName
	case u.FirstName != "":
		return u.FirstName
	default:
		return strconv.FormatInt(u.ID, 10)
	}
}

// quizParams combines the wizard selection with the chat's preferences.
func quizParams(p storage.Preferences, user, sheet, lesson string, mode entities.Mode) entities.QuizParams {
	return entities.QuizParams{
		UserName:  user,
		Sheet:     sheet,
		Lesson:    lesson,
		Mode:      mode,
		Count:     p.Count,
		NoRepeat:  p.NoRepeat,
		RangeFrom: p.RangeFrom,
		RangeTo:   p.RangeTo,
	}
}

// newRemoveKeyboard builds an edit that drops the inline keyboard of a message.
func newRemoveKeyboard(chatID int64, msgID int) tgbotapi.EditMessageReplyMarkupConfig {
	return tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
}
