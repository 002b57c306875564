package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

// Commands lists the bot commands shown in the Telegram menu.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "quiz", Description: "Új kvíz indítása"},
		{Command: "count", Description: "Kérdések száma (pl. /count 10)"},
		{Command: "range", Description: "Szavak tartománya (pl. /range 1 20)"},
		{Command: "norepeat", Description: "Ismétlés nélkül be/ki"},
		{Command: "settings", Description: "Beállítások"},
		{Command: "score", Description: "Utolsó eredmény"},
		{Command: "stop", Description: "A kvíz leállítása"},
		{Command: "help", Description: "Súgó"},
	}
}

// handleQuizMenu shows the sheet selection keyboard.
func (h *Handler) handleQuizMenu() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sheets := h.quizService.Sheets(ctx)
		if len(sheets) == 0 {
			h.send(newPlainMessage(chatID, msgNoSheets))
			return nil
		}

		msg := newMessage(chatID, formatChooseSheet())
		msg.ReplyMarkup = buildSheetKeyboard(sheets)
		h.send(msg)

		return nil
	}
}

// handleCount sets the number of questions. Values that are not a positive
// number are clamped to one.
func (h *Handler) handleCount(args string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		args = strings.TrimSpace(args)
		if args == "" {
			h.send(newPlainMessage(chatID, msgUseCount))
			return nil
		}

		n, err := strconv.Atoi(args)
		if err != nil || n < 1 {
			n = 1
		}

		p := h.prefs.Update(chatID, func(p *storage.Preferences) { p.Count = n })
		h.send(newMessage(chatID, formatPreferences(p)))

		return nil
	}
}

// handleRange limits the quiz to a 1-indexed slice of the lesson.
// Without arguments the whole lesson is used again.
func (h *Handler) handleRange(args string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		from, to, ok := parseRange(args)
		if !ok {
			h.send(newPlainMessage(chatID, msgUseRange))
			return nil
		}

		p := h.prefs.Update(chatID, func(p *storage.Preferences) {
			p.RangeFrom, p.RangeTo = from, to
		})
		h.send(newMessage(chatID, formatPreferences(p)))

		return nil
	}
}

// parseRange reads "/range from to". Only the number of arguments is
// validated: bounds below one become one and a non-numeric bound is left
// open, so the question builder clamps it to the lesson.
func parseRange(args string) (from, to int, ok bool) {
	fields := strings.Fields(args)
	switch len(fields) {
	case 0:
		return 0, 0, true
	case 2:
		return parseBound(fields[0]), parseBound(fields[1]), true
	default:
		return 0, 0, false
	}
}

func parseBound(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return max(n, 1)
}

// handleNoRepeat toggles the no-repeat policy.
func (h *Handler) handleNoRepeat() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		p := h.prefs.Update(chatID, func(p *storage.Preferences) { p.NoRepeat = !p.NoRepeat })
		h.send(newMessage(chatID, formatPreferences(p)))
		return nil
	}
}

// handleSettings shows the chat's quiz options.
func (h *Handler) handleSettings() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		h.send(newMessage(chatID, formatPreferences(h.prefs.Get(chatID))))
		return nil
	}
}

// handleScore shows the last recorded result of the user.
func (h *Handler) handleScore(user string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		rec, err := h.scoreService.LastScore(ctx, user)
		if err != nil {
			if errors.Is(err, service.ErrScoreNotFound) {
				h.send(newPlainMessage(chatID, msgNoScore))
				return nil
			}
			return err
		}

		h.send(newMessage(chatID, formatLastScore(rec)))
		return nil
	}
}

// handleStop drops the running quiz of the chat.
func (h *Handler) handleStop() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		p := h.prefs.Get(chatID)
		if p.ActiveSession == "" {
			h.send(newPlainMessage(chatID, msgNoActiveQuiz))
			return nil
		}

		h.quizService.Delete(ctx, p.ActiveSession)
		h.prefs.Update(chatID, func(p *storage.Preferences) { p.ActiveSession = "" })
		h.send(newPlainMessage(chatID, msgQuizStopped))

		return nil
	}
}

// handleTextAnswer grades a plain text message against the running quiz.
// A number picks an option of a multiple choice question.
func (h *Handler) handleTextAnswer(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		id := h.prefs.Get(chatID).ActiveSession
		if id == "" {
			h.send(newPlainMessage(chatID, msgNoActiveQuiz))
			return nil
		}

		session, err := h.quizService.Get(ctx, id)
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				h.prefs.Update(chatID, func(p *storage.Preferences) { p.ActiveSession = "" })
			}
			return err
		}

		q, ok := session.Current()
		switch {
		case !ok:
			h.send(newPlainMessage(chatID, msgNoActiveQuiz))
			return nil
		case session.Locked:
			h.send(newPlainMessage(chatID, msgAlreadyAnswered))
			return nil
		}

		var accepted bool
		if q.IsMultipleChoice() {
			n, convErr := strconv.Atoi(strings.TrimSpace(text))
			if convErr != nil || n < 1 || n > len(q.Options) {
				h.send(newPlainMessage(chatID, msgChooseOption))
				return nil
			}
			session, accepted, err = h.quizService.AnswerOption(ctx, id, n-1)
		} else {
			session, accepted, err = h.quizService.Answer(ctx, id, text)
		}
		if err != nil {
			return err
		}
		if !accepted {
			h.send(newPlainMessage(chatID, msgAlreadyAnswered))
			return nil
		}

		msg := newMessage(chatID, formatAnswered(session))
		msg.ReplyMarkup = buildNextKeyboard(session.ID, session.Index == session.Total()-1)
		h.send(msg)

		return nil
	}
}

// sendQuestion sends the current question of a session.
func (h *Handler) sendQuestion(chatID int64, session *entities.QuizSession) {
	msg := newMessage(chatID, formatQuestion(session))
	if q, ok := session.Current(); ok && q.IsMultipleChoice() {
		msg.ReplyMarkup = buildAnswerKeyboard(session.ID, session.Index, q)
	}
	h.send(msg)
}
