package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

// callbackFunc handles one decoded callback. The returned notice is shown
// to the user as the callback answer.
type callbackFunc func(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	data := decodeCallback(cb.Data)

	var fn callbackFunc
	switch data.Action {
	case actionMenu:
		fn = h.handleMenuCallback
	case actionSheet:
		fn = h.handleSheetCallback
	case actionLesson:
		fn = h.handleLessonCallback
	case actionMode:
		fn = h.handleModeCallback
	case actionAnswer:
		fn = h.handleAnswerCallback
	case actionNext:
		fn = h.handleNextCallback
	case actionRestart:
		fn = h.handleRestartCallback
	default:
		h.logger.Warn("unknown callback action", zap.String("data", cb.Data))
		h.answerCallback(cb.ID, "")
		return
	}

	notice, err := fn(ctx, cb, data)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			h.removeKeyboard(cb.Message.Chat.ID, cb.Message.MessageID)
		}
		notice = h.userMessage(cb.Message.Chat.ID, err)
	}
	h.answerCallback(cb.ID, notice)
}

func (h *Handler) handleMenuCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, _ callbackData) (string, error) {
	sheets := h.quizService.Sheets(ctx)
	if len(sheets) == 0 {
		return msgNoSheets, nil
	}

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, formatChooseSheet())
	kb := buildSheetKeyboard(sheets)
	edit.ReplyMarkup = &kb
	h.send(edit)

	return "", nil
}

func (h *Handler) handleSheetCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	idx, ok := data.ints(1)
	if !ok {
		return "", nil
	}
	sheet, ok := h.sheetAt(ctx, idx[0])
	if !ok {
		return msgUnknownSheet, nil
	}

	lessons, err := h.quizService.Lessons(ctx, sheet)
	if err != nil {
		return "", err
	}
	if len(lessons) == 0 {
		return msgNoData, nil
	}

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, formatChooseLesson(sheet))
	kb := buildLessonKeyboard(idx[0], lessons)
	edit.ReplyMarkup = &kb
	h.send(edit)

	return "", nil
}

func (h *Handler) handleLessonCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	idx, ok := data.ints(2)
	if !ok {
		return "", nil
	}
	sheet, lesson, ok, err := h.lessonAt(ctx, idx[0], idx[1])
	if err != nil {
		return "", err
	}
	if !ok {
		return msgUnknownSheet, nil
	}

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, formatChooseMode(sheet, lesson))
	kb := buildModeKeyboard(idx[0], idx[1])
	edit.ReplyMarkup = &kb
	h.send(edit)

	return "", nil
}

// handleModeCallback starts a quiz from the wizard selection and replaces
// any quiz the chat was running.
func (h *Handler) handleModeCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	idx, ok := data.ints(2)
	if !ok || len(data.Params) < 3 {
		return "", nil
	}
	mode, err := entities.ParseMode(data.Params[2])
	if err != nil {
		return "", nil
	}
	sheet, lesson, ok, err := h.lessonAt(ctx, idx[0], idx[1])
	if err != nil {
		return "", err
	}
	if !ok {
		return msgUnknownSheet, nil
	}

	chatID := cb.Message.Chat.ID
	prefs := h.prefs.Get(chatID)

	session, info, err := h.quizService.Start(ctx, quizParams(prefs, userName(cb.From), sheet, lesson, mode))
	if err != nil {
		return "", err
	}
	h.activate(ctx, chatID, session.ID)
	h.prefs.Update(chatID, func(p *storage.Preferences) {
		p.Sheet, p.Lesson, p.Mode = sheet, lesson, mode
	})

	h.send(newEdit(chatID, cb.Message.MessageID, formatQuizStart(session)))
	h.announce(chatID, session, info)

	return "", nil
}

// handleAnswerCallback grades a multiple choice button. Buttons of an
// earlier question or of an answered one are ignored.
func (h *Handler) handleAnswerCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	if len(data.Params) < 3 {
		return "", nil
	}
	id := data.Params[0]
	data.Params = data.Params[1:]
	idx, ok := data.ints(2)
	if !ok {
		return "", nil
	}

	current, err := h.quizService.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if current.Index != idx[0] || current.State() != entities.StateAwaitingAnswer {
		return msgAlreadyAnswered, nil
	}

	session, accepted, err := h.quizService.AnswerOption(ctx, id, idx[1])
	if err != nil {
		return "", err
	}
	if !accepted {
		return msgAlreadyAnswered, nil
	}

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, formatAnswered(session))
	kb := buildNextKeyboard(session.ID, session.Index == session.Total()-1)
	edit.ReplyMarkup = &kb
	h.send(edit)

	if session.LastResult != nil && session.LastResult.Correct {
		return "✅", nil
	}
	return "❌", nil
}

// handleNextCallback moves to the next question, or shows the result when
// the last one was answered.
func (h *Handler) handleNextCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	if len(data.Params) < 1 {
		return "", nil
	}
	id := data.Params[0]
	chatID := cb.Message.Chat.ID

	current, err := h.quizService.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if current.State() != entities.StateLocked {
		return "", nil
	}

	session, summary, err := h.quizService.Advance(ctx, id)
	if err != nil {
		return "", err
	}
	h.removeKeyboard(chatID, cb.Message.MessageID)

	if summary == nil {
		h.sendQuestion(chatID, session)
		return "", nil
	}

	h.deactivate(chatID, id)

	msg := newMessage(chatID, formatResult(summary))
	msg.ReplyMarkup = buildResultKeyboard(id)
	h.send(msg)

	return "", nil
}

// handleRestartCallback starts the quiz again with the same parameters.
func (h *Handler) handleRestartCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	if len(data.Params) < 1 {
		return "", nil
	}
	chatID := cb.Message.Chat.ID

	session, info, err := h.quizService.Restart(ctx, data.Params[0])
	if err != nil {
		return "", err
	}
	h.activate(ctx, chatID, session.ID)
	h.removeKeyboard(chatID, cb.Message.MessageID)

	h.send(newMessage(chatID, formatQuizStart(session)))
	h.announce(chatID, session, info)

	return "", nil
}

// announce sends the shortfall warning, if any, and the first question.
func (h *Handler) announce(chatID int64, session *entities.QuizSession, info service.BuildInfo) {
	if info.Warning() != nil {
		h.send(newMessage(chatID, formatShortfall(info.Requested, session.Total())))
	}
	h.sendQuestion(chatID, session)
}

// activate makes id the running quiz of the chat and drops the previous one.
func (h *Handler) activate(ctx context.Context, chatID int64, id string) {
	var previous string
	h.prefs.Update(chatID, func(p *storage.Preferences) {
		previous, p.ActiveSession = p.ActiveSession, id
	})
	if previous != "" && previous != id {
		h.quizService.Delete(ctx, previous)
	}
}

func (h *Handler) deactivate(chatID int64, id string) {
	h.prefs.Update(chatID, func(p *storage.Preferences) {
		if p.ActiveSession == id {
			p.ActiveSession = ""
		}
	})
}

func (h *Handler) removeKeyboard(chatID int64, msgID int) {
	if _, err := h.bot.Request(newRemoveKeyboard(chatID, msgID)); err != nil {
		h.logger.Warn("failed to remove keyboard", zap.Error(err))
	}
}

func (h *Handler) sheetAt(ctx context.Context, i int) (string, bool) {
	sheets := h.quizService.Sheets(ctx)
	if i >= len(sheets) {
		return "", false
	}
	return sheets[i], true
}

func (h *Handler) lessonAt(ctx context.Context, sheetIdx, lessonIdx int) (sheet, lesson string, ok bool, err error) {
	sheet, ok = h.sheetAt(ctx, sheetIdx)
	if !ok {
		return "", "", false, nil
	}
	lessons, err := h.quizService.Lessons(ctx, sheet)
	if err != nil {
		return "", "", false, err
	}
	if lessonIdx >= len(lessons) {
		return "", "", false, nil
	}
	return sheet, lessons[lessonIdx], true, nil
}
