package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// buildSheetKeyboard builds keyboard for choosing a sheet.
func buildSheetKeyboard(sheets []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(sheets))
	for i, name := range sheets {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(name, buildSheetCallback(i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildLessonKeyboard builds keyboard for choosing a lesson, two per row.
func buildLessonKeyboard(sheet int, lessons []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, name := range lessons {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(name, buildLessonCallback(sheet, i)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Munkalapok", buildMenuCallback()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildModeKeyboard builds keyboard for choosing the quiz mode.
func buildModeKeyboard(sheet, lesson int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entities.AllModes)+1)
	for _, mode := range entities.AllModes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(modeButton(mode), buildModeCallback(sheet, lesson, mode)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Leckék", buildSheetCallback(sheet)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func modeButton(mode entities.Mode) string {
	switch mode {
	case entities.ModeType:
		return "✍️ " + mode.Label()
	case entities.ModeChooseEN:
		return "🇬🇧 " + mode.Label()
	case entities.ModeChooseHU:
		return "🇭🇺 " + mode.Label()
	default:
		return "🎲 " + mode.Label()
	}
}

// buildAnswerKeyboard builds keyboard for a multiple choice question.
func buildAnswerKeyboard(sessionID string, questionIndex int, q *entities.Question) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for i, option := range q.Options {
		label := fmt.Sprintf("%d. %s", i+1, option)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(sessionID, questionIndex, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildNextKeyboard builds keyboard shown after an answer.
func buildNextKeyboard(sessionID string, last bool) tgbotapi.InlineKeyboardMarkup {
	label := "Következő ▶️"
	if last {
		label = "Eredmény 🏁"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildNextCallback(sessionID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Újrakezdés", buildRestartCallback(sessionID)),
		),
	)
}

// buildResultKeyboard builds keyboard for the quiz results screen.
func buildResultKeyboard(sessionID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Újra ugyanígy", buildRestartCallback(sessionID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Új kvíz", buildMenuCallback()),
		),
	)
}
