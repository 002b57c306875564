package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// Callback action constants. Telegram limits callback data to 64 bytes, so
// sheets and lessons are referenced by index and actions are one letter.
const (
	actionMenu    = "menu"
	actionSheet   = "s"
	actionLesson  = "l"
	actionMode    = "m"
	actionAnswer  = "q"
	actionNext    = "n"
	actionRestart = "r"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// ints parses the first n params as non-negative integers.
func (cd callbackData) ints(n int) ([]int, bool) {
	if len(cd.Params) < n {
		return nil, false
	}
	out := make([]int, 0, n)
	for _, p := range cd.Params[:n] {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// buildMenuCallback builds callback data for opening the sheet list.
func buildMenuCallback() string {
	return actionMenu
}

// buildSheetCallback builds callback data for choosing a sheet.
func buildSheetCallback(sheet int) string {
	return callbackData{
		Action: actionSheet,
		Params: []string{strconv.Itoa(sheet)},
	}.encode()
}

// buildLessonCallback builds callback data for choosing a lesson of a sheet.
func buildLessonCallback(sheet, lesson int) string {
	return callbackData{
		Action: actionLesson,
		Params: []string{strconv.Itoa(sheet), strconv.Itoa(lesson)},
	}.encode()
}

// buildModeCallback builds callback data for starting a quiz in mode.
func buildModeCallback(sheet, lesson int, mode entities.Mode) string {
	return callbackData{
		Action: actionMode,
		Params: []string{strconv.Itoa(sheet), strconv.Itoa(lesson), string(mode)},
	}.encode()
}

// buildAnswerCallback builds callback data for answering a quiz question.
func buildAnswerCallback(sessionID string, questionIndex, option int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{sessionID, strconv.Itoa(questionIndex), strconv.Itoa(option)},
	}.encode()
}

// buildNextCallback builds callback data for moving to the next question.
func buildNextCallback(sessionID string) string {
	return callbackData{Action: actionNext, Params: []string{sessionID}}.encode()
}

// buildRestartCallback builds callback data for restarting a quiz.
func buildRestartCallback(sessionID string) string {
	return callbackData{Action: actionRestart, Params: []string{sessionID}}.encode()
}
