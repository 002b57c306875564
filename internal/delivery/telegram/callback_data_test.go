package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

func TestCallbackData_RoundTrip(t *testing.T) {
	const id = "0b7f5c3e-7f0e-4f38-9d2b-2d6f0f8c9a11"

	tests := []struct {
		name   string
		data   string
		action string
		params []string
	}{
		{"menu", buildMenuCallback(), actionMenu, []string{}},
		{"sheet", buildSheetCallback(2), actionSheet, []string{"2"}},
		{"lesson", buildLessonCallback(2, 14), actionLesson, []string{"2", "14"}},
		{"mode", buildModeCallback(0, 3, entities.ModeChooseHU), actionMode, []string{"0", "3", "MC_HU"}},
		{"answer", buildAnswerCallback(id, 9, 3), actionAnswer, []string{id, "9", "3"}},
		{"next", buildNextCallback(id), actionNext, []string{id}},
		{"restart", buildRestartCallback(id), actionRestart, []string{id}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.LessOrEqual(t, len(tt.data), 64, "telegram callback data limit")

			cd := decodeCallback(tt.data)
			assert.Equal(t, tt.action, cd.Action)
			assert.Equal(t, tt.params, cd.Params)
			assert.Equal(t, tt.data, cd.Raw)
		})
	}
}

func TestCallbackData_Ints(t *testing.T) {
	v, ok := decodeCallback("l:1:7").ints(2)
	assert.True(t, ok)
	assert.Equal(t, []int{1, 7}, v)

	_, ok = decodeCallback("l:1").ints(2)
	assert.False(t, ok)

	_, ok = decodeCallback("l:1:x").ints(2)
	assert.False(t, ok)

	_, ok = decodeCallback("l:-1:2").ints(2)
	assert.False(t, ok)
}
