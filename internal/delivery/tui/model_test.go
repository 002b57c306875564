package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/repository"
	"github.com/aliskhannn/vocab-quiz/internal/sampler"
	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

func newTestServices(t *testing.T) (*service.QuizService, *service.ScoreService) {
	t.Helper()

	sheet := entities.Sheet{Name: "6. évfolyam"}
	for i := 1; i <= 5; i++ {
		sheet.Rows = append(sheet.Rows, entities.VocabRow{
			Lesson: "Unit 1",
			EN:     fmt.Sprintf("word%d", i),
			HU:     fmt.Sprintf("szó%d", i),
		})
	}

	scores := service.NewScoreService(storage.NewScoreStorage())
	quiz := service.NewQuizService(
		repository.NewVocabRepositoryFromSheets([]entities.Sheet{sheet}),
		storage.NewQuizStorage(time.Hour),
		scores,
		service.NewQuestionBuilder(sampler.NewSeeded(3), 200),
		zap.NewNop(),
		3,
	)
	return quiz, scores
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TypedQuiz(t *testing.T) {
	quiz, scores := newTestServices(t)
	m := NewModel(context.Background(), quiz, Options{Count: 3})
	require.Equal(t, screenName, m.screen)

	m = press(t, m, key(tea.KeyEnter))
	assert.Equal(t, screenName, m.screen, "empty name is not accepted")

	m = press(t, m, runes("anna"))
	m = press(t, m, key(tea.KeyEnter))
	require.Equal(t, screenSheet, m.screen)
	assert.Contains(t, m.View(), "6. évfolyam")

	m = press(t, m, key(tea.KeyEnter))
	require.Equal(t, screenLesson, m.screen)
	m = press(t, m, key(tea.KeyEnter))
	require.Equal(t, screenMode, m.screen)
	m = press(t, m, key(tea.KeyEnter))
	require.Equal(t, screenQuestion, m.screen)
	require.Equal(t, 3, m.session.Total())

	for i := 0; i < 3; i++ {
		q, ok := m.session.Current()
		require.True(t, ok)
		assert.Contains(t, m.View(), q.Prompt)

		m = press(t, m, runes(q.Correct))
		m = press(t, m, key(tea.KeyEnter))
		require.Equal(t, screenFeedback, m.screen)
		assert.Contains(t, m.View(), "Helyes")

		m = press(t, m, key(tea.KeyEnter))
	}

	require.Equal(t, screenResult, m.screen)
	require.NotNil(t, m.Summary())
	assert.Equal(t, 3, m.Summary().Score)
	assert.Contains(t, m.View(), "3 / 3")

	rec, err := scores.LastScore(context.Background(), "anna")
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Score)

	first := m.session.ID
	m = press(t, m, runes("r"))
	require.Equal(t, screenQuestion, m.screen)
	assert.NotEqual(t, first, m.session.ID)
	assert.Zero(t, m.session.Score)
}

func TestModel_MultipleChoice(t *testing.T) {
	quiz, _ := newTestServices(t)
	m := NewModel(context.Background(), quiz, Options{UserName: "bence", Count: 2})
	require.Equal(t, screenSheet, m.screen)

	m = press(t, m, key(tea.KeyEnter))
	m = press(t, m, key(tea.KeyEnter))
	m = press(t, m, runes("j"))
	assert.Equal(t, 1, m.cursor)
	m = press(t, m, key(tea.KeyEnter))
	require.Equal(t, screenQuestion, m.screen)
	assert.Equal(t, entities.ModeChooseEN, m.session.Params.Mode)

	q, ok := m.session.Current()
	require.True(t, ok)
	require.True(t, q.IsMultipleChoice())

	m = press(t, m, runes("9"))
	assert.Equal(t, screenQuestion, m.screen, "no such option")

	correct := 0
	for i, opt := range q.Options {
		if opt == q.Correct {
			correct = i
		}
	}
	for i := 0; i < correct; i++ {
		m = press(t, m, key(tea.KeyDown))
	}
	m = press(t, m, key(tea.KeyEnter))
	require.Equal(t, screenFeedback, m.screen)
	assert.Equal(t, 1, m.session.Score)

	// answering again is not possible while locked
	m = press(t, m, runes("1"))
	assert.Equal(t, 1, m.session.Score)

	m = press(t, m, key(tea.KeyEnter))
	require.Equal(t, screenQuestion, m.screen)
	assert.Equal(t, 1, m.session.Index)

	m = press(t, m, runes("1"))
	require.Equal(t, screenFeedback, m.screen)
	assert.NotNil(t, m.session.LastResult)

	m = press(t, m, key(tea.KeyEsc))
	assert.Equal(t, screenSheet, m.screen)
	assert.Nil(t, m.session)
}

func TestModel_Navigation(t *testing.T) {
	quiz, _ := newTestServices(t)
	m := NewModel(context.Background(), quiz, Options{UserName: "cili"})

	m = press(t, m, key(tea.KeyUp))
	assert.Equal(t, 0, m.cursor)

	m = press(t, m, key(tea.KeyEnter))
	m = press(t, m, key(tea.KeyEnter))
	require.Equal(t, screenMode, m.screen)
	assert.Contains(t, m.View(), entities.ModeRandomMix.Label())

	m = press(t, m, key(tea.KeyEsc))
	assert.Equal(t, screenLesson, m.screen)
	m = press(t, m, key(tea.KeyEsc))
	assert.Equal(t, screenSheet, m.screen)

	_, cmd := m.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_Tick(t *testing.T) {
	quiz, _ := newTestServices(t)
	m := NewModel(context.Background(), quiz, Options{UserName: "dani"})

	at := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	next, cmd := m.Update(tickMsg(at))
	assert.NotNil(t, cmd)
	assert.Equal(t, at, next.(Model).now)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0:00", formatElapsed(0))
	assert.Equal(t, "1:05", formatElapsed(65*time.Second))
}
