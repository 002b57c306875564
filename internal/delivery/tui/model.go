package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

type screen int

const (
	screenName screen = iota
	screenSheet
	screenLesson
	screenMode
	screenQuestion
	screenFeedback
	screenResult
)

// Options are the quiz preferences the terminal client starts quizzes with.
type Options struct {
	UserName  string
	Count     int
	NoRepeat  bool
	RangeFrom int
	RangeTo   int
}

// Model is the Bubble Tea model of the terminal quiz client.
type Model struct {
	ctx  context.Context
	quiz QuizService
	opts Options

	screen  screen
	cursor  int
	sheets  []string
	lessons []string
	sheet   string
	lesson  string

	session *entities.QuizSession
	summary *entities.ScoreRecord
	warning string

	input textinput.Model
	now   time.Time
	err   error
}

// NewModel creates the model. Without a user name it asks for one first.
func NewModel(ctx context.Context, quiz QuizService, opts Options) Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	ti.Prompt = "> "
	ti.Focus()

	m := Model{
		ctx:   ctx,
		quiz:  quiz,
		opts:  opts,
		input: ti,
		now:   time.Now(),
	}

	if strings.TrimSpace(opts.UserName) == "" {
		m.screen = screenName
		m.input.Placeholder = "a neved"
		return m
	}

	m.openSheets()
	return m
}

// Init starts the clock and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

// tickMsg carries a clock tick for the elapsed time.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update routes key presses to the handler of the current screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.err = nil

		switch m.screen {
		case screenName:
			return m.updateName(msg)
		case screenSheet, screenLesson, screenMode:
			return m.updateMenu(msg)
		case screenQuestion:
			return m.updateQuestion(msg)
		case screenFeedback:
			return m.updateFeedback(msg)
		case screenResult:
			return m.updateResult(msg)
		}
	}

	if m.typing() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return m, nil
		}
		m.opts.UserName = name
		m.input.Reset()
		m.input.Placeholder = ""
		m.openSheets()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateMenu handles the sheet, lesson and mode lists.
func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.menuLen()-1 {
			m.cursor++
		}
	case "esc":
		switch m.screen {
		case screenSheet:
			return m, tea.Quit
		case screenLesson:
			m.screen, m.cursor = screenSheet, indexOf(m.sheets, m.sheet)
		case screenMode:
			m.screen, m.cursor = screenLesson, indexOf(m.lessons, m.lesson)
		}
	case "enter":
		if m.menuLen() == 0 {
			return m, nil
		}
		return m.selectMenu()
	}
	return m, nil
}

func (m Model) selectMenu() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenSheet:
		m.sheet = m.sheets[m.cursor]
		lessons, err := m.quiz.Lessons(m.ctx, m.sheet)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.lessons = lessons
		m.screen, m.cursor = screenLesson, 0
	case screenLesson:
		m.lesson = m.lessons[m.cursor]
		m.screen, m.cursor = screenMode, 0
	case screenMode:
		session, info, err := m.quiz.Start(m.ctx, entities.QuizParams{
			UserName:  m.opts.UserName,
			Sheet:     m.sheet,
			Lesson:    m.lesson,
			Mode:      entities.AllModes[m.cursor],
			Count:     m.opts.Count,
			NoRepeat:  m.opts.NoRepeat,
			RangeFrom: m.opts.RangeFrom,
			RangeTo:   m.opts.RangeTo,
		})
		if err != nil {
			m.err = err
			return m, nil
		}
		m.begin(session, info)
	}
	return m, nil
}

// updateQuestion grades an answer. Multiple choice questions take 1-4 or
// the arrows and enter, typed questions take the text input.
func (m Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q, ok := m.session.Current()
	if !ok {
		return m, nil
	}

	if msg.Type == tea.KeyEsc {
		m.openSheets()
		return m, nil
	}

	if q.IsMultipleChoice() {
		switch key := msg.String(); key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(q.Options)-1 {
				m.cursor++
			}
		case "enter":
			return m.answerOption(m.cursor)
		case "1", "2", "3", "4":
			if i := int(key[0] - '1'); i < len(q.Options) {
				return m.answerOption(i)
			}
		}
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		session, accepted, err := m.quiz.Answer(m.ctx, m.session.ID, m.input.Value())
		return m.answered(session, accepted, err)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) answerOption(i int) (tea.Model, tea.Cmd) {
	session, accepted, err := m.quiz.AnswerOption(m.ctx, m.session.ID, i)
	return m.answered(session, accepted, err)
}

func (m Model) answered(session *entities.QuizSession, accepted bool, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.err = err
		return m, nil
	}
	m.session = session
	if accepted {
		m.screen = screenFeedback
	}
	return m, nil
}

func (m Model) updateFeedback(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		session, summary, err := m.quiz.Advance(m.ctx, m.session.ID)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.session = session
		if summary != nil {
			m.summary = summary
			m.screen = screenResult
			return m, nil
		}
		m.ask()
	case "r":
		return m.restart()
	case "esc":
		m.openSheets()
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "r":
		return m.restart()
	case "enter":
		m.openSheets()
	}
	return m, nil
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	session, info, err := m.quiz.Restart(m.ctx, m.session.ID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			m.openSheets()
		}
		m.err = err
		return m, nil
	}
	m.begin(session, info)
	return m, nil
}

func (m *Model) begin(session *entities.QuizSession, info service.BuildInfo) {
	m.session = session
	m.summary = nil
	m.warning = ""
	if warn := info.Warning(); warn != nil {
		m.warning = warn.Error()
	}
	m.now = time.Now()
	m.ask()
}

// ask shows the current question.
func (m *Model) ask() {
	m.screen = screenQuestion
	m.cursor = 0
	m.input.Reset()
	m.input.Focus()
}

func (m *Model) openSheets() {
	m.sheets = m.quiz.Sheets(m.ctx)
	m.screen = screenSheet
	m.cursor = indexOf(m.sheets, m.sheet)
	m.session = nil
}

func (m Model) menuLen() int {
	switch m.screen {
	case screenSheet:
		return len(m.sheets)
	case screenLesson:
		return len(m.lessons)
	case screenMode:
		return len(entities.AllModes)
	default:
		return 0
	}
}

// typing reports whether the text input receives non-key messages such as blinks.
func (m Model) typing() bool {
	if m.screen == screenName {
		return true
	}
	if m.screen != screenQuestion || m.session == nil {
		return false
	}
	q, ok := m.session.Current()
	return ok && !q.IsMultipleChoice()
}

// Summary returns the result of the last finished quiz, if any.
func (m Model) Summary() *entities.ScoreRecord {
	return m.summary
}

func indexOf(items []string, item string) int {
	for i, v := range items {
		if v == item {
			return i
		}
	}
	return 0
}
