package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// View renders the current screen.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenName:
		body = m.viewName()
	case screenSheet:
		body = m.viewMenu("Válassz munkalapot", m.sheets)
	case screenLesson:
		body = m.viewMenu(m.sheet+" · válassz leckét", m.lessons)
	case screenMode:
		labels := make([]string, len(entities.AllModes))
		for i, mode := range entities.AllModes {
			labels[i] = mode.Label()
		}
		body = m.viewMenu(m.sheet+" / "+m.lesson+" · válassz módot", labels)
	case screenQuestion, screenFeedback:
		body = m.viewQuestion()
	case screenResult:
		body = m.viewResult()
	}

	parts := []string{styleHeader.Render("Szótanuló"), body}
	if m.err != nil {
		parts = append(parts, styleError.Render("Hiba: "+m.err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m Model) viewName() string {
	var b strings.Builder
	b.WriteString("Hogy hívnak?\n\n")
	b.WriteString(m.input.View())
	b.WriteString(styleSubtle.Render("\n\nenter: tovább • esc: kilépés"))
	return b.String()
}

func (m Model) viewMenu(title string, items []string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(styleWarning.Render("Nincs miből választani."))
		b.WriteString("\n")
	}
	for i, item := range items {
		if i == m.cursor {
			b.WriteString(styleCursor.Render("> "))
			b.WriteString(styleHighlight.Render(item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}

	b.WriteString(styleSubtle.Render("\n↑/↓: mozgás • enter: kiválaszt • esc: vissza • q: kilépés"))
	return b.String()
}

func (m Model) viewQuestion() string {
	s := m.session
	if s == nil {
		return ""
	}
	q, ok := s.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	if m.warning != "" {
		b.WriteString(styleWarning.Render("⚠ " + m.warning))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Kérdés %d / %d • Pont: %d • Idő: %s\n",
		s.Index+1, s.Total(), s.Score, formatElapsed(s.Elapsed(m.now))))
	b.WriteString(styleSubtle.Render(q.Meta))
	b.WriteString("\n\n")
	b.WriteString(stylePrompt.Render(q.Prompt))
	b.WriteString("\n")

	switch {
	case q.IsMultipleChoice():
		for i, opt := range q.Options {
			line := fmt.Sprintf("%d. %s", i+1, opt)
			switch {
			case m.screen == screenFeedback && opt == q.Correct:
				b.WriteString("  " + styleCorrect.Render(line))
			case m.screen == screenFeedback && s.LastResult != nil && opt == s.LastResult.Given:
				b.WriteString("  " + styleIncorrect.Render(line))
			case m.screen == screenQuestion && i == m.cursor:
				b.WriteString(styleCursor.Render("> ") + styleHighlight.Render(line))
			default:
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	case m.screen == screenQuestion:
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.screen == screenFeedback && s.LastResult != nil {
		b.WriteString("\n")
		if s.LastResult.Correct {
			b.WriteString(styleCorrect.Render("✓ Helyes!"))
		} else {
			b.WriteString(styleIncorrect.Render("✗ Nem jó. A helyes: " + s.LastResult.Expected))
		}
		b.WriteString("\n")
		b.WriteString(styleSubtle.Render("\nenter: következő • r: újrakezdés • esc: menü"))
		return b.String()
	}

	if q.IsMultipleChoice() {
		b.WriteString(styleSubtle.Render("\n1-4 vagy ↑/↓ és enter: válasz • esc: menü"))
	} else {
		b.WriteString(styleSubtle.Render("\nenter: válasz • esc: menü"))
	}
	return b.String()
}

func (m Model) viewResult() string {
	rec := m.summary
	if rec == nil {
		return ""
	}

	percentage := 0.0
	if rec.Total > 0 {
		percentage = float64(rec.Score) / float64(rec.Total) * 100
	}

	var b strings.Builder
	b.WriteString(styleCorrect.Render(fmt.Sprintf("Vége! Eredmény: %d / %d (%.0f%%)", rec.Score, rec.Total, percentage)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Idő: %s\n", formatElapsed(time.Duration(rec.ElapsedSeconds)*time.Second)))
	b.WriteString(styleSubtle.Render("\nr: újra ugyanígy • enter: új kvíz • q: kilépés"))
	return b.String()
}

// formatElapsed renders a duration as m:ss.
func formatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
