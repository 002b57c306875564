// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

// Error messages.
const (
	msgInternalError   = "Valami hiba történt. Próbáld újra később."
	msgUnknownCommand  = "Ismeretlen parancs. A parancsok listája: /help"
	msgSessionExpired  = "Ez a kvíz már lejárt vagy befejeződött. Indíts újat: /quiz"
	msgNoData          = "Ebben a leckében vagy tartományban nincs szó."
	msgUnknownSheet    = "Ez a munkalap nem található. Válassz újra: /quiz"
	msgNoSheets        = "A szólista üres, nincs miből kérdezni."
	msgUseCount        = "Használat: /count 10"
	msgUseRange        = "Használat: /range 1 20, vagy /range a teljes leckéhez."
	msgNoActiveQuiz    = "Nincs futó kvíz. Indíts egyet: /quiz"
	msgChooseOption    = "Válassz a gombok közül!"
	msgAlreadyAnswered = "Erre a kérdésre már válaszoltál."
	msgNoScore         = "Még nincs mentett eredményed. Indíts egy kvízt: /quiz"
	msgQuizStopped     = "A kvíz leállítva."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMarkdownV2 builds the welcome and help text.
func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("Szia! 👋 Én vagyok a Szótanuló."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Kikérdezem a szavakat a szólistából: magyarul mutatom, te angolul írod vagy választod, vagy fordítva."))
	sb.WriteString("\n\n")
	sb.WriteString(bold("Parancsok"))
	sb.WriteString("\n")
	sb.WriteString(md("/quiz – új kvíz (munkalap, lecke, mód)\n"))
	sb.WriteString(md("/count N – kérdések száma\n"))
	sb.WriteString(md("/range A B – csak az A–B. szavak a leckéből, /range – a teljes lecke\n"))
	sb.WriteString(md("/norepeat – ismétlés nélkül be/ki\n"))
	sb.WriteString(md("/settings – jelenlegi beállítások\n"))
	sb.WriteString(md("/score – utolsó eredményed\n"))
	sb.WriteString(md("/stop – a futó kvíz leállítása"))

	return sb.String()
}

func formatChooseSheet() string {
	return bold("📚 Válassz munkalapot:")
}

func formatChooseLesson(sheet string) string {
	return fmt.Sprintf("%s\n\n%s", md("📚 "+sheet), bold("Válassz leckét:"))
}

func formatChooseMode(sheet, lesson string) string {
	return fmt.Sprintf("%s\n\n%s", md("📚 "+sheet+" / "+lesson), bold("Válassz módot:"))
}

// formatQuizStart summarizes the parameters a quiz was started with.
func formatQuizStart(s *entities.QuizSession) string {
	return fmt.Sprintf(
		"%s\n\n%s %s\n%s %s\n%s %s\n%s %s",
		bold("🎯 Indul a kvíz!"),
		md("Lecke:"), bold(s.Params.Sheet+" / "+s.Params.Lesson),
		md("Mód:"), md(s.Params.Mode.Label()),
		md("Szavak:"), md(fmt.Sprintf("%d–%d (összesen %d)", s.Range.From, s.Range.To, s.LessonTotal)),
		md("Kérdések:"), md(fmt.Sprintf("%d", s.Total())),
	)
}

// formatShortfall warns that a no-repeat quiz has fewer questions than requested.
func formatShortfall(requested, available int) string {
	return md(fmt.Sprintf(
		"⚠️ Csak %d szó van a kiválasztott tartományban, ezért %d kérdés lesz %d helyett.",
		available, available, requested,
	))
}

// formatQuestion formats the current question of a session.
func formatQuestion(s *entities.QuizSession) string {
	q, ok := s.Current()
	if !ok {
		return ""
	}

	hint := "Írd be a választ angolul!"
	if q.IsMultipleChoice() {
		hint = "Válassz egyet:"
	}

	return fmt.Sprintf(
		"%s\n%s\n\n%s\n\n%s",
		md(fmt.Sprintf("Kérdés %d / %d • Pont: %d", s.Index+1, s.Total(), s.Score)),
		italic(q.Meta),
		bold(q.Prompt),
		md(hint),
	)
}

// formatFeedback formats the result of the last answer.
func formatFeedback(res *entities.AnswerResult) string {
	if res == nil {
		return ""
	}
	if res.Correct {
		return md("✅ Helyes! +1 pont")
	}
	return fmt.Sprintf("%s %s", md("❌ Nem jó. A helyes:"), bold(res.Expected))
}

// formatAnswered formats a question together with the feedback on its answer.
func formatAnswered(s *entities.QuizSession) string {
	q, ok := s.Current()
	if !ok {
		return formatFeedback(s.LastResult)
	}
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		md(fmt.Sprintf("Kérdés %d / %d", s.Index+1, s.Total())),
		bold(q.Prompt),
		formatFeedback(s.LastResult),
	)
}

// formatResult formats the end-of-quiz summary.
func formatResult(rec *entities.ScoreRecord) string {
	percentage := 0.0
	if rec.Total > 0 {
		percentage = float64(rec.Score) / float64(rec.Total) * 100
	}

	emoji, message := "📚", "Gyakorolj még, menni fog!"
	switch {
	case percentage >= 90:
		emoji, message = "🌟", "Kiváló!"
	case percentage >= 70:
		emoji, message = "👍", "Szép munka!"
	case percentage >= 50:
		emoji, message = "💪", "Nem rossz, folytasd!"
	}

	return fmt.Sprintf(
		"%s %s %s\n%s %s\n\n%s",
		md(emoji),
		md("Vége! Eredmény:"),
		bold(fmt.Sprintf("%d / %d (%.0f%%)", rec.Score, rec.Total, percentage)),
		md("Idő:"),
		md(formatElapsed(time.Duration(rec.ElapsedSeconds)*time.Second)),
		md(message),
	)
}

// formatLastScore formats a stored score record.
func formatLastScore(rec *entities.ScoreRecord) string {
	return fmt.Sprintf(
		"%s\n\n%s %s\n%s %s\n%s %s\n%s %s",
		bold("🏆 Utolsó eredményed"),
		md("Pont:"), bold(fmt.Sprintf("%d / %d", rec.Score, rec.Total)),
		md("Idő:"), md(formatElapsed(time.Duration(rec.ElapsedSeconds)*time.Second)),
		md("Lecke:"), md(rec.Sheet+" / "+rec.Lesson),
		md("Dátum:"), md(rec.Timestamp.Local().Format("2006.01.02. 15:04")),
	)
}

// formatPreferences formats the chat's quiz options.
func formatPreferences(p storage.Preferences) string {
	rng := "teljes lecke"
	if p.RangeFrom > 0 || p.RangeTo > 0 {
		end := "vége"
		if p.RangeTo > 0 {
			end = strconv.Itoa(p.RangeTo)
		}
		rng = fmt.Sprintf("%d–%s", max(p.RangeFrom, 1), end)
	}

	return fmt.Sprintf(
		"%s\n\n%s\n%s\n%s",
		bold("⚙️ Beállítások"),
		md(fmt.Sprintf("📝 Kérdések száma: %d", p.Count)),
		md(fmt.Sprintf("🔁 Ismétlés nélkül: %s", formatBool(p.NoRepeat))),
		md(fmt.Sprintf("📏 Tartomány: %s", rng)),
	)
}

func formatBool(v bool) string {
	if v {
		return "igen"
	}
	return "nem"
}

// formatElapsed renders a duration as m:ss.
func formatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
