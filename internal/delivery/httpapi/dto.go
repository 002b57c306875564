package httpapi

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

type sheetView struct {
	Name    string   `json:"name"`
	Lessons []string `json:"lessons"`
}

type startRequest struct {
	User      string `json:"user"`
	Sheet     string `json:"sheet"`
	Lesson    string `json:"lesson"`
	Mode      string `json:"mode"`
	Count     looseInt `json:"count"`
	NoRepeat  bool     `json:"no_repeat"`
	RangeFrom looseInt `json:"range_from"`
	RangeTo   looseInt `json:"range_to"`
}

// looseInt accepts a JSON number or a numeric string. Anything else decodes
// to zero and is left for the question builder to clamp.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	*n = 0

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}

	switch v := v.(type) {
	case float64:
		*n = looseInt(v)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*n = looseInt(i)
		}
	}
	return nil
}

type answerRequest struct {
	Answer string `json:"answer"`
	Option *int   `json:"option"`
	// Question is the index the client answered. A mismatch with the
	// session's current question drops the answer.
	Question *int `json:"question"`
}

type questionView struct {
	Number  int           `json:"number"`
	Mode    entities.Mode `json:"mode"`
	Prompt  string        `json:"prompt"`
	Options []string      `json:"options,omitempty"`
	Meta    string        `json:"meta"`
}

// sessionView is the public state of a session. The correct answer is only
// included through result, after the current question is locked.
type sessionView struct {
	Success        bool                   `json:"success"`
	ID             string                 `json:"id"`
	State          entities.SessionState  `json:"state"`
	User           string                 `json:"user"`
	Sheet          string                 `json:"sheet"`
	Lesson         string                 `json:"lesson"`
	Mode           entities.Mode          `json:"mode"`
	Range          entities.Range         `json:"range"`
	LessonTotal    int                    `json:"lesson_total"`
	Index          int                    `json:"index"`
	Total          int                    `json:"total"`
	Score          int                    `json:"score"`
	ElapsedSeconds int                    `json:"elapsed_seconds"`
	Question       *questionView          `json:"question,omitempty"`
	Result         *entities.AnswerResult `json:"result,omitempty"`
	Accepted       *bool                  `json:"accepted,omitempty"`
	Summary        *entities.ScoreRecord  `json:"summary,omitempty"`
	Warning        string                 `json:"warning,omitempty"`
}

func newSessionView(s *entities.QuizSession, now time.Time) sessionView {
	v := sessionView{
		Success:        true,
		ID:             s.ID,
		State:          s.State(),
		User:           s.Params.UserName,
		Sheet:          s.Params.Sheet,
		Lesson:         s.Params.Lesson,
		Mode:           s.Params.Mode,
		Range:          s.Range,
		LessonTotal:    s.LessonTotal,
		Index:          s.Index,
		Total:          s.Total(),
		Score:          s.Score,
		ElapsedSeconds: int(s.Elapsed(now) / time.Second),
		Result:         s.LastResult,
	}

	if q, ok := s.Current(); ok {
		v.Question = &questionView{
			Number:  s.Index + 1,
			Mode:    q.Mode,
			Prompt:  q.Prompt,
			Options: q.Options,
			Meta:    q.Meta,
		}
	}
	if s.IsFinished() {
		v.Summary = s.Summary(now)
	}

	return v
}

type scoreView struct {
	Success bool                  `json:"success"`
	Score   *entities.ScoreRecord `json:"score"`
}

type errorView struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
