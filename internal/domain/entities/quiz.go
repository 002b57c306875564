package entities

import (
	"time"
)

// SessionState is the state of a quiz session.
type SessionState string

const (
	StateAwaitingAnswer SessionState = "awaiting_answer"
	StateLocked         SessionState = "locked"
	StateFinished       SessionState = "finished"
)

// QuizParams are the user's choices a session was built from.
// They are kept so that a restart can rebuild an equivalent session.
type QuizParams struct {
	UserName  string
	Sheet     string
	Lesson    string
	Mode      Mode
	Count     int
	NoRepeat  bool
	RangeFrom int
	RangeTo   int
}

// Range is a resolved 1-indexed inclusive interval over a lesson's rows.
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Len returns the number of rows covered by the range.
func (r Range) Len() int {
	if r.From < 1 || r.To < r.From {
		return 0
	}
	return r.To - r.From + 1
}

// AnswerResult is the outcome of grading one submitted answer.
type AnswerResult struct {
	Given    string `json:"given"`
	Expected string `json:"expected"`
	Correct  bool   `json:"correct"`
}

// QuizSession holds the questions of one quiz run together with the cursor,
// the score and the lock that prevents double scoring.
type QuizSession struct {
	ID          string
	Params      QuizParams
	Questions   []Question
	Index       int  // current question, len(Questions) when finished
	Score       int  // number of correct answers so far
	Locked      bool // an answer was submitted for the current question
	Range       Range
	LessonTotal int
	LastResult  *AnswerResult
	StartedAt   time.Time
	FinishedAt  *time.Time
}

// NewQuizSession creates a session positioned at the first question.
func NewQuizSession(id string, params QuizParams, questions []Question, bounds Range, lessonTotal int, startedAt time.Time) *QuizSession {
	return &QuizSession{
		ID:          id,
		Params:      params,
		Questions:   questions,
		Range:       bounds,
		LessonTotal: lessonTotal,
		StartedAt:   startedAt,
	}
}

// State returns the current state of the session.
func (s *QuizSession) State() SessionState {
	switch {
	case s.Index >= len(s.Questions):
		return StateFinished
	case s.Locked:
		return StateLocked
	default:
		return StateAwaitingAnswer
	}
}

// Total returns the number of questions in the session.
func (s *QuizSession) Total() int {
	return len(s.Questions)
}

// Current returns the current question, or false once the session is finished.
func (s *QuizSession) Current() (*Question, bool) {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return nil, false
	}
	return &s.Questions[s.Index], true
}

// SubmitAnswer grades input against the current question and locks it.
// It is a no-op returning false unless the session awaits an answer.
func (s *QuizSession) SubmitAnswer(input string) (AnswerResult, bool) {
	if s.State() != StateAwaitingAnswer {
		return AnswerResult{}, false
	}

	q := &s.Questions[s.Index]
	res := AnswerResult{
		Given:    input,
		Expected: q.Correct,
		Correct:  q.Accepts(input),
	}
	if res.Correct {
		s.Score++
	}
	s.Locked = true
	s.LastResult = &res

	return res, true
}

// SubmitOption answers a multiple choice question by option index.
// An index outside the option list is graded as a wrong answer.
func (s *QuizSession) SubmitOption(index int) (AnswerResult, bool) {
	q, ok := s.Current()
	if !ok {
		return AnswerResult{}, false
	}

	var input string
	if index >= 0 && index < len(q.Options) {
		input = q.Options[index]
	}
	return s.SubmitAnswer(input)
}

// Advance moves past a locked question. It returns false (no-op) unless the
// session is locked. Advancing past the last question finishes the session.
func (s *QuizSession) Advance(now time.Time) bool {
	if s.State() != StateLocked {
		return false
	}

	s.Index++
	s.Locked = false
	s.LastResult = nil
	if s.Index >= len(s.Questions) {
		s.Index = len(s.Questions)
		s.FinishedAt = &now
	}

	return true
}

// IsFinished reports whether every question has been answered and advanced past.
func (s *QuizSession) IsFinished() bool {
	return s.State() == StateFinished
}

// Elapsed returns the time spent in the session, up to now while it is running.
func (s *QuizSession) Elapsed(now time.Time) time.Duration {
	end := now
	if s.FinishedAt != nil {
		end = *s.FinishedAt
	}
	if end.Before(s.StartedAt) {
		return 0
	}
	return end.Sub(s.StartedAt)
}

// Summary builds the end-of-session score record.
func (s *QuizSession) Summary(now time.Time) *ScoreRecord {
	ts := now
	if s.FinishedAt != nil {
		ts = *s.FinishedAt
	}
	return &ScoreRecord{
		UserName:       s.Params.UserName,
		Score:          s.Score,
		Total:          len(s.Questions),
		ElapsedSeconds: int(s.Elapsed(now) / time.Second),
		Timestamp:      ts,
		Sheet:          s.Params.Sheet,
		Lesson:         s.Params.Lesson,
		Mode:           s.Params.Mode,
		Range:          s.Range,
	}
}
