package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/repository"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

var (
	ErrSessionNotFound = storage.ErrSessionNotFound
	ErrUnknownSheet    = repository.ErrSheetNotFound
	ErrUnknownLesson   = errors.New("lesson not found")
)

// DefaultCount is the number of questions used when the caller asks for none.
const DefaultCount = 10

// QuizService runs quiz sessions: it builds questions from the row store,
// keeps the session state and records the result when a session finishes.
type QuizService struct {
	vocab    VocabRepository
	sessions SessionStorage
	scores   ScoreRecorder
	builder  *QuestionBuilder
	logger   *zap.Logger

	defaultCount int
	now          func() time.Time
	newID        func() string
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	vocab VocabRepository,
	sessions SessionStorage,
	scores ScoreRecorder,
	builder *QuestionBuilder,
	logger *zap.Logger,
	defaultCount int,
) *QuizService {
	if defaultCount <= 0 {
		defaultCount = DefaultCount
	}
	return &QuizService{
		vocab:        vocab,
		sessions:     sessions,
		scores:       scores,
		builder:      builder,
		logger:       logger,
		defaultCount: defaultCount,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Sheets returns the sheet names in workbook order.
func (s *QuizService) Sheets(_ context.Context) []string {
	return s.vocab.Sheets()
}

// Lessons returns the distinct lessons of a sheet in Hungarian alphabetical order.
func (s *QuizService) Lessons(_ context.Context, sheet string) ([]string, error) {
	lessons, err := s.vocab.Lessons(sheet)
	if err != nil {
		return nil, fmt.Errorf("get lessons: %w", err)
	}
	return lessons, nil
}

// Start builds a new session from params and stores it. The returned
// BuildInfo carries the resolved range and, through Warning, the shortfall
// of a no-repeat quiz.
func (s *QuizService) Start(ctx context.Context, params entities.QuizParams) (*entities.QuizSession, BuildInfo, error) {
	params.UserName = entities.NormalizeUserName(params.UserName)
	if params.Count <= 0 {
		params.Count = s.defaultCount
	}

	sheetRows, err := s.vocab.SheetRows(params.Sheet)
	if err != nil {
		return nil, BuildInfo{}, fmt.Errorf("get sheet rows: %w", err)
	}
	lessonRows, err := s.vocab.LessonRows(params.Sheet, params.Lesson)
	if err != nil {
		return nil, BuildInfo{}, fmt.Errorf("get lesson rows: %w", err)
	}
	if len(lessonRows) == 0 {
		return nil, BuildInfo{}, fmt.Errorf("%w: %w: %q", ErrNoData, ErrUnknownLesson, params.Lesson)
	}

	questions, info, err := s.builder.Build(lessonRows, sheetRows, BuildParams{
		Mode:      params.Mode,
		Count:     params.Count,
		NoRepeat:  params.NoRepeat,
		RangeFrom: params.RangeFrom,
		RangeTo:   params.RangeTo,
	})
	if err != nil {
		return nil, info, fmt.Errorf("build questions: %w", err)
	}
	params.Count = info.Requested

	session := entities.NewQuizSession(s.newID(), params, questions, info.Range, info.LessonTotal, s.now())
	s.sessions.Store(session)

	if warn := info.Warning(); warn != nil {
		s.logger.Warn("quiz started with fewer questions than requested",
			zap.String("session_id", session.ID),
			zap.Int("requested", info.Requested),
			zap.Int("shortfall", info.Shortfall),
			zap.Error(warn),
		)
	}

	s.logger.Info("quiz started",
		zap.String("session_id", session.ID),
		zap.String("user", params.UserName),
		zap.String("sheet", params.Sheet),
		zap.String("lesson", params.Lesson),
		zap.String("mode", string(params.Mode)),
		zap.Int("questions", session.Total()),
	)

	return session, info, nil
}

// Get returns a snapshot of a session.
func (s *QuizService) Get(_ context.Context, id string) (*entities.QuizSession, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// Answer grades a typed (or option text) answer. accepted is false when the
// session was not awaiting an answer and nothing changed.
func (s *QuizService) Answer(_ context.Context, id, input string) (session *entities.QuizSession, accepted bool, err error) {
	session, err = s.sessions.Update(id, func(q *entities.QuizSession) error {
		_, accepted = q.SubmitAnswer(input)
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("answer: %w", err)
	}
	return session, accepted, nil
}

// AnswerOption grades a multiple choice answer given by option index.
func (s *QuizService) AnswerOption(_ context.Context, id string, index int) (session *entities.QuizSession, accepted bool, err error) {
	session, err = s.sessions.Update(id, func(q *entities.QuizSession) error {
		_, accepted = q.SubmitOption(index)
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("answer option: %w", err)
	}
	return session, accepted, nil
}

// Advance moves past the locked current question. When this finishes the
// session its summary is recorded and returned; a ledger failure is logged
// and does not fail the call.
func (s *QuizService) Advance(ctx context.Context, id string) (*entities.QuizSession, *entities.ScoreRecord, error) {
	var finished bool
	session, err := s.sessions.Update(id, func(q *entities.QuizSession) error {
		if q.Advance(s.now()) {
			finished = q.IsFinished()
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("advance: %w", err)
	}
	if !finished {
		return session, nil, nil
	}

	summary := session.Summary(s.now())
	if err := s.scores.Save(ctx, summary); err != nil {
		s.logger.Error("failed to save score",
			zap.String("session_id", id),
			zap.String("user", summary.UserName),
			zap.Error(err),
		)
	}

	s.logger.Info("quiz finished",
		zap.String("session_id", id),
		zap.String("user", summary.UserName),
		zap.Int("score", summary.Score),
		zap.Int("total", summary.Total),
		zap.Int("elapsed_seconds", summary.ElapsedSeconds),
	)

	return session, summary, nil
}

// Restart discards a session and starts a new one with the same parameters.
func (s *QuizService) Restart(ctx context.Context, id string) (*entities.QuizSession, BuildInfo, error) {
	old, err := s.sessions.Get(id)
	if err != nil {
		return nil, BuildInfo{}, fmt.Errorf("restart: %w", err)
	}
	s.sessions.Delete(id)

	return s.Start(ctx, old.Params)
}

// Delete drops a session.
func (s *QuizService) Delete(_ context.Context, id string) {
	s.sessions.Delete(id)
}
