package service

import (
	"errors"
	"fmt"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/sampler"
)

var (
	// ErrNoData means there are no usable rows for the selection.
	ErrNoData = errors.New("no data for the selected lesson or range")
	// ErrInsufficientPool is the non-fatal warning raised when a no-repeat quiz
	// asks for more questions than there are rows.
	ErrInsufficientPool = errors.New("not enough words for the requested count")
)

// BuildParams describe which questions to generate.
type BuildParams struct {
	Mode      entities.Mode
	Count     int
	NoRepeat  bool
	RangeFrom int // 1-indexed, clamped
	RangeTo   int // 1-indexed, clamped; 0 means the last row
}

// BuildInfo reports how the parameters were resolved.
type BuildInfo struct {
	Range       entities.Range
	LessonTotal int
	Requested   int
	Shortfall   int // questions that could not be produced because of NoRepeat
}

// Warning returns ErrInsufficientPool when fewer questions than requested were built.
func (i BuildInfo) Warning() error {
	if i.Shortfall <= 0 {
		return nil
	}
	return fmt.Errorf("%w: requested %d, available %d", ErrInsufficientPool, i.Requested, i.Requested-i.Shortfall)
}

// QuestionBuilder turns the rows of a lesson into a sequence of questions.
type QuestionBuilder struct {
	rng       sampler.Rand
	options   *OptionGenerator
	validator *AnswerValidator
	maxCount  int
}

// NewQuestionBuilder creates a builder. maxCount caps the requested count; zero disables the cap.
func NewQuestionBuilder(rng sampler.Rand, maxCount int) *QuestionBuilder {
	return &QuestionBuilder{
		rng:       rng,
		options:   NewOptionGenerator(rng),
		validator: NewAnswerValidator(),
		maxCount:  maxCount,
	}
}

// ResolveRange clamps from/to into [1,total] and orders them.
// A zero to selects the last row.
func ResolveRange(total, from, to int) entities.Range {
	if total <= 0 {
		return entities.Range{}
	}
	if to == 0 {
		to = total
	}
	from, to = clamp(from, 1, total), clamp(to, 1, total)
	return entities.Range{From: min(from, to), To: max(from, to)}
}

// Build generates questions from lessonRows. sheetRows is the fallback pool
// for distractors when the lesson itself has too few distinct terms.
func (b *QuestionBuilder) Build(lessonRows, sheetRows []entities.VocabRow, p BuildParams) ([]entities.Question, BuildInfo, error) {
	count := max(p.Count, 1)
	if b.maxCount > 0 {
		count = min(count, b.maxCount)
	}

	info := BuildInfo{
		Range:       ResolveRange(len(lessonRows), p.RangeFrom, p.RangeTo),
		LessonTotal: len(lessonRows),
		Requested:   count,
	}

	if p.Mode != entities.ModeRandomMix && !isConcrete(p.Mode) {
		return nil, info, fmt.Errorf("%w: %q", entities.ErrUnknownMode, p.Mode)
	}

	if info.Range.Len() == 0 {
		return nil, info, ErrNoData
	}
	pool := lessonRows[info.Range.From-1 : info.Range.To]

	picked := b.pick(pool, count, p.NoRepeat)
	info.Shortfall = count - len(picked)

	terms := newTermPools(pool, sheetRows)
	questions := make([]entities.Question, 0, len(picked))
	for _, row := range picked {
		mode := p.Mode
		if mode == entities.ModeRandomMix {
			mode = sampler.Pick(b.rng, entities.ConcreteModes)
		}
		questions = append(questions, b.question(mode, row, terms))
	}

	return questions, info, nil
}

// pick samples count rows from pool. Without repetition at most len(pool)
// rows are returned; otherwise the shuffled pool is cycled.
func (b *QuestionBuilder) pick(pool []entities.VocabRow, count int, noRepeat bool) []entities.VocabRow {
	shuffled := sampler.Shuffle(b.rng, pool)

	if noRepeat {
		return shuffled[:min(count, len(shuffled))]
	}

	picked := make([]entities.VocabRow, 0, count)
	for len(picked) < count {
		picked = append(picked, shuffled[len(picked)%len(shuffled)])
	}
	return picked
}

func (b *QuestionBuilder) question(mode entities.Mode, row entities.VocabRow, terms termPools) entities.Question {
	switch mode {
	case entities.ModeChooseEN:
		options := b.options.Generate(row.EN, terms.rangeEN, terms.sheetEN)
		return entities.NewChoiceQuestion(mode, row.HU, row.EN, options)
	case entities.ModeChooseHU:
		options := b.options.Generate(row.HU, terms.rangeHU, terms.sheetHU)
		return entities.NewChoiceQuestion(mode, row.EN, row.HU, options)
	default:
		return entities.NewTypedQuestion(row.HU, row.EN, b.validator.Acceptor(row.EN))
	}
}

type termPools struct {
	rangeEN, rangeHU []string
	sheetEN, sheetHU []string
}

func newTermPools(rangeRows, sheetRows []entities.VocabRow) termPools {
	var t termPools
	for _, r := range rangeRows {
		t.rangeEN = append(t.rangeEN, r.EN)
		t.rangeHU = append(t.rangeHU, r.HU)
	}
	for _, r := range sheetRows {
		t.sheetEN = append(t.sheetEN, r.EN)
		t.sheetHU = append(t.sheetHU, r.HU)
	}
	return t
}

func isConcrete(m entities.Mode) bool {
	for _, c := range entities.ConcreteModes {
		if m == c {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
