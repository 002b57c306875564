package repository

import (
	"errors"
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/workbook"
	"github.com/aliskhannn/vocab-quiz/internal/sampler"
)

var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrEmptyWorkbook = errors.New("workbook has no sheets")
)

// VocabRepository is the in-memory row store of a loaded workbook.
// It is read-only after construction and safe for concurrent use.
type VocabRepository struct {
	sheets []entities.Sheet
	byName map[string]int
}

// NewVocabRepository loads the workbook at path.
func NewVocabRepository(path string) (*VocabRepository, error) {
	sheets, err := workbook.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load workbook %s: %w", path, err)
	}
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	return NewVocabRepositoryFromSheets(sheets), nil
}

// NewVocabRepositoryFromSheets builds a row store from already parsed sheets.
func NewVocabRepositoryFromSheets(sheets []entities.Sheet) *VocabRepository {
	byName := make(map[string]int, len(sheets))
	for i, s := range sheets {
		byName[s.Name] = i
	}

	return &VocabRepository{
		sheets: sheets,
		byName: byName,
	}
}

// Sheets returns sheet names in workbook order.
func (r *VocabRepository) Sheets() []string {
	out := make([]string, 0, len(r.sheets))
	for _, s := range r.sheets {
		out = append(out, s.Name)
	}
	return out
}

// SheetRows returns every row of a sheet.
func (r *VocabRepository) SheetRows(sheet string) ([]entities.VocabRow, error) {
	s, err := r.sheet(sheet)
	if err != nil {
		return nil, err
	}
	return s.Rows, nil
}

// LessonRows returns the rows of one lesson in sheet order.
// An unknown lesson yields an empty slice.
func (r *VocabRepository) LessonRows(sheet, lesson string) ([]entities.VocabRow, error) {
	s, err := r.sheet(sheet)
	if err != nil {
		return nil, err
	}
	return s.LessonRows(lesson), nil
}

// Lessons returns the distinct lessons of a sheet sorted with Hungarian collation.
func (r *VocabRepository) Lessons(sheet string) ([]string, error) {
	s, err := r.sheet(sheet)
	if err != nil {
		return nil, err
	}

	lessons := make([]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		lessons = append(lessons, row.Lesson)
	}
	lessons = sampler.Unique(lessons)

	// Digits compare one at a time, so "Lecke 10" sorts before "Lecke 2".
	collate.New(language.Hungarian).SortStrings(lessons)

	return lessons, nil
}

func (r *VocabRepository) sheet(name string) (*entities.Sheet, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return &r.sheets[i], nil
}
