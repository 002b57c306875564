package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

func testSheets() []entities.Sheet {
	return []entities.Sheet{
		{Name: "5", Rows: []entities.VocabRow{
			{Lesson: "Lecke 10", EN: "apple", HU: "alma"},
			{Lesson: "Lecke 2", EN: "cat", HU: "macska"},
			{Lesson: "Lecke 2", EN: "dog", HU: "kutya"},
			{Lesson: "Ábécé", EN: "a", HU: "á"},
			{Lesson: "Cukor", EN: "sugar", HU: "cukor"},
			{Lesson: "Csiga", EN: "snail", HU: "csiga"},
		}},
		{Name: "6"},
	}
}

func TestVocabRepository_Sheets(t *testing.T) {
	t.Parallel()

	repo := NewVocabRepositoryFromSheets(testSheets())
	assert.Equal(t, []string{"5", "6"}, repo.Sheets())
}

func TestVocabRepository_Lessons(t *testing.T) {
	t.Parallel()

	repo := NewVocabRepositoryFromSheets(testSheets())

	lessons, err := repo.Lessons("5")
	require.NoError(t, err)
	// Hungarian collation: "Cs" is a letter after "C"; numbers compare numerically.
	assert.Equal(t, []string{"Ábécé", "Cukor", "Csiga", "Lecke 10", "Lecke 2"}, lessons)

	lessons, err = repo.Lessons("6")
	require.NoError(t, err)
	assert.Empty(t, lessons)

	_, err = repo.Lessons("7")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestVocabRepository_Rows(t *testing.T) {
	t.Parallel()

	repo := NewVocabRepositoryFromSheets(testSheets())

	rows, err := repo.LessonRows("5", "Lecke 2")
	require.NoError(t, err)
	assert.Equal(t, []entities.VocabRow{
		{Lesson: "Lecke 2", EN: "cat", HU: "macska"},
		{Lesson: "Lecke 2", EN: "dog", HU: "kutya"},
	}, rows)

	rows, err = repo.LessonRows("5", "nincs")
	require.NoError(t, err)
	assert.Empty(t, rows)

	all, err := repo.SheetRows("5")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	_, err = repo.SheetRows("x")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestNewVocabRepository_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewVocabRepository(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
