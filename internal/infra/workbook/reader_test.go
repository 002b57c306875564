package workbook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

func TestParseRows_SkipsHeaderAndIncompleteRows(t *testing.T) {
	t.Parallel()

	records := [][]string{
		{"lecke", "en", "hu"},
		{"", "cat", "macska"},
		{"L1", "dog", "kutya"},
		{"L1", " bird ", "  madár"},
		{"L2", "fish"},
		{"L2", "   ", "hal"},
	}

	got := ParseRows(records)
	assert.Equal(t, []entities.VocabRow{
		{Lesson: "L1", EN: "dog", HU: "kutya"},
		{Lesson: "L1", EN: "bird", HU: "madár"},
	}, got)
}

func TestParseRows_NoHeader(t *testing.T) {
	t.Parallel()

	got := ParseRows([][]string{{"L1", "cat", "macska"}, {"L1", "cat", "macska"}})
	require.Len(t, got, 2, "duplicates are independent rows")
}

func TestParseRows_HeaderKeywords(t *testing.T) {
	t.Parallel()

	for _, h := range [][]string{
		{"Lesson", "English", "Hungarian"},
		{"LECKE", "angol", "magyar"},
		{" ", "English ", ""},
	} {
		got := ParseRows([][]string{h, {"L1", "cat", "macska"}})
		assert.Len(t, got, 1, "header %v", h)
	}
}

func TestParseRows_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ParseRows(nil))
}

func TestReadCSV(t *testing.T) {
	t.Parallel()

	in := "\ufefflecke,angol,magyar\nL1,cat,macska\nL1,\"dog, big\",kutya\n,x,y\n"
	sheets, err := ReadCSV(strings.NewReader(in), "5")
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, "5", sheets[0].Name)
	assert.Equal(t, []entities.VocabRow{
		{Lesson: "L1", EN: "cat", HU: "macska"},
		{Lesson: "L1", EN: "dog, big", HU: "kutya"},
	}, sheets[0].Rows)
}

func writeXLSX(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	require.NoError(t, f.SetSheetName("Sheet1", "5. évfolyam"))
	rows := [][]any{
		{"Lecke", "English", "Magyar"},
		{"L1", "cat", "macska"},
		{"L1", "dog", "kutya"},
		{"L2", "apple", "alma"},
	}
	for i, r := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("5. évfolyam", addr, &r))
	}

	_, err := f.NewSheet("6. évfolyam")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("6. évfolyam", "A1", &[]any{"L9", "house", "ház"}))

	_, err = f.NewSheet("üres")
	require.NoError(t, err)

	path := filepath.Join(dir, "szavak.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadFile_XLSX(t *testing.T) {
	t.Parallel()

	path := writeXLSX(t, t.TempDir())

	sheets, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, sheets, 3)

	assert.Equal(t, "5. évfolyam", sheets[0].Name)
	assert.Len(t, sheets[0].Rows, 3)
	assert.Equal(t, "6. évfolyam", sheets[1].Name)
	assert.Equal(t, []entities.VocabRow{{Lesson: "L9", EN: "house", HU: "ház"}}, sheets[1].Rows)
	assert.Equal(t, "üres", sheets[2].Name)
	assert.Empty(t, sheets[2].Rows)
}

func TestReadFile_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("L1,cat,macska\n"), 0o600))

	sheets, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, "words", sheets[0].Name)
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	_, err = ReadFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
