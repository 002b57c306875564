// Package workbook reads vocabulary workbooks (.xlsx or .csv) into sheets of
// lesson/English/Hungarian rows.
package workbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// headerKeywords mark the first row as a header when any of its cells matches.
var headerKeywords = map[string]struct{}{
	"lecke":     {},
	"lesson":    {},
	"english":   {},
	"angol":     {},
	"magyar":    {},
	"hungarian": {},
}

// ReadFile loads every sheet of the workbook at path.
func ReadFile(path string) ([]entities.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(f)
	case ".csv":
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return ReadCSV(f, name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadXLSX parses an Excel workbook. Sheets keep the workbook order.
func ReadXLSX(r io.Reader) ([]entities.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	sheets := make([]entities.Sheet, 0, len(names))
	for _, name := range names {
		records, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets = append(sheets, entities.Sheet{Name: name, Rows: ParseRows(records)})
	}

	return sheets, nil
}

// ReadCSV parses a single-sheet CSV export.
func ReadCSV(r io.Reader, sheetName string) ([]entities.Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable column count

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}

	return []entities.Sheet{{Name: sheetName, Rows: ParseRows(records)}}, nil
}

// ParseRows converts raw records into vocabulary rows. Columns A, B and C are
// lesson, English and Hungarian. A header row is detected and skipped, and
// rows with any of the three fields empty after trimming are dropped.
func ParseRows(records [][]string) []entities.VocabRow {
	start := 0
	if len(records) > 0 && isHeader(records[0]) {
		start = 1
	}

	out := make([]entities.VocabRow, 0, len(records)-start)
	for _, rec := range records[start:] {
		lesson, en, hu := cell(rec, 0), cell(rec, 1), cell(rec, 2)
		if lesson == "" || en == "" || hu == "" {
			continue
		}
		out = append(out, entities.VocabRow{Lesson: lesson, EN: en, HU: hu})
	}

	return out
}

func isHeader(rec []string) bool {
	for _, c := range rec {
		if _, ok := headerKeywords[strings.ToLower(strings.TrimSpace(c))]; ok {
			return true
		}
	}
	return false
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
