package entities

// VocabRow is a single lesson/English/Hungarian triple read from a workbook.
// Duplicates are allowed and treated as independent rows.
type VocabRow struct {
	Lesson string `json:"lesson"`
	EN     string `json:"en"`
	HU     string `json:"hu"`
}

// Sheet is a named group of vocabulary rows (one worksheet of the workbook).
type Sheet struct {
	Name string
	Rows []VocabRow
}

// LessonRows returns the rows of the given lesson in sheet order.
func (s *Sheet) LessonRows(lesson string) []VocabRow {
	var out []VocabRow
	for _, r := range s.Rows {
		if r.Lesson == lesson {
			out = append(out, r)
		}
	}
	return out
}
