package workbook

import "strings"

// ColumnResolver maps header names to column indices for one sheet. All
// matching is computed once at construction over the header row; data-row
// lookups after that are map hits.
type ColumnResolver struct {
	sheet   Sheet
	exact   map[string]int
	headers []headerCell
}

type headerCell struct {
	value string
	col   int
}

// NewColumnResolver scans the header row (row 1) of the sheet. Whitespace-only
// headers are excluded from consideration; matching is ordinal and
// case-sensitive.
func NewColumnResolver(sheet Sheet) *ColumnResolver {
	r := &ColumnResolver{
		sheet: sheet,
		exact: make(map[string]int),
	}
	for col := 1; col <= sheet.ColumnCount(); col++ {
		value := sheet.Cell(1, col)
		if strings.TrimSpace(value) == "" {
			continue
		}
		r.headers = append(r.headers, headerCell{value: value, col: col})
		if _, seen := r.exact[value]; !seen {
			r.exact[value] = col
		}
	}
	return r
}

// IndexOf returns the 1-based column whose header equals name exactly.
func (r *ColumnResolver) IndexOf(header string) (int, bool) {
	col, ok := r.exact[header]
	return col, ok
}

// IndexOfPattern returns the first column (left to right) whose header
// contains substr. Used for year-prefixed headers such as
// "2024WinterAdventureClassRegist_Id" matched by "ClassRegist_Id".
func (r *ColumnResolver) IndexOfPattern(substr string) (int, bool) {
	for _, h := range r.headers {
		if strings.Contains(h.value, substr) {
			return h.col, true
		}
	}
	return 0, false
}

// CellValue reads a data cell under the exactly named header. Returns false,
// not an error, when the header is unresolved or the cell is blank.
func (r *ColumnResolver) CellValue(row int, header string) (string, bool) {
	col, ok := r.IndexOf(header)
	if !ok {
		return "", false
	}
	return r.cellAt(row, col)
}

// CellValueByPattern reads a data cell under the first header containing substr.
func (r *ColumnResolver) CellValueByPattern(row int, substr string) (string, bool) {
	col, ok := r.IndexOfPattern(substr)
	if !ok {
		return "", false
	}
	return r.cellAt(row, col)
}

func (r *ColumnResolver) cellAt(row, col int) (string, bool) {
	value := r.sheet.Cell(row, col)
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// ColumnRef names a column either by its literal header or by a substring
// pattern for headers that carry an unstable prefix. When both are set the
// exact name wins and the pattern is the fallback.
type ColumnRef struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
}

// Resolve returns the column index for the reference on the given resolver.
func (c ColumnRef) Resolve(r *ColumnResolver) (int, bool) {
	if c.Name != "" {
		if col, ok := r.IndexOf(c.Name); ok {
			return col, true
		}
	}
	if c.Pattern != "" {
		return r.IndexOfPattern(c.Pattern)
	}
	return 0, false
}

// Value reads a data cell through the reference, empty/blank cells excluded.
func (c ColumnRef) Value(r *ColumnResolver, row int) (string, bool) {
	col, ok := c.Resolve(r)
	if !ok {
		return "", false
	}
	return r.cellAt(row, col)
}
