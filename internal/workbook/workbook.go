// Package workbook abstracts the spreadsheet a registration import reads
// from. Sheets are 2-D grids of string cells with a header row at row 1 and
// data from row 2; rows and columns are 1-based throughout.
package workbook

// Workbook exposes named sheets of one uploaded file.
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (Sheet, bool)
}

// Sheet is an opaque read-only grid. Cell returns "" for any coordinate
// outside the populated range.
type Sheet interface {
	Name() string
	RowCount() int
	ColumnCount() int
	Cell(row, col int) string
}

// MapSheet is an in-memory Sheet used by tests and fixtures.
type MapSheet struct {
	SheetName string
	Grid      [][]string
}

// Name returns the sheet name.
func (s *MapSheet) Name() string { return s.SheetName }

// RowCount returns the number of populated rows.
func (s *MapSheet) RowCount() int { return len(s.Grid) }

// ColumnCount returns the width of the widest populated row.
func (s *MapSheet) ColumnCount() int {
	width := 0
	for _, row := range s.Grid {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Cell returns the 1-based cell value, or "" when out of range.
func (s *MapSheet) Cell(row, col int) string {
	if row < 1 || row > len(s.Grid) {
		return ""
	}
	r := s.Grid[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}

// MapWorkbook is an in-memory Workbook keyed by sheet name, preserving the
// order sheets were added in.
type MapWorkbook struct {
	order  []string
	sheets map[string]*MapSheet
}

// NewMapWorkbook builds an empty in-memory workbook.
func NewMapWorkbook() *MapWorkbook {
	return &MapWorkbook{sheets: make(map[string]*MapSheet)}
}

// AddSheet registers a sheet from raw rows and returns the workbook for chaining.
func (w *MapWorkbook) AddSheet(name string, rows [][]string) *MapWorkbook {
	if _, exists := w.sheets[name]; !exists {
		w.order = append(w.order, name)
	}
	w.sheets[name] = &MapSheet{SheetName: name, Grid: rows}
	return w
}

// SheetNames lists sheets in insertion order.
func (w *MapWorkbook) SheetNames() []string {
	names := make([]string, len(w.order))
	copy(names, w.order)
	return names
}

// Sheet looks up a sheet by exact name.
func (w *MapWorkbook) Sheet(name string) (Sheet, bool) {
	s, ok := w.sheets[name]
	if !ok {
		return nil, false
	}
	return s, true
}
