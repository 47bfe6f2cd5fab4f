package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelWorkbook adapts an .xlsx file to the Workbook interface. All cell
// values are materialised once per sheet on first access so row lookups
// during aggregation stay O(1).
type ExcelWorkbook struct {
	file   *excelize.File
	cached map[string]*MapSheet
}

// OpenWorkbook reads an .xlsx file from disk.
func OpenWorkbook(path string) (*ExcelWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &ExcelWorkbook{file: f, cached: make(map[string]*MapSheet)}, nil
}

// NewWorkbookFromReader reads an .xlsx stream, typically a multipart upload.
func NewWorkbookFromReader(r io.Reader) (*ExcelWorkbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	return &ExcelWorkbook{file: f, cached: make(map[string]*MapSheet)}, nil
}

// Close releases the underlying file handle.
func (w *ExcelWorkbook) Close() error {
	return w.file.Close()
}

// SheetNames lists the workbook's sheets in file order.
func (w *ExcelWorkbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet returns the named sheet, loading its cells on first access.
func (w *ExcelWorkbook) Sheet(name string) (Sheet, bool) {
	if s, ok := w.cached[name]; ok {
		return s, true
	}
	idx, err := w.file.GetSheetIndex(name)
	if err != nil || idx == -1 {
		return nil, false
	}
	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, false
	}
	s := &MapSheet{SheetName: name, Grid: rows}
	w.cached[name] = s
	return s, true
}
