// Package workbook reads Excel table objects and defined names out of the
// planning and timecard workbooks.
package workbook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrTableNotFound  = errors.New("table not found")
	ErrNameNotFound   = errors.New("defined name not found")
	ErrColumnNotFound = errors.New("column not found")
)

// Workbook wraps an opened excelize file.
type Workbook struct {
	file *excelize.File
}

// Open opens the workbook at path. The caller must Close it.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &Workbook{file: f}, nil
}

// New wraps an already opened file.
func New(f *excelize.File) *Workbook {
	return &Workbook{file: f}
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

// Table is the content of an Excel table object. Columns come from the
// header row; Rows hold raw cell values, one slice per data row, padded to
// the width of the header.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Index returns the position of column, or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Require returns the positions of columns, failing on the first missing one.
func (t *Table) Require(columns ...string) (map[string]int, error) {
	idx := make(map[string]int, len(columns))
	for _, c := range columns {
		i := t.Index(c)
		if i < 0 {
			return nil, fmt.Errorf("table %s: %q: %w", t.Name, c, ErrColumnNotFound)
		}
		idx[c] = i
	}
	return idx, nil
}

// Table reads the table object called name from sheet.
func (w *Workbook) Table(sheet, name string) (*Table, error) {
	if idx, err := w.file.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("table %q: sheet %q missing: %w", name, sheet, ErrTableNotFound)
	}
	tables, err := w.file.GetTables(sheet)
	if err != nil {
		return nil, fmt.Errorf("listing tables of sheet %q: %w", sheet, err)
	}
	var ref string
	for _, t := range tables {
		if t.Name == name {
			ref = t.Range
			break
		}
	}
	if ref == "" {
		return nil, fmt.Errorf("table %q on sheet %q: %w", name, sheet, ErrTableNotFound)
	}

	firstCol, firstRow, lastCol, lastRow, err := parseRange(ref)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", name, err)
	}

	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	width := lastCol - firstCol + 1
	slice := func(r int) []string {
		out := make([]string, width)
		if r-1 >= len(rows) {
			return out
		}
		row := rows[r-1]
		for c := firstCol; c <= lastCol; c++ {
			if c-1 < len(row) {
				out[c-firstCol] = strings.TrimSpace(row[c-1])
			}
		}
		return out
	}

	t := &Table{Name: name, Columns: slice(firstRow)}
	for r := firstRow + 1; r <= lastRow; r++ {
		t.Rows = append(t.Rows, slice(r))
	}
	return t, nil
}

// NamedValue returns the value of the cell a workbook-level defined name
// points at, e.g. PlannerName -> 'План CW'!$C$2.
func (w *Workbook) NamedValue(name string) (string, error) {
	for _, dn := range w.file.GetDefinedName() {
		if dn.Name != name {
			continue
		}
		sheet, cell, err := splitReference(dn.RefersTo)
		if err != nil {
			return "", fmt.Errorf("defined name %q: %w", name, err)
		}
		v, err := w.file.GetCellValue(sheet, cell)
		if err != nil {
			return "", fmt.Errorf("reading %s!%s: %w", sheet, cell, err)
		}
		return strings.TrimSpace(v), nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrNameNotFound)
}

// splitReference splits "'Sheet name'!$B$2" into sheet and cell.
func splitReference(ref string) (string, string, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")
	i := strings.LastIndex(ref, "!")
	if i <= 0 || i == len(ref)-1 {
		return "", "", fmt.Errorf("malformed reference %q", ref)
	}
	sheet := strings.Trim(ref[:i], "'")
	cell := strings.ReplaceAll(ref[i+1:], "$", "")
	if strings.Contains(cell, ":") {
		cell = cell[:strings.Index(cell, ":")]
	}
	return sheet, cell, nil
}

func parseRange(ref string) (firstCol, firstRow, lastCol, lastRow int, err error) {
	parts := strings.Split(strings.ReplaceAll(ref, "$", ""), ":")
	if len(parts) != 2 {
		return 0, 0, 0, 0, fmt.Errorf("malformed range %q", ref)
	}
	if firstCol, firstRow, err = excelize.CellNameToCoordinates(parts[0]); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("range start %q: %w", parts[0], err)
	}
	if lastCol, lastRow, err = excelize.CellNameToCoordinates(parts[1]); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("range end %q: %w", parts[1], err)
	}
	return firstCol, firstRow, lastCol, lastRow, nil
}
