package service

import (
	"fmt"

	"github.com/alexanderramin/planfact/internal/calendar"
	"github.com/alexanderramin/planfact/internal/workbook"
)

// Reference is the data shared by every file of a run: the budget calendar
// and the list of known employees.
type Reference struct {
	Calendar  *calendar.Calendar
	Employees []string
}

// LoadReference reads the calendar and mappings workbooks.
func LoadReference(calendarPath, mappingsPath string) (*Reference, error) {
	cal, err := readWorkbook(calendarPath, (*workbook.Workbook).CalendarDays)
	if err != nil {
		return nil, fmt.Errorf("loading calendar: %w", err)
	}
	employees, err := readWorkbook(mappingsPath, (*workbook.Workbook).Employees)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}
	return &Reference{Calendar: calendar.New(cal), Employees: employees}, nil
}

func readWorkbook[T any](path string, read func(*workbook.Workbook) (T, error)) (T, error) {
	var zero T
	wb, err := workbook.Open(path)
	if err != nil {
		return zero, err
	}
	defer wb.Close()
	v, err := read(wb)
	if err != nil {
		return zero, err
	}
	return v, nil
}
