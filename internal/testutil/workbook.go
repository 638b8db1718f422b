package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/planfact/internal/config"
	"github.com/alexanderramin/planfact/internal/workbook"
	"github.com/xuri/excelize/v2"
)

// tablesStartRow leaves the first rows of every sheet free for named cells.
const tablesStartRow = 4

// WorkbookBuilder assembles a workbook with table objects and defined names
// the way the planning templates lay them out.
type WorkbookBuilder struct {
	t    testing.TB
	f    *excelize.File
	next map[string]int
}

func NewWorkbook(t testing.TB) *WorkbookBuilder {
	t.Helper()
	return &WorkbookBuilder{t: t, f: excelize.NewFile(), next: map[string]int{}}
}

func (b *WorkbookBuilder) sheet(name string) {
	b.t.Helper()
	if _, ok := b.next[name]; ok {
		return
	}
	if _, err := b.f.NewSheet(name); err != nil {
		b.t.Fatalf("creating sheet %q: %v", name, err)
	}
	b.next[name] = tablesStartRow
}

// Table writes header and rows to sheet and registers them as a table
// object. A table without rows gets one blank data row.
func (b *WorkbookBuilder) Table(sheet, name string, header []string, rows ...[]any) *WorkbookBuilder {
	b.t.Helper()
	b.sheet(sheet)
	if len(rows) == 0 {
		rows = [][]any{make([]any, len(header))}
	}

	start := b.next[sheet]
	first := b.cell(1, start, false)
	if err := b.f.SetSheetRow(sheet, first, &header); err != nil {
		b.t.Fatalf("writing header of %s: %v", name, err)
	}
	for i := range rows {
		if err := b.f.SetSheetRow(sheet, b.cell(1, start+1+i, false), &rows[i]); err != nil {
			b.t.Fatalf("writing row %d of %s: %v", i+1, name, err)
		}
	}

	last := b.cell(len(header), start+len(rows), false)
	if err := b.f.AddTable(sheet, &excelize.Table{Range: first + ":" + last, Name: name}); err != nil {
		b.t.Fatalf("adding table %s: %v", name, err)
	}
	b.next[sheet] = start + len(rows) + 2
	return b
}

// Name writes value to sheet!cell and points the workbook-level defined
// name at it.
func (b *WorkbookBuilder) Name(name, sheet string, col, row int, value any) *WorkbookBuilder {
	b.t.Helper()
	b.sheet(sheet)
	if err := b.f.SetCellValue(sheet, b.cell(col, row, false), value); err != nil {
		b.t.Fatalf("writing %s: %v", name, err)
	}
	ref := "'" + sheet + "'!" + b.cell(col, row, true)
	if err := b.f.SetDefinedName(&excelize.DefinedName{Name: name, RefersTo: ref}); err != nil {
		b.t.Fatalf("defining %s: %v", name, err)
	}
	return b
}

// Save writes the workbook to dir/file and returns the full path.
func (b *WorkbookBuilder) Save(dir, file string) string {
	b.t.Helper()
	if len(b.next) > 0 {
		if err := b.f.DeleteSheet("Sheet1"); err != nil {
			b.t.Fatalf("dropping default sheet: %v", err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		b.t.Fatalf("creating %s: %v", dir, err)
	}
	path := filepath.Join(dir, file)
	if err := b.f.SaveAs(path); err != nil {
		b.t.Fatalf("saving %s: %v", path, err)
	}
	if err := b.f.Close(); err != nil {
		b.t.Fatalf("closing %s: %v", path, err)
	}
	return path
}

// Open returns the built workbook without touching disk.
func (b *WorkbookBuilder) Open() *workbook.Workbook {
	return workbook.New(b.f)
}

func (b *WorkbookBuilder) cell(col, row int, abs bool) string {
	b.t.Helper()
	name, err := excelize.CoordinatesToCellName(col, row, abs)
	if err != nil {
		b.t.Fatalf("cell name: %v", err)
	}
	return name
}

// PlanHeader is the header of the weekly plan table followed by the given
// planning periods.
func PlanHeader(periods ...string) []string {
	h := []string{
		workbook.ColProject, workbook.ColTask, workbook.ColExecutor, workbook.ColManager,
		workbook.ColDeadline, workbook.ColBacklog, workbook.ColPercent,
	}
	return append(h, periods...)
}

// TimecardHeader is the header of the weekly timecard table followed by the
// given day columns in dd.mm.yyyy form.
func TimecardHeader(days ...string) []string {
	h := []string{workbook.ColProject, workbook.ColTask, workbook.ColAction, workbook.ColComment}
	return append(h, days...)
}

// PlanTasksHeader is the header of the planner task list in a timecard
// workbook.
func PlanTasksHeader() []string {
	return []string{
		workbook.ColProject, workbook.ColTask, workbook.ColPlanner,
		workbook.ColFactHours, workbook.ColFactPercent,
	}
}

// PlanVsActualHeader is the header of the previous-week plan-vs-actual table.
func PlanVsActualHeader() []string {
	return []string{
		workbook.ColPlanner, workbook.ColExecutor, workbook.ColProject, workbook.ColTask,
		workbook.ColFactHours, workbook.ColPlannerPercent,
	}
}

// SaveReference writes the calendar and mappings workbooks into master. The
// calendar covers budget weeks 3 (Jan 15-21) and 4 (Jan 22-28) of 2024.
func SaveReference(t testing.TB, master string, employees ...string) {
	t.Helper()
	var days [][]any
	for d := 15; d <= 28; d++ {
		week := 3
		if d >= 22 {
			week = 4
		}
		days = append(days, []any{Date(2024, 1, d), 2024, week})
	}
	NewWorkbook(t).
		Table(workbook.CalendarSheet, workbook.CalendarTable,
			[]string{workbook.ColCalendarDate, workbook.ColCalendarYear, workbook.ColCalendarWeek}, days...).
		Save(master, config.CalendarFile)

	rows := make([][]any, len(employees))
	for i, e := range employees {
		rows[i] = []any{e}
	}
	NewWorkbook(t).
		Table(workbook.EmployeeSheet, workbook.EmployeeTable, []string{workbook.ColEmployeeCaption}, rows...).
		Save(master, config.MappingsFile)
}
