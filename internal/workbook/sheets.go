package workbook

import (
	"fmt"

	"github.com/alexanderramin/planfact/internal/calendar"
	"github.com/alexanderramin/planfact/internal/domain"
)

// Sheet, table and column names used by the planning workbooks.
const (
	PlanSheet      = "План CW"
	PlanTable      = "Plan"
	PlanTasksTable = "ПланЗадач"

	TimecardSheet = "Timecard CW"
	TimecardTable = "Timecard"

	PlanVsActualSheet = "План-факт PW"
	PlanVsActualTable = "PlanVsActualPW"

	CalendarSheet = "Calendar"
	CalendarTable = "calendar_actual"

	EmployeeSheet = "Справочники"
	EmployeeTable = "Сотрудники"

	PlannerNameRef  = "PlannerName"
	EmployeeNameRef = "EmployeeName"

	ColProject         = "Проект"
	ColTask            = "Задача"
	ColExecutor        = "Исполнитель"
	ColPlanner         = "Постановщик"
	ColManager         = "Руководитель"
	ColDeadline        = "Deadline"
	ColBacklog         = "Backlog"
	ColPercent         = "% выполнения"
	ColAction          = "Действие"
	ColComment         = "Комментарий"
	ColFactHours       = "Часы (факт)"
	ColFactPercent     = "% выполнения (факт)"
	ColPlannerPercent  = "% выполнения (Постановщик)"
	ColCalendarDate    = "date"
	ColCalendarYear    = "budgetYearNo"
	ColCalendarWeek    = "budgetWeekNo"
	ColEmployeeCaption = "Шаблон заголовка"
)

var (
	planKeyColumns     = []string{ColProject, ColTask, ColExecutor, ColDeadline, ColBacklog, ColPercent}
	timecardKeyColumns = []string{ColProject, ColTask, ColAction, ColComment}
)

// PlanRows reads the weekly plan table. Every column that is not a key
// column (nor the manager column) is a planning period holding hours.
func (w *Workbook) PlanRows() ([]domain.WidePlanRow, error) {
	t, err := w.Table(PlanSheet, PlanTable)
	if err != nil {
		return nil, err
	}
	idx, err := t.Require(planKeyColumns...)
	if err != nil {
		return nil, err
	}
	periods := valueColumns(t, planKeyColumns)

	out := make([]domain.WidePlanRow, 0, len(t.Rows))
	for n, row := range t.Rows {
		deadline, err := Date(row[idx[ColDeadline]])
		if err != nil {
			return nil, rowErr(t, n, ColDeadline, err)
		}
		percent, err := Number(row[idx[ColPercent]])
		if err != nil {
			return nil, rowErr(t, n, ColPercent, err)
		}
		r := domain.WidePlanRow{
			PlanKey: domain.PlanKey{
				Project:  Text(row[idx[ColProject]]),
				Task:     Text(row[idx[ColTask]]),
				Executor: Text(row[idx[ColExecutor]]),
				Deadline: deadline,
				Backlog:  Text(row[idx[ColBacklog]]),
				Percent:  percent,
			},
		}
		for _, p := range periods {
			hours, err := Number(row[p])
			if err != nil {
				return nil, rowErr(t, n, t.Columns[p], err)
			}
			r.Periods = append(r.Periods, domain.PeriodHours{Period: t.Columns[p], Hours: hours})
		}
		out = append(out, r)
	}
	return out, nil
}

// TimecardRows reads the weekly timecard table. Value columns are headed by
// dates in dd.mm.yyyy form.
func (w *Workbook) TimecardRows() ([]domain.WideTimecardRow, error) {
	t, err := w.Table(TimecardSheet, TimecardTable)
	if err != nil {
		return nil, err
	}
	idx, err := t.Require(timecardKeyColumns...)
	if err != nil {
		return nil, err
	}
	cols := valueColumns(t, timecardKeyColumns)
	dates := make([]domain.DayHours, len(cols))
	for i, c := range cols {
		d, err := Date(t.Columns[c])
		if err != nil || d == nil {
			return nil, fmt.Errorf("table %s: date column %q: invalid header", t.Name, t.Columns[c])
		}
		dates[i] = domain.DayHours{Date: *d}
	}

	out := make([]domain.WideTimecardRow, 0, len(t.Rows))
	for n, row := range t.Rows {
		r := domain.WideTimecardRow{
			Project: Text(row[idx[ColProject]]),
			Task:    Text(row[idx[ColTask]]),
			Action:  Text(row[idx[ColAction]]),
			Comment: Text(row[idx[ColComment]]),
		}
		for i, c := range cols {
			hours, err := Number(row[c])
			if err != nil {
				return nil, rowErr(t, n, t.Columns[c], err)
			}
			r.Days = append(r.Days, domain.DayHours{Date: dates[i].Date, Hours: hours})
		}
		out = append(out, r)
	}
	return out, nil
}

// PlanTasks reads the planner's task list embedded in a timecard workbook.
func (w *Workbook) PlanTasks() ([]domain.PlanTaskRow, error) {
	t, err := w.Table(PlanSheet, PlanTasksTable)
	if err != nil {
		return nil, err
	}
	idx, err := t.Require(ColProject, ColTask, ColPlanner, ColFactHours, ColFactPercent)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PlanTaskRow, 0, len(t.Rows))
	for n, row := range t.Rows {
		hours, err := Number(row[idx[ColFactHours]])
		if err != nil {
			return nil, rowErr(t, n, ColFactHours, err)
		}
		percent, err := Number(row[idx[ColFactPercent]])
		if err != nil {
			return nil, rowErr(t, n, ColFactPercent, err)
		}
		out = append(out, domain.PlanTaskRow{
			Project:     Text(row[idx[ColProject]]),
			Task:        Text(row[idx[ColTask]]),
			Planner:     Text(row[idx[ColPlanner]]),
			FactHours:   hours,
			FactPercent: percent,
		})
	}
	return out, nil
}

// PlanVsActual reads the previous week's plan-vs-actual table of a plan
// workbook.
func (w *Workbook) PlanVsActual() ([]domain.PlanVsActualRow, error) {
	t, err := w.Table(PlanVsActualSheet, PlanVsActualTable)
	if err != nil {
		return nil, err
	}
	idx, err := t.Require(ColPlanner, ColExecutor, ColProject, ColTask, ColFactHours, ColPlannerPercent)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PlanVsActualRow, 0, len(t.Rows))
	for n, row := range t.Rows {
		hours, err := Number(row[idx[ColFactHours]])
		if err != nil {
			return nil, rowErr(t, n, ColFactHours, err)
		}
		percent, err := Number(row[idx[ColPlannerPercent]])
		if err != nil {
			return nil, rowErr(t, n, ColPlannerPercent, err)
		}
		out = append(out, domain.PlanVsActualRow{
			Planner:        Text(row[idx[ColPlanner]]),
			Executor:       Text(row[idx[ColExecutor]]),
			Project:        Text(row[idx[ColProject]]),
			Task:           Text(row[idx[ColTask]]),
			FactHours:      hours,
			PlannerPercent: percent,
		})
	}
	return out, nil
}

// CalendarDays reads the company calendar. Rows with a blank date are
// skipped.
func (w *Workbook) CalendarDays() ([]calendar.Day, error) {
	t, err := w.Table(CalendarSheet, CalendarTable)
	if err != nil {
		return nil, err
	}
	idx, err := t.Require(ColCalendarDate, ColCalendarYear, ColCalendarWeek)
	if err != nil {
		return nil, err
	}
	var out []calendar.Day
	for n, row := range t.Rows {
		d, err := Date(row[idx[ColCalendarDate]])
		if err != nil {
			return nil, rowErr(t, n, ColCalendarDate, err)
		}
		if d == nil {
			continue
		}
		year, err := Number(row[idx[ColCalendarYear]])
		if err != nil || year == nil {
			return nil, rowErr(t, n, ColCalendarYear, fmt.Errorf("invalid year %q", row[idx[ColCalendarYear]]))
		}
		week, err := Number(row[idx[ColCalendarWeek]])
		if err != nil || week == nil {
			return nil, rowErr(t, n, ColCalendarWeek, fmt.Errorf("invalid week %q", row[idx[ColCalendarWeek]]))
		}
		out = append(out, calendar.Day{Date: *d, Year: int(*year), Week: int(*week)})
	}
	return out, nil
}

// Employees reads the caption of every known employee from the reference
// workbook. Blank captions are skipped.
func (w *Workbook) Employees() ([]string, error) {
	t, err := w.Table(EmployeeSheet, EmployeeTable)
	if err != nil {
		return nil, err
	}
	idx, err := t.Require(ColEmployeeCaption)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, row := range t.Rows {
		if v := Text(row[idx[ColEmployeeCaption]]); v != nil {
			out = append(out, *v)
		}
	}
	return out, nil
}

// valueColumns lists the positions of columns that are neither key columns
// nor the manager column.
func valueColumns(t *Table, keys []string) []int {
	skip := map[string]bool{ColManager: true}
	for _, k := range keys {
		skip[k] = true
	}
	var out []int
	for i, c := range t.Columns {
		if !skip[c] {
			out = append(out, i)
		}
	}
	return out
}

func rowErr(t *Table, n int, column string, err error) error {
	return fmt.Errorf("table %s row %d column %q: %w", t.Name, n+1, column, err)
}
