package domain

import "time"

// PlanEntry is one persisted row of the plans table.
type PlanEntry struct {
	PlanDate time.Time
	Planner  string
	Project  string
	Task     *string
	Executor string
	Deadline *time.Time
	Backlog  *string
	Period   *string
	Hours    *float64
	Percent  *float64
}

// TimecardEntry is one persisted row of the timecards table.
type TimecardEntry struct {
	EntryDate       time.Time
	Planner         *string
	Executor        *string
	Project         string
	Task            *string
	Action          *string
	Comment         *string
	Hours           *float64
	PercentExecutor *float64
	PercentPlanner  *float64
	EntryType       EntryType
}

// PlanTaskRow is the planner's declared state of a task as of the current
// week, read from the task plan table embedded in a timecard workbook.
type PlanTaskRow struct {
	Project     *string
	Task        *string
	Planner     *string
	FactHours   *float64
	FactPercent *float64
}

// PlanVsActualRow is the planner's assessment of the previous week's
// actuals, read from the next week's plan workbooks.
type PlanVsActualRow struct {
	Planner        *string
	Executor       *string
	Project        *string
	Task           *string
	FactHours      *float64
	PlannerPercent *float64
}

// TimecardRow is a timecard line after reshaping: one date, one amount.
type TimecardRow struct {
	Date    time.Time
	Project *string
	Task    *string
	Action  *string
	Comment *string
	Hours   *float64
}

// PlanKey holds the identifying columns of a plan table row.
type PlanKey struct {
	Project  *string
	Task     *string
	Executor *string
	Deadline *time.Time
	Backlog  *string
	Percent  *float64
}

// Equal compares keys column by column with null-aware equality.
func (k PlanKey) Equal(o PlanKey) bool {
	return EqualNullable(k.Project, o.Project) &&
		EqualNullable(k.Task, o.Task) &&
		EqualNullable(k.Executor, o.Executor) &&
		equalDate(k.Deadline, o.Deadline) &&
		EqualNullable(k.Backlog, o.Backlog) &&
		EqualNullable(k.Percent, o.Percent)
}

// PeriodHours is one cell of a plan row's period columns.
type PeriodHours struct {
	Period string
	Hours  *float64
}

// WidePlanRow is a plan table row as laid out in the workbook: key columns
// followed by one hours column per planning period.
type WidePlanRow struct {
	PlanKey
	Periods []PeriodHours
}

// DayHours is one cell of a timecard row's date columns.
type DayHours struct {
	Date  time.Time
	Hours *float64
}

// WideTimecardRow is a timecard table row as laid out in the workbook.
type WideTimecardRow struct {
	Project *string
	Task    *string
	Action  *string
	Comment *string
	Days    []DayHours
}

func equalDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// Week is the inclusive date range of a budget week.
type Week struct {
	Year  int
	No    int
	Start time.Time
	End   time.Time
}

// Label renders the week as used in folder and file names, e.g. 2024-W07.
func (w Week) Label() string {
	return WeekLabel(w.Year, w.No)
}
