package pipeline

import (
	"github.com/alexanderramin/planfact/internal/domain"
	"github.com/alexanderramin/planfact/internal/reconcile"
)

// TimecardInput is everything the timecard flow needs for one timecard
// workbook. Plan is the task plan embedded in the same workbook; PlanVsActual
// comes from next week's plan workbooks of all employees.
type TimecardInput struct {
	Rows         []domain.WideTimecardRow
	Plan         []domain.PlanTaskRow
	PlanVsActual []domain.PlanVsActualRow
	Executor     *string
	Week         domain.Week
}

// TimecardResult holds the rows to store for one (week, executor) key.
type TimecardResult struct {
	Entries []domain.TimecardEntry
	Trace   Trace
}

// Empty reports whether nothing survived validation.
func (r TimecardResult) Empty() bool { return len(r.Entries) == 0 }

type timecardLine struct {
	domain.TimecardRow
	planner         *string
	percentExecutor *float64
}

// AssembleTimecards reshapes a wide timecard table, attributes every line to
// a planner, and adds the planned tasks that saw no work this week.
//
// A timecard with no logged hours yields no rows at all, undone tasks
// included.
func AssembleTimecards(in TimecardInput) TimecardResult {
	var res TimecardResult
	res.Trace.add(StageLoaded, "timecard rows loaded", len(in.Rows))

	melted := MeltTimecard(in.Rows)
	res.Trace.add(StageReshaped, "entries unpivoted", len(melted))
	if len(melted) == 0 {
		return res
	}

	lines := make([]timecardLine, 0, len(melted))
	for _, row := range melted {
		planner, percent := reconcile.ResolvePlannerAndPercent(in.Plan, melted, row.Project, row.Task)
		lines = append(lines, timecardLine{TimecardRow: row, planner: planner, percentExecutor: percent})
	}
	res.Trace.add(StageResolved, "percent by executor added", len(lines))

	undone := undoneTasks(in.Plan, in.Week)
	res.Trace.add(StageReshaped, "undone tasks selected", len(undone))
	lines = append(lines, undone...)
	res.Trace.add(StageReshaped, "undone tasks appended", len(lines))

	kept := lines[:0]
	for _, l := range lines {
		if l.Project == nil {
			continue
		}
		if l.Hours == nil && l.percentExecutor == nil {
			continue
		}
		kept = append(kept, l)
	}
	res.Trace.add(StageFiltered, "null rows filtered out", len(kept))

	for _, l := range kept {
		res.Entries = append(res.Entries, domain.TimecardEntry{
			EntryDate:       l.Date,
			Planner:         l.planner,
			Executor:        in.Executor,
			Project:         *l.Project,
			Task:            l.Task,
			Action:          l.Action,
			Comment:         l.Comment,
			Hours:           l.Hours,
			PercentExecutor: l.percentExecutor,
			PercentPlanner:  reconcile.ResolvePlannerPercent(in.PlanVsActual, l.planner, in.Executor, l.Project, l.Task),
			EntryType:       domain.EntryTimecard,
		})
	}
	if len(res.Entries) > 0 {
		res.Trace.add(StageResolved, "percent by planner added", len(res.Entries))
	}
	res.Trace.add(StageEmitted, "entries ready", len(res.Entries))
	return res
}

// MeltTimecard turns every (row, date) cell with hours into its own line.
func MeltTimecard(rows []domain.WideTimecardRow) []domain.TimecardRow {
	var out []domain.TimecardRow
	for _, r := range rows {
		for _, d := range r.Days {
			if d.Hours == nil {
				continue
			}
			out = append(out, domain.TimecardRow{
				Date:    d.Date,
				Project: r.Project,
				Task:    r.Task,
				Action:  r.Action,
				Comment: r.Comment,
				Hours:   d.Hours,
			})
		}
	}
	return out
}

// undoneTasks are planned tasks with exactly zero actual hours. They carry
// the plan's completion percentage and are dated at the end of the week.
func undoneTasks(plan []domain.PlanTaskRow, week domain.Week) []timecardLine {
	var out []timecardLine
	for _, p := range plan {
		if p.FactHours == nil || *p.FactHours != 0 {
			continue
		}
		out = append(out, timecardLine{
			TimecardRow: domain.TimecardRow{
				Date:    week.End,
				Project: p.Project,
				Task:    p.Task,
			},
			planner:         p.Planner,
			percentExecutor: p.FactPercent,
		})
	}
	return out
}

// PlanVsActualCarryOver selects the tasks a planner assessed for which no
// actual hours exist yet and turns them into plan_vs_actual entries dated at
// the end of the week. Rows without a project cannot be stored and are
// skipped.
func PlanVsActualCarryOver(rows []domain.PlanVsActualRow, week domain.Week) []domain.TimecardEntry {
	var out []domain.TimecardEntry
	for _, r := range rows {
		if r.FactHours != nil || r.PlannerPercent == nil || r.Project == nil {
			continue
		}
		out = append(out, domain.TimecardEntry{
			EntryDate:      week.End,
			Planner:        r.Planner,
			Executor:       r.Executor,
			Project:        *r.Project,
			Task:           r.Task,
			PercentPlanner: r.PlannerPercent,
			EntryType:      domain.EntryPlanVsActual,
		})
	}
	return out
}
