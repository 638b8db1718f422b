package pipeline

import (
	"time"

	"github.com/alexanderramin/planfact/internal/domain"
)

// PlanInput is everything the plan flow needs for one plan workbook.
type PlanInput struct {
	Rows      []domain.WidePlanRow
	Planner   string
	WeekStart time.Time
}

// PlanResult holds the rows to store for one (week, planner) key.
type PlanResult struct {
	Entries []domain.PlanEntry
	Trace   Trace
}

// Empty reports whether nothing survived validation.
func (r PlanResult) Empty() bool { return len(r.Entries) == 0 }

type planLine struct {
	domain.PlanKey
	period *string
	hours  *float64
}

// AssemblePlan reshapes a wide plan table into plan entries: one entry per
// period with hours, plus one backlog entry per row that has no hours at all.
func AssemblePlan(in PlanInput) PlanResult {
	var res PlanResult
	res.Trace.add(StageLoaded, "plan rows loaded", len(in.Rows))

	melted := meltPlan(in.Rows)
	res.Trace.add(StageReshaped, "entries unpivoted", len(melted))

	backlog := planBacklog(in.Rows, melted)
	res.Trace.add(StageReshaped, "backlog tasks selected", len(backlog))

	lines := append(melted, backlog...)
	res.Trace.add(StageReshaped, "backlog appended", len(lines))

	kept := lines[:0]
	for _, l := range lines {
		if l.Project == nil || l.Executor == nil {
			continue
		}
		if l.hours == nil && l.Backlog == nil {
			continue
		}
		kept = append(kept, l)
	}
	res.Trace.add(StageFiltered, "null rows filtered out", len(kept))

	for _, l := range kept {
		if l.hours != nil && *l.hours == 0 && !isBacklog(l.Backlog) {
			continue
		}
		res.Entries = append(res.Entries, domain.PlanEntry{
			PlanDate: in.WeekStart,
			Planner:  in.Planner,
			Project:  *l.Project,
			Task:     l.Task,
			Executor: *l.Executor,
			Deadline: l.Deadline,
			Backlog:  l.Backlog,
			Period:   l.period,
			Hours:    l.hours,
			Percent:  l.Percent,
		})
	}
	res.Trace.add(StageEmitted, "zero-hour rows dropped", len(res.Entries))
	return res
}

func meltPlan(rows []domain.WidePlanRow) []planLine {
	var out []planLine
	for _, r := range rows {
		for _, p := range r.Periods {
			if p.Hours == nil {
				continue
			}
			out = append(out, planLine{PlanKey: r.PlanKey, period: domain.Str(p.Period), hours: p.Hours})
		}
	}
	return out
}

// planBacklog returns the rows whose key produced no melted entry.
func planBacklog(rows []domain.WidePlanRow, melted []planLine) []planLine {
	var out []planLine
	for _, r := range rows {
		found := false
		for _, m := range melted {
			if m.PlanKey.Equal(r.PlanKey) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, planLine{PlanKey: r.PlanKey})
		}
	}
	return out
}

func isBacklog(marker *string) bool {
	return marker != nil && *marker == domain.BacklogMarker
}
