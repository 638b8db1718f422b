// Package reconcile matches timecard lines against the planner's task list
// and resolves who owns a line and how complete its task is.
package reconcile

import "github.com/alexanderramin/planfact/internal/domain"

// match is one row of the timecard/plan join.
type match struct {
	project      *string
	taskTimecard *string
	taskPlan     *string
	planner      *string
	percent      *float64
}

func (m match) equal(o match) bool {
	return domain.EqualNullable(m.project, o.project) &&
		domain.EqualNullable(m.taskTimecard, o.taskTimecard) &&
		domain.EqualNullable(m.taskPlan, o.taskPlan) &&
		domain.EqualNullable(m.planner, o.planner) &&
		domain.EqualNullable(m.percent, o.percent)
}

// ResolvePlannerAndPercent finds the planner owning a (project, task) line of
// a timecard and the completion percentage the executor reported for it.
//
// The timecard lines equal to (project, task) are joined with the plan on
// project. A plan task covers the line when it is nil or a hierarchical
// prefix of task. The first surviving plan row in join order wins; when no
// row survives both results are nil.
func ResolvePlannerAndPercent(plan []domain.PlanTaskRow, timecard []domain.TimecardRow, project, task *string) (*string, *float64) {
	lines := selectLines(timecard, project, task)
	joined := joinPlan(lines, plan)
	covered := joined[:0]
	for _, m := range joined {
		if domain.TaskCovers(m.taskPlan, task) {
			covered = append(covered, m)
		}
	}
	distinct := dedupe(covered)
	if len(distinct) == 0 {
		return nil, nil
	}
	return distinct[0].planner, distinct[0].percent
}

func selectLines(timecard []domain.TimecardRow, project, task *string) []domain.TimecardRow {
	var out []domain.TimecardRow
	for _, r := range timecard {
		if domain.EqualNullable(r.Project, project) && domain.EqualNullable(r.Task, task) {
			out = append(out, r)
		}
	}
	return out
}

// joinPlan is a left join on project. A line with no plan row on its
// project yields one row with nil plan columns.
func joinPlan(lines []domain.TimecardRow, plan []domain.PlanTaskRow) []match {
	var out []match
	for _, l := range lines {
		found := false
		for _, p := range plan {
			if !domain.EqualNullable(l.Project, p.Project) {
				continue
			}
			found = true
			out = append(out, match{
				project:      l.Project,
				taskTimecard: l.Task,
				taskPlan:     p.Task,
				planner:      p.Planner,
				percent:      p.FactPercent,
			})
		}
		if !found {
			out = append(out, match{project: l.Project, taskTimecard: l.Task})
		}
	}
	return out
}

func dedupe(in []match) []match {
	var out []match
	for _, m := range in {
		dup := false
		for _, seen := range out {
			if seen.equal(m) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, m)
		}
	}
	return out
}
