package reconcile

import (
	"sort"

	"github.com/alexanderramin/planfact/internal/domain"
)

// ResolvePlannerPercent returns the completion percentage the planner
// declared for a task in the plan-vs-actual table.
//
// Rows must match planner, executor and project exactly (nil matches only
// nil) and their task must cover task. When several ancestor tasks cover
// it, the greatest task key in descending order wins, which is the deepest
// one; rows with a nil task come last.
func ResolvePlannerPercent(rows []domain.PlanVsActualRow, planner, executor, project, task *string) *float64 {
	var candidates []domain.PlanVsActualRow
	for _, r := range rows {
		if domain.EqualNullable(r.Planner, planner) &&
			domain.EqualNullable(r.Executor, executor) &&
			domain.EqualNullable(r.Project, project) &&
			domain.TaskCovers(r.Task, task) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].Task, candidates[j].Task
		if (a == nil) != (b == nil) {
			return a != nil
		}
		if a == nil {
			return false
		}
		return *a > *b
	})
	return candidates[0].PlannerPercent
}
