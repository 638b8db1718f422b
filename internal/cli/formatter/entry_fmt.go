package formatter

import (
	"fmt"

	"github.com/alexanderramin/planfact/internal/domain"
)

// FormatPlans renders stored plan rows.
func FormatPlans(entries []domain.PlanEntry) string {
	rows := make([][]string, len(entries))
	var hours float64
	for i, e := range entries {
		rows[i] = []string{
			Date(e.PlanDate), e.Planner, e.Executor, e.Project, Text(e.Task),
			Text(e.Period), Number(e.Hours), Percent(e.Percent), Text(e.Backlog), OptionalDate(e.Deadline),
		}
		if e.Hours != nil {
			hours += *e.Hours
		}
	}
	table := Table{
		Headers: []string{"WEEK", "PLANNER", "EXECUTOR", "PROJECT", "TASK", "PERIOD", "HOURS", "DONE", "BACKLOG", "DEADLINE"},
		Rows:    rows,
		Right:   map[int]bool{6: true, 7: true},
	}.Render()
	return table + Dim(fmt.Sprintf("%d rows, %s hours planned", len(entries), Number(&hours))) + "\n"
}

// FormatTimecards renders stored timecard rows.
func FormatTimecards(entries []domain.TimecardEntry) string {
	rows := make([][]string, len(entries))
	var hours float64
	for i, e := range entries {
		rows[i] = []string{
			Date(e.EntryDate), Text(e.Executor), Text(e.Planner), e.Project, Text(e.Task),
			Number(e.Hours), Percent(e.PercentExecutor), Percent(e.PercentPlanner), EntryType(e.EntryType),
		}
		if e.Hours != nil {
			hours += *e.Hours
		}
	}
	table := Table{
		Headers: []string{"DATE", "EXECUTOR", "PLANNER", "PROJECT", "TASK", "HOURS", "DONE (EXEC)", "DONE (PLANNER)", "TYPE"},
		Rows:    rows,
		Right:   map[int]bool{5: true, 6: true, 7: true},
	}.Render()
	return table + Dim(fmt.Sprintf("%d rows, %s hours logged", len(entries), Number(&hours))) + "\n"
}
