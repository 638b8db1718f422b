package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/planfact/internal/domain"
)

var (
	str = domain.Str
	pct = domain.Float
)

func line(project, task *string) domain.TimecardRow {
	return domain.TimecardRow{Project: project, Task: task, Hours: pct(1)}
}

func TestResolvePlannerAndPercent_PrefixHierarchy(t *testing.T) {
	plan := []domain.PlanTaskRow{
		{Project: str("P1"), Task: str("1"), Planner: str("Bob"), FactPercent: pct(0.4)},
	}

	for _, task := range []string{"1", "1.2", "1.2.3"} {
		timecard := []domain.TimecardRow{line(str("P1"), str(task))}
		planner, percent := ResolvePlannerAndPercent(plan, timecard, str("P1"), str(task))
		require.NotNil(t, planner, "task %s", task)
		assert.Equal(t, "Bob", *planner)
		require.NotNil(t, percent)
		assert.Equal(t, 0.4, *percent)
	}

	for _, task := range []string{"2", "11"} {
		timecard := []domain.TimecardRow{line(str("P1"), str(task))}
		planner, percent := ResolvePlannerAndPercent(plan, timecard, str("P1"), str(task))
		assert.Nil(t, planner, "task %s", task)
		assert.Nil(t, percent, "task %s", task)
	}
}

func TestResolvePlannerAndPercent_ProjectMustMatchExactly(t *testing.T) {
	plan := []domain.PlanTaskRow{
		{Project: str("P1"), Task: nil, Planner: str("Bob"), FactPercent: pct(1)},
	}
	timecard := []domain.TimecardRow{line(str("P10"), str("1"))}

	planner, percent := ResolvePlannerAndPercent(plan, timecard, str("P10"), str("1"))
	assert.Nil(t, planner)
	assert.Nil(t, percent)
}

func TestResolvePlannerAndPercent_NilPlanTaskIsWildcard(t *testing.T) {
	plan := []domain.PlanTaskRow{
		{Project: str("P1"), Task: nil, Planner: str("Carol"), FactPercent: pct(0.9)},
	}
	timecard := []domain.TimecardRow{line(str("P1"), str("7.1"))}

	planner, percent := ResolvePlannerAndPercent(plan, timecard, str("P1"), str("7.1"))
	require.NotNil(t, planner)
	assert.Equal(t, "Carol", *planner)
	assert.Equal(t, 0.9, *percent)
}

func TestResolvePlannerAndPercent_NilTaskLine(t *testing.T) {
	plan := []domain.PlanTaskRow{
		{Project: str("P1"), Task: str("1"), Planner: str("Bob"), FactPercent: pct(0.2)},
		{Project: str("P1"), Task: nil, Planner: str("Dan"), FactPercent: pct(0.3)},
	}
	timecard := []domain.TimecardRow{line(str("P1"), nil)}

	// "" is not covered by "1", so only the project-level row remains.
	planner, percent := ResolvePlannerAndPercent(plan, timecard, str("P1"), nil)
	require.NotNil(t, planner)
	assert.Equal(t, "Dan", *planner)
	assert.Equal(t, 0.3, *percent)
}

func TestResolvePlannerAndPercent_NilProjectJoinsNilProject(t *testing.T) {
	plan := []domain.PlanTaskRow{
		{Project: nil, Task: nil, Planner: str("Eve"), FactPercent: nil},
		{Project: str("P1"), Task: nil, Planner: str("Bob"), FactPercent: pct(1)},
	}
	timecard := []domain.TimecardRow{line(nil, str("1"))}

	planner, percent := ResolvePlannerAndPercent(plan, timecard, nil, str("1"))
	require.NotNil(t, planner)
	assert.Equal(t, "Eve", *planner)
	assert.Nil(t, percent)
}

func TestResolvePlannerAndPercent_FirstInPlanOrderWins(t *testing.T) {
	plan := []domain.PlanTaskRow{
		{Project: str("P1"), Task: str("1"), Planner: str("Bob"), FactPercent: pct(0.1)},
		{Project: str("P1"), Task: str("1.2"), Planner: str("Ann"), FactPercent: pct(0.5)},
	}
	timecard := []domain.TimecardRow{line(str("P1"), str("1.2.3"))}

	planner, percent := ResolvePlannerAndPercent(plan, timecard, str("P1"), str("1.2.3"))
	require.NotNil(t, planner)
	assert.Equal(t, "Bob", *planner)
	assert.Equal(t, 0.1, *percent)
}

func TestResolvePlannerAndPercent_LineAbsentFromTimecard(t *testing.T) {
	plan := []domain.PlanTaskRow{
		{Project: str("P1"), Task: nil, Planner: str("Bob"), FactPercent: pct(1)},
	}
	planner, percent := ResolvePlannerAndPercent(plan, nil, str("P1"), str("1"))
	assert.Nil(t, planner)
	assert.Nil(t, percent)
}

func TestResolvePlannerAndPercent_DuplicateLinesCollapse(t *testing.T) {
	plan := []domain.PlanTaskRow{
		{Project: str("P1"), Task: str("3"), Planner: str("Bob"), FactPercent: pct(0.7)},
	}
	timecard := []domain.TimecardRow{
		line(str("P1"), str("3")),
		line(str("P1"), str("3")),
		line(str("P1"), str("4")),
	}
	lines := selectLines(timecard, str("P1"), str("3"))
	require.Len(t, lines, 2)
	assert.Len(t, dedupe(joinPlan(lines, plan)), 1)

	planner, _ := ResolvePlannerAndPercent(plan, timecard, str("P1"), str("3"))
	require.NotNil(t, planner)
	assert.Equal(t, "Bob", *planner)
}
