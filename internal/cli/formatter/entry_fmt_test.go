package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/planfact/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatPlans(t *testing.T) {
	week := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	out := stripANSI(FormatPlans([]domain.PlanEntry{
		{PlanDate: week, Planner: "Ivanov", Executor: "Petrov", Project: "P1", Task: domain.Str("1.2"), Period: domain.Str("W01"), Hours: domain.Float(6), Percent: domain.Float(0.5)},
		{PlanDate: week, Planner: "Ivanov", Executor: "Petrov", Project: "P2", Backlog: domain.Str("Backlog")},
	}))

	assert.Contains(t, out, "PLANNER")
	assert.Contains(t, out, "15.01.2024")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Backlog")
	assert.Contains(t, out, "2 rows, 6 hours planned")
}

func TestFormatTimecards(t *testing.T) {
	day := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	out := stripANSI(FormatTimecards([]domain.TimecardEntry{
		{EntryDate: day, Executor: domain.Str("Petrov"), Project: "P1", Hours: domain.Float(2.5), EntryType: domain.EntryTimecard},
		{EntryDate: day, Planner: domain.Str("Ivanov"), Project: "P1", PercentPlanner: domain.Float(0.7), EntryType: domain.EntryPlanVsActual},
	}))

	assert.Contains(t, out, "16.01.2024")
	assert.Contains(t, out, "plan-vs-actual")
	assert.Contains(t, out, "70%")
	assert.Contains(t, out, "2 rows, 2.5 hours logged")
}

func TestFormatTimecards_Empty(t *testing.T) {
	out := stripANSI(FormatTimecards(nil))
	assert.Contains(t, out, "0 rows, 0 hours logged")
}
