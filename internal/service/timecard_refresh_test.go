package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/planfact/internal/domain"
	"github.com/alexanderramin/planfact/internal/report"
	"github.com/alexanderramin/planfact/internal/repository"
	"github.com/alexanderramin/planfact/internal/testutil"
	"github.com/alexanderramin/planfact/internal/workbook"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var week3 = domain.Week{Year: 2024, No: 3, Start: testutil.Date(2024, 1, 15), End: testutil.Date(2024, 1, 21)}

// storedRow is the part of a stored timecard row the tests compare.
type storedRow struct {
	Date           string
	Planner        string
	Executor       string
	Project        string
	Task           string
	Hours          float64
	PercentExec    float64
	PercentPlanner float64
	Type           domain.EntryType
}

func flatten(entries []domain.TimecardEntry) []storedRow {
	num := func(f *float64) float64 {
		if f == nil {
			return -1
		}
		return *f
	}
	out := make([]storedRow, len(entries))
	for i, e := range entries {
		out[i] = storedRow{
			Date:           e.EntryDate.Format(domain.DateLayout),
			Planner:        domain.StrOrEmpty(e.Planner),
			Executor:       domain.StrOrEmpty(e.Executor),
			Project:        e.Project,
			Task:           domain.StrOrEmpty(e.Task),
			Hours:          num(e.Hours),
			PercentExec:    num(e.PercentExecutor),
			PercentPlanner: num(e.PercentPlanner),
			Type:           e.EntryType,
		}
	}
	return out
}

func TestTimecardRefresh_LoadsWeekWithCarryOver(t *testing.T) {
	database := testutil.NewTestDB(t)
	layout := newLayout(t)
	ctx := context.Background()
	timecards := repository.NewSQLTimecardRepo(database.Conn())

	_, err := timecards.InsertMany(ctx, []domain.TimecardEntry{
		testutil.NewTestTimecardEntry(week3.Start, "Petrov", "STALE"),
		testutil.NewTestTimecardEntry(week3.End, "Sidorov", "STALE-PVA",
			testutil.WithNoHours(), testutil.WithPlannerPercent(0.3), testutil.WithEntryType(domain.EntryPlanVsActual)),
	})
	require.NoError(t, err)

	saveTimecard(t, layout, "2024-W03", "Petrov", timecardBook(t, "Petrov",
		[]any{"P1", "1.2", "Coding", nil, 3, 5},
	).Table(workbook.PlanSheet, workbook.PlanTasksTable, testutil.PlanTasksHeader(),
		[]any{"P1", "1", "Ivanov", 8, 0.5},
		[]any{"P2", "7", "Ivanov", 0, 0.1},
	))
	savePlan(t, layout, "2024-W04", "Ivanov", testutil.NewWorkbook(t).
		Table(workbook.PlanVsActualSheet, workbook.PlanVsActualTable, testutil.PlanVsActualHeader(),
			[]any{"Ivanov", "Petrov", "P1", "1", nil, 0.7},
			[]any{"Ivanov", "Petrov", "P3", nil, 4, 0.9},
		))

	svc := NewTimecardRefreshService(layout, testReference(), testutil.NewTestUoW(database), zap.NewNop())
	run := report.New(report.FlowTimecards, time.Now())
	req := RefreshRequest{Year: 2024, Weeks: []int{3}, Employees: []string{"Petrov"}}
	require.NoError(t, svc.Refresh(ctx, run, req))

	require.Len(t, run.Outcomes, 2)
	card := outcomeFor(t, run, "timecard_2024-W03_Petrov.xlsm")
	assert.Equal(t, report.KindInserted, card.Kind)
	assert.Equal(t, int64(3), card.Rows)
	assert.Equal(t, int64(1), card.Deleted)
	carried := outcomeFor(t, run, PlanVsActualSource)
	assert.Equal(t, int64(1), carried.Rows)
	assert.Equal(t, int64(1), carried.Deleted)
	assert.Equal(t, int64(4), run.TotalRows())
	assert.True(t, run.Succeeded())

	stored, err := timecards.ListByRange(ctx, week3.Start, week3.End)
	require.NoError(t, err)
	want := []storedRow{
		{"2024-01-15", "Ivanov", "Petrov", "P1", "1.2", 3, 0.5, 0.7, domain.EntryTimecard},
		{"2024-01-16", "Ivanov", "Petrov", "P1", "1.2", 5, 0.5, 0.7, domain.EntryTimecard},
		{"2024-01-21", "Ivanov", "Petrov", "P2", "7", -1, 0.1, -1, domain.EntryTimecard},
		{"2024-01-21", "Ivanov", "Petrov", "P1", "1", -1, -1, 0.7, domain.EntryPlanVsActual},
	}
	if diff := cmp.Diff(want, flatten(stored)); diff != "" {
		t.Errorf("stored timecards mismatch (-want +got):\n%s", diff)
	}
}

func TestTimecardRefresh_NoHoursIsEmpty(t *testing.T) {
	database := testutil.NewTestDB(t)
	layout := newLayout(t)

	// No task plan table: it must not be read when nothing was logged.
	saveTimecard(t, layout, "2024-W03", "Petrov", timecardBook(t, "Petrov", []any{"P1", "1", nil, nil, nil, nil}))

	svc := NewTimecardRefreshService(layout, testReference(), testutil.NewTestUoW(database), zap.NewNop())
	run := report.New(report.FlowTimecards, time.Now())
	require.NoError(t, svc.Refresh(context.Background(), run, RefreshRequest{Year: 2024, Weeks: []int{3}}))

	require.Len(t, run.Outcomes, 1)
	assert.Equal(t, report.KindEmpty, run.Outcomes[0].Kind)
	assert.Len(t, run.Weeks, 1)
}

func TestTimecardRefresh_BrokenFilesAreIsolated(t *testing.T) {
	database := testutil.NewTestDB(t)
	layout := newLayout(t)

	saveTimecard(t, layout, "2024-W03", "Petrov", timecardBook(t, "Petrov", []any{"P1", "1", nil, nil, 2, nil}))
	saveTimecard(t, layout, "2024-W03", "Ivanov", timecardBook(t, "Ivanov", []any{"P1", "1", nil, nil, 2, nil}).
		Table(workbook.PlanSheet, workbook.PlanTasksTable, testutil.PlanTasksHeader(), []any{"P1", "1", "Sidorov", 2, 1}))
	savePlan(t, layout, "2024-W04", "Sidorov", planBook(t, "Sidorov"))

	svc := NewTimecardRefreshService(layout, testReference(), testutil.NewTestUoW(database), zap.NewNop())
	run := report.New(report.FlowTimecards, time.Now())
	require.NoError(t, svc.Refresh(context.Background(), run, RefreshRequest{Year: 2024, Weeks: []int{3}}))

	petrov := outcomeFor(t, run, "timecard_2024-W03_Petrov.xlsm")
	assert.Equal(t, report.KindFailed, petrov.Kind, "hours logged but task plan missing")
	assert.ErrorIs(t, petrov.Err, workbook.ErrTableNotFound)

	ivanov := outcomeFor(t, run, "timecard_2024-W03_Ivanov.xlsm")
	assert.Equal(t, report.KindInserted, ivanov.Kind)

	pva := outcomeFor(t, run, "plan_2024-W04_Sidorov.xlsm")
	assert.Equal(t, report.KindFailed, pva.Kind, "next-week plan without plan-vs-actual table")
	assert.Equal(t, 2, run.ErrorCount())
}

func TestTimecardRefresh_FailedInsertRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	layout := newLayout(t)
	ctx := context.Background()
	timecards := repository.NewSQLTimecardRepo(database.Conn())

	_, err := timecards.InsertMany(ctx, []domain.TimecardEntry{testutil.NewTestTimecardEntry(week3.Start, "Petrov", "OLD")})
	require.NoError(t, err)

	saveTimecard(t, layout, "2024-W03", "Petrov", timecardBook(t, "Petrov", []any{"P1", "1", nil, nil, 2, 3}).
		Table(workbook.PlanSheet, workbook.PlanTasksTable, testutil.PlanTasksHeader(), []any{"P1", "1", "Ivanov", 5, 0.2}))

	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: errors.New("constraint violated")}
	svc := NewTimecardRefreshService(layout, testReference(), uow, zap.NewNop())
	run := report.New(report.FlowTimecards, time.Now())
	require.NoError(t, svc.Refresh(ctx, run, RefreshRequest{Year: 2024, Weeks: []int{3}}))

	require.Len(t, run.Outcomes, 1)
	assert.Equal(t, report.KindFailed, run.Outcomes[0].Kind)

	stored, err := timecards.ListByRange(ctx, week3.Start, week3.End)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "OLD", stored[0].Project)
}
