package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/planfact/internal/domain"
	"github.com/alexanderramin/planfact/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_InsertAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLPlanRepo(database.Conn())
	ctx := context.Background()
	week := testutil.Date(2024, 1, 15)
	deadline := testutil.Date(2024, 1, 19)

	n, err := repo.InsertMany(ctx, []domain.PlanEntry{
		testutil.NewTestPlanEntry(week, "Ivanov", "P1",
			testutil.WithPlanTask("1.2"), testutil.WithPlanExecutor("Petrov"), testutil.WithPlanDeadline(deadline)),
		testutil.NewTestPlanEntry(week, "Ivanov", "P2"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := repo.ListByWeek(ctx, week)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "P1", got[0].Project)
	assert.Equal(t, "1.2", *got[0].Task)
	assert.Equal(t, "Petrov", got[0].Executor)
	require.NotNil(t, got[0].Deadline)
	assert.True(t, deadline.Equal(*got[0].Deadline))
	assert.True(t, week.Equal(got[0].PlanDate))
	assert.Equal(t, 8.0, *got[0].Hours)
	assert.Nil(t, got[1].Task)
	assert.Nil(t, got[1].Percent)
}

func TestPlanRepo_DeleteByWeekPlanner(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLPlanRepo(database.Conn())
	ctx := context.Background()
	week := testutil.Date(2024, 1, 15)
	prev := testutil.Date(2024, 1, 8)

	_, err := repo.InsertMany(ctx, []domain.PlanEntry{
		testutil.NewTestPlanEntry(week, "Ivanov", "P1"),
		testutil.NewTestPlanEntry(week, "Ivanov", "P2"),
		testutil.NewTestPlanEntry(week, "Sidorov", "P1"),
		testutil.NewTestPlanEntry(prev, "Ivanov", "P1"),
	})
	require.NoError(t, err)

	deleted, err := repo.DeleteByWeekPlanner(ctx, week, "Ivanov")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	left, err := repo.ListByWeek(ctx, week)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "Sidorov", left[0].Planner)

	older, err := repo.ListByWeek(ctx, prev)
	require.NoError(t, err)
	assert.Len(t, older, 1, "other weeks are untouched")
}
