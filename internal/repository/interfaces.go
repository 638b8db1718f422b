package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/planfact/internal/domain"
)

// PlanRepo persists planner workloads in the plans table.
type PlanRepo interface {
	// DeleteByWeekPlanner removes every row the planner filed for the week
	// starting on weekStart and reports how many were removed.
	DeleteByWeekPlanner(ctx context.Context, weekStart time.Time, planner string) (int64, error)
	InsertMany(ctx context.Context, entries []domain.PlanEntry) (int64, error)
	ListByWeek(ctx context.Context, weekStart time.Time) ([]domain.PlanEntry, error)
}

// TimecardRepo persists timecard and plan-vs-actual rows in the timecards table.
type TimecardRepo interface {
	// DeleteTimecards removes the executor's timecard rows dated within the
	// week. A nil executor matches rows with no executor.
	DeleteTimecards(ctx context.Context, week domain.Week, executor *string) (int64, error)
	// DeletePlanVsActual removes carried-over rows dated on the week end.
	DeletePlanVsActual(ctx context.Context, week domain.Week) (int64, error)
	InsertMany(ctx context.Context, entries []domain.TimecardEntry) (int64, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]domain.TimecardEntry, error)
}
