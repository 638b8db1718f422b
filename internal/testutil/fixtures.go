package testutil

import (
	"time"

	"github.com/alexanderramin/planfact/internal/domain"
)

// Date builds a UTC calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Plan entry options
type PlanOption func(*domain.PlanEntry)

func WithPlanTask(task string) PlanOption {
	return func(e *domain.PlanEntry) { e.Task = &task }
}

func WithPlanExecutor(executor string) PlanOption {
	return func(e *domain.PlanEntry) { e.Executor = executor }
}

func WithPlanHours(hours float64) PlanOption {
	return func(e *domain.PlanEntry) { e.Hours = &hours }
}

func WithPlanPeriod(period string) PlanOption {
	return func(e *domain.PlanEntry) { e.Period = &period }
}

func WithPlanDeadline(d time.Time) PlanOption {
	return func(e *domain.PlanEntry) { e.Deadline = &d }
}

func NewTestPlanEntry(planDate time.Time, planner, project string, opts ...PlanOption) domain.PlanEntry {
	period := "W01"
	hours := 8.0
	e := domain.PlanEntry{
		PlanDate: planDate,
		Planner:  planner,
		Project:  project,
		Executor: planner,
		Period:   &period,
		Hours:    &hours,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Timecard entry options
type TimecardOption func(*domain.TimecardEntry)

func WithTimecardTask(task string) TimecardOption {
	return func(e *domain.TimecardEntry) { e.Task = &task }
}

func WithTimecardExecutor(executor string) TimecardOption {
	return func(e *domain.TimecardEntry) { e.Executor = &executor }
}

func WithTimecardPlanner(planner string) TimecardOption {
	return func(e *domain.TimecardEntry) { e.Planner = &planner }
}

func WithTimecardHours(hours float64) TimecardOption {
	return func(e *domain.TimecardEntry) { e.Hours = &hours }
}

func WithNoHours() TimecardOption {
	return func(e *domain.TimecardEntry) { e.Hours = nil }
}

func WithPlannerPercent(p float64) TimecardOption {
	return func(e *domain.TimecardEntry) { e.PercentPlanner = &p }
}

func WithEntryType(t domain.EntryType) TimecardOption {
	return func(e *domain.TimecardEntry) { e.EntryType = t }
}

func NewTestTimecardEntry(date time.Time, executor, project string, opts ...TimecardOption) domain.TimecardEntry {
	hours := 4.0
	e := domain.TimecardEntry{
		EntryDate: date,
		Executor:  &executor,
		Project:   project,
		Hours:     &hours,
		EntryType: domain.EntryTimecard,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
