package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/planfact/internal/db"
	"github.com/alexanderramin/planfact/internal/domain"
)

// SQLPlanRepo implements PlanRepo on any DBTX bound to its dialect.
type SQLPlanRepo struct {
	db db.DBTX
}

// NewSQLPlanRepo creates a new SQLPlanRepo.
func NewSQLPlanRepo(conn db.DBTX) *SQLPlanRepo {
	return &SQLPlanRepo{db: conn}
}

const planColumns = `plan_date, planner, project, task, executor, deadline,
	is_backlog, planning_period, planned_hours, perc_of_completion`

func (r *SQLPlanRepo) DeleteByWeekPlanner(ctx context.Context, weekStart time.Time, planner string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM plans WHERE plan_date = ? AND planner = ?`,
		dateValue(weekStart), planner)
	if err != nil {
		return 0, fmt.Errorf("deleting plans for %s: %w", planner, err)
	}
	return affected(res), nil
}

func (r *SQLPlanRepo) InsertMany(ctx context.Context, entries []domain.PlanEntry) (int64, error) {
	query := `INSERT INTO plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var total int64
	for i, e := range entries {
		res, err := r.db.ExecContext(ctx, query,
			dateValue(e.PlanDate),
			e.Planner,
			e.Project,
			nullableString(e.Task),
			e.Executor,
			nullableDate(e.Deadline),
			nullableString(e.Backlog),
			nullableString(e.Period),
			nullableFloat(e.Hours),
			nullableFloat(e.Percent),
		)
		if err != nil {
			return total, fmt.Errorf("inserting plan row %d: %w", i+1, err)
		}
		total += affected(res)
	}
	return total, nil
}

func (r *SQLPlanRepo) ListByWeek(ctx context.Context, weekStart time.Time) ([]domain.PlanEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM plans WHERE plan_date = ? ORDER BY planner, id`,
		dateValue(weekStart))
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var out []domain.PlanEntry
	for rows.Next() {
		e, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanPlan(rows *sql.Rows) (domain.PlanEntry, error) {
	var (
		e                     domain.PlanEntry
		planDate              string
		task, backlog, period sql.NullString
		deadline              sql.NullString
		hours, percent        sql.NullFloat64
	)
	if err := rows.Scan(&planDate, &e.Planner, &e.Project, &task, &e.Executor,
		&deadline, &backlog, &period, &hours, &percent); err != nil {
		return e, fmt.Errorf("scanning plan: %w", err)
	}

	var err error
	if e.PlanDate, err = parseDate(planDate); err != nil {
		return e, fmt.Errorf("parsing plan_date: %w", err)
	}
	if e.Deadline, err = parseNullableDate(deadline); err != nil {
		return e, fmt.Errorf("parsing deadline: %w", err)
	}
	e.Task = stringPtr(task)
	e.Backlog = stringPtr(backlog)
	e.Period = stringPtr(period)
	e.Hours = floatPtr(hours)
	e.Percent = floatPtr(percent)
	return e, nil
}
