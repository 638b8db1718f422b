package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/planfact/internal/db"
	"github.com/alexanderramin/planfact/internal/domain"
)

// SQLTimecardRepo implements TimecardRepo on any DBTX bound to its dialect.
type SQLTimecardRepo struct {
	db db.DBTX
}

// NewSQLTimecardRepo creates a new SQLTimecardRepo.
func NewSQLTimecardRepo(conn db.DBTX) *SQLTimecardRepo {
	return &SQLTimecardRepo{db: conn}
}

const timecardColumns = `entry_date, planner, executor, project, task, action, comment,
	hours, perc_of_completion_executor, perc_of_completion_planner, entry_type`

func (r *SQLTimecardRepo) DeleteTimecards(ctx context.Context, week domain.Week, executor *string) (int64, error) {
	query := `DELETE FROM timecards
		WHERE entry_date BETWEEN ? AND ? AND entry_type = ? AND executor = ?`
	args := []any{dateValue(week.Start), dateValue(week.End), string(domain.EntryTimecard)}
	if executor == nil {
		query = `DELETE FROM timecards
			WHERE entry_date BETWEEN ? AND ? AND entry_type = ? AND executor IS NULL`
	} else {
		args = append(args, *executor)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting timecards for %s: %w", week.Label(), err)
	}
	return affected(res), nil
}

func (r *SQLTimecardRepo) DeletePlanVsActual(ctx context.Context, week domain.Week) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM timecards
		WHERE entry_date = ? AND entry_type = ?
		AND hours IS NULL AND perc_of_completion_planner IS NOT NULL`,
		dateValue(week.End), string(domain.EntryPlanVsActual))
	if err != nil {
		return 0, fmt.Errorf("deleting plan-vs-actual for %s: %w", week.Label(), err)
	}
	return affected(res), nil
}

func (r *SQLTimecardRepo) InsertMany(ctx context.Context, entries []domain.TimecardEntry) (int64, error) {
	query := `INSERT INTO timecards (` + timecardColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var total int64
	for i, e := range entries {
		if !e.EntryType.Valid() {
			return total, fmt.Errorf("inserting timecard row %d: invalid entry type %q", i+1, e.EntryType)
		}
		res, err := r.db.ExecContext(ctx, query,
			dateValue(e.EntryDate),
			nullableString(e.Planner),
			nullableString(e.Executor),
			e.Project,
			nullableString(e.Task),
			nullableString(e.Action),
			nullableString(e.Comment),
			nullableFloat(e.Hours),
			nullableFloat(e.PercentExecutor),
			nullableFloat(e.PercentPlanner),
			string(e.EntryType),
		)
		if err != nil {
			return total, fmt.Errorf("inserting timecard row %d: %w", i+1, err)
		}
		total += affected(res)
	}
	return total, nil
}

func (r *SQLTimecardRepo) ListByRange(ctx context.Context, from, to time.Time) ([]domain.TimecardEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+timecardColumns+` FROM timecards
		WHERE entry_date BETWEEN ? AND ? ORDER BY entry_date, id`,
		dateValue(from), dateValue(to))
	if err != nil {
		return nil, fmt.Errorf("listing timecards: %w", err)
	}
	defer rows.Close()

	var out []domain.TimecardEntry
	for rows.Next() {
		e, err := scanTimecard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanTimecard(rows *sql.Rows) (domain.TimecardEntry, error) {
	var (
		e                                domain.TimecardEntry
		entryDate, entryType             string
		planner, executor                sql.NullString
		task, action, comment            sql.NullString
		hours, percExecutor, percPlanner sql.NullFloat64
	)
	if err := rows.Scan(&entryDate, &planner, &executor, &e.Project, &task, &action, &comment,
		&hours, &percExecutor, &percPlanner, &entryType); err != nil {
		return e, fmt.Errorf("scanning timecard: %w", err)
	}

	var err error
	if e.EntryDate, err = parseDate(entryDate); err != nil {
		return e, fmt.Errorf("parsing entry_date: %w", err)
	}
	e.Planner = stringPtr(planner)
	e.Executor = stringPtr(executor)
	e.Task = stringPtr(task)
	e.Action = stringPtr(action)
	e.Comment = stringPtr(comment)
	e.Hours = floatPtr(hours)
	e.PercentExecutor = floatPtr(percExecutor)
	e.PercentPlanner = floatPtr(percPlanner)
	e.EntryType = domain.EntryType(entryType)
	return e, nil
}
