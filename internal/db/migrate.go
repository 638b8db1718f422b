package db

import "fmt"

// Migrate creates the plans and timecards tables for the pool's dialect.
// Statements are idempotent and run on every start.
func Migrate(d *DB) error {
	stmts := sqliteMigrations
	if d.Dialect == DialectPostgres {
		stmts = postgresMigrations
	}
	for i, stmt := range stmts {
		if _, err := d.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		plan_date          TEXT NOT NULL,
		planner            TEXT NOT NULL,
		project            TEXT NOT NULL,
		task               TEXT,
		executor           TEXT NOT NULL,
		deadline           TEXT,
		is_backlog         TEXT,
		planning_period    TEXT,
		planned_hours      REAL,
		perc_of_completion REAL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_date_planner ON plans(plan_date, planner)`,

	`CREATE TABLE IF NOT EXISTS timecards (
		id                          INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_date                  TEXT NOT NULL,
		planner                     TEXT,
		executor                    TEXT,
		project                     TEXT NOT NULL,
		task                        TEXT,
		action                      TEXT,
		comment                     TEXT,
		hours                       REAL,
		perc_of_completion_executor REAL,
		perc_of_completion_planner  REAL,
		entry_type                  TEXT NOT NULL
		                            CHECK(entry_type IN ('timecard','plan_vs_actual'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_timecards_date_executor ON timecards(entry_date, executor, entry_type)`,
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id                 BIGSERIAL PRIMARY KEY,
		plan_date          DATE NOT NULL,
		planner            TEXT NOT NULL,
		project            TEXT NOT NULL,
		task               TEXT,
		executor           TEXT NOT NULL,
		deadline           DATE,
		is_backlog         TEXT,
		planning_period    TEXT,
		planned_hours      DOUBLE PRECISION,
		perc_of_completion DOUBLE PRECISION
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_date_planner ON plans(plan_date, planner)`,

	`CREATE TABLE IF NOT EXISTS timecards (
		id                          BIGSERIAL PRIMARY KEY,
		entry_date                  DATE NOT NULL,
		planner                     TEXT,
		executor                    TEXT,
		project                     TEXT NOT NULL,
		task                        TEXT,
		action                      TEXT,
		comment                     TEXT,
		hours                       DOUBLE PRECISION,
		perc_of_completion_executor DOUBLE PRECISION,
		perc_of_completion_planner  DOUBLE PRECISION,
		entry_type                  TEXT NOT NULL
		                            CHECK(entry_type IN ('timecard','plan_vs_actual'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_timecards_date_executor ON timecards(entry_date, executor, entry_type)`,
}
