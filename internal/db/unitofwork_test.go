package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/planfact/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (*db.DB, *db.SQLUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewUnitOfWork(database)
}

func countPlans(t *testing.T, database *db.DB, planner string) int {
	t.Helper()
	var n int
	err := database.Conn().QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM plans WHERE planner = ?`, planner).Scan(&n)
	require.NoError(t, err)
	return n
}

func insertPlan(ctx context.Context, tx db.DBTX, planner string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO plans (plan_date, planner, project, executor) VALUES (?, ?, ?, ?)`,
		"2024-01-01", planner, "P", "E")
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertPlan(ctx, tx, "Ivanov")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countPlans(t, database, "Ivanov"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertPlan(ctx, tx, "Petrov"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.Equal(t, 0, countPlans(t, database, "Petrov"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openTestDB(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertPlan(ctx, tx, "Sidorov")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countPlans(t, database, "Sidorov"))
}

func TestMigrate_Idempotent(t *testing.T) {
	database, _ := openTestDB(t)
	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.Migrate(database))
}

func TestMigrate_RejectsUnknownEntryType(t *testing.T) {
	database, _ := openTestDB(t)
	_, err := database.Exec(`INSERT INTO timecards (entry_date, project, entry_type) VALUES ('2024-01-01', 'P', 'bogus')`)
	require.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := db.Open(context.Background(), "oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
