package database_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/database/dbtest"
	"github.com/isina-nej/unipath/app/models"
)

func TestDialectFor(t *testing.T) {
	pg, err := database.DialectFor("PostgreSQL")
	require.NoError(t, err)
	assert.Equal(t, "postgres", pg.DriverName)
	assert.Equal(t, " FOR UPDATE", pg.LockSuffix)

	lite, err := database.DialectFor("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", lite.DriverName)
	assert.Empty(t, lite.LockSuffix)

	_, err = database.DialectFor("mysql")
	assert.Error(t, err)
}

func TestSchema_CurriculumTextIsUnbounded(t *testing.T) {
	for _, driver := range []string{"postgres", "sqlite"} {
		d, err := database.DialectFor(driver)
		require.NoError(t, err)
		for _, stmt := range d.Schema {
			if strings.Contains(stmt, "TABLE IF NOT EXISTS users") {
				continue
			}
			assert.NotContains(t, stmt, "VARCHAR", "%s: %s", driver, stmt)
		}
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	store := dbtest.Open(t)
	require.NoError(t, database.RunMigrations(context.Background(), store))
	assert.Equal(t, 0, dbtest.Count(t, store, "sections"))
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()

	err := store.WithTx(ctx, func(q database.Querier) error {
		return database.UpsertCourse(ctx, q, models.Course{ID: 1, Name: "Calculus I", Units: 3})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, dbtest.Count(t, store, "courses"))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(q database.Querier) error {
		if err := database.UpsertCourse(ctx, q, models.Course{ID: 1, Name: "Calculus I", Units: 3}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, dbtest.Count(t, store, "courses"))
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = store.WithTx(ctx, func(q database.Querier) error {
			if err := database.UpsertCourse(ctx, q, models.Course{ID: 1, Name: "Calculus I", Units: 3}); err != nil {
				return err
			}
			panic("mid-transaction")
		})
	})
	assert.Equal(t, 0, dbtest.Count(t, store, "courses"))
}
