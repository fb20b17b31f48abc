// Package dbtest opens throwaway in-memory SQLite stores with the production
// schema for package tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/models"
)

type options struct {
	foreignKeys bool
}

// Option tweaks the store Open returns.
type Option func(*options)

// WithoutForeignKeys leaves foreign key enforcement off, the way a legacy
// SQLite file behaves, so tests can plant orphan rows.
func WithoutForeignKeys() Option {
	return func(o *options) { o.foreignKeys = false }
}

// Open returns a migrated in-memory store closed at test cleanup. The pool is
// pinned to one connection because every :memory: connection is its own database.
func Open(t testing.TB, opts ...Option) *database.Store {
	t.Helper()

	o := options{foreignKeys: true}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if o.foreignKeys {
		_, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON")
		require.NoError(t, err)
	}

	store, err := database.New(db, "sqlite")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(ctx, store))
	return store
}

// Course upserts a course row.
func Course(t testing.TB, s *database.Store, id int64, name string, units int) models.Course {
	t.Helper()
	c := models.Course{ID: id, Name: name, Units: units}
	require.NoError(t, database.UpsertCourse(context.Background(), s.DB, c))
	return c
}

// Prerequisites replaces the prerequisite slots of courseID.
func Prerequisites(t testing.TB, s *database.Store, courseID int64, ids ...int64) {
	t.Helper()
	link := models.NewRequisiteLink(courseID, ids...)
	require.NoError(t, database.ReplaceRequisiteLink(context.Background(), s.DB, models.Prerequisite, link))
}

// Corequisites replaces the corequisite slots of courseID.
func Corequisites(t testing.TB, s *database.Store, courseID int64, ids ...int64) {
	t.Helper()
	link := models.NewRequisiteLink(courseID, ids...)
	require.NoError(t, database.ReplaceRequisiteLink(context.Background(), s.DB, models.Corequisite, link))
}

// Section inserts a section row and its times directly, bypassing validation.
func Section(t testing.TB, s *database.Store, sec models.Section, times ...models.SectionTime) int64 {
	t.Helper()
	ctx := context.Background()
	id, err := database.InsertSection(ctx, s.DB, sec)
	require.NoError(t, err)
	require.NoError(t, database.InsertSectionTimes(ctx, s.DB, id, times))
	return id
}

// Count returns SELECT COUNT(*) for table.
func Count(t testing.TB, s *database.Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
