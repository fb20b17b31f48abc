package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/database/dbtest"
	"github.com/isina-nej/unipath/app/models"
)

func TestUpsertCourse_UpdatesExisting(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()

	dbtest.Course(t, store, 2, "Physics I", 4)
	dbtest.Course(t, store, 1, "Calculus", 3)
	dbtest.Course(t, store, 1, "Calculus I", 4)

	courses, err := database.ListCourses(ctx, store.DB)
	require.NoError(t, err)
	assert.Equal(t, []models.Course{
		{ID: 1, Name: "Calculus I", Units: 4},
		{ID: 2, Name: "Physics I", Units: 4},
	}, courses)

	exists, err := database.CourseExists(ctx, store.DB, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = database.CourseExists(ctx, store.DB, 99)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = database.GetCourse(ctx, store.DB, 99)
	assert.True(t, database.IsNotFound(err))
}

func TestReplaceRequisiteLink(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()

	// Targets are stored as given, even when they point nowhere or at the owner.
	dbtest.Prerequisites(t, store, 10, 1, 999, 10)
	dbtest.Corequisites(t, store, 10, 2)

	prereqs, err := database.ListRequisiteLinks(ctx, store.DB, models.Prerequisite)
	require.NoError(t, err)
	require.Len(t, prereqs, 1)
	assert.Equal(t, []int64{1, 999, 10}, prereqs[0].Targets())

	dbtest.Prerequisites(t, store, 10, 3)
	prereqs, err = database.ListRequisiteLinks(ctx, store.DB, models.Prerequisite)
	require.NoError(t, err)
	require.Len(t, prereqs, 1)
	assert.Equal(t, []int64{3}, prereqs[0].Targets())
	assert.Nil(t, prereqs[0].Slot2)

	dbtest.Prerequisites(t, store, 10)
	prereqs, err = database.ListRequisiteLinks(ctx, store.DB, models.Prerequisite)
	require.NoError(t, err)
	assert.Empty(t, prereqs)

	coreqs, err := database.ListRequisiteLinks(ctx, store.DB, models.Corequisite)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, coreqs[0].Targets())

	_, err = database.ListRequisiteLinks(ctx, store.DB, models.RequisiteKind("antirequisite"))
	assert.Error(t, err)
}

func TestSetCourseRequirement(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()

	units := 60
	require.NoError(t, database.SetCourseRequirement(ctx, store.DB, 503, &units))
	reqs, err := database.ListCourseRequirements(ctx, store.DB)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{503: 60}, reqs)

	require.NoError(t, database.SetCourseRequirement(ctx, store.DB, 503, nil))
	reqs, err = database.ListCourseRequirements(ctx, store.DB)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestSeedSample(t *testing.T) {
	store := dbtest.Open(t)
	require.NoError(t, database.SeedSample(context.Background(), store))

	assert.Equal(t, 10, dbtest.Count(t, store, "courses"))
	assert.Equal(t, 3, dbtest.Count(t, store, "sections"))
	assert.Equal(t, 5, dbtest.Count(t, store, "section_times"))
}
