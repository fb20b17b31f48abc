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

func exam(s string) *string { return &s }

func TestInsertAndGetSection(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()
	dbtest.Course(t, store, 1, "Calculus I", 3)

	id := dbtest.Section(t, store,
		models.Section{CourseID: 1, ExamDatetime: exam(" 2025-10-14T08:00:00 "), Capacity: 30, InstructorName: "Dr. Smith"},
		models.SectionTime{Day: "mon", StartTime: "08:00", EndTime: "09:30", Location: "Room 101"},
		models.SectionTime{Day: "wed", StartTime: "08:00", EndTime: "09:30", Location: "Room 101"},
	)

	sec, err := database.GetSection(ctx, store.DB, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sec.CourseID)
	require.NotNil(t, sec.ExamDatetime)
	assert.Equal(t, "2025-10-14T08:00:00", *sec.ExamDatetime)
	assert.Equal(t, 30, sec.Capacity)

	times, err := database.ListSectionTimes(ctx, store.DB, []int64{id})
	require.NoError(t, err)
	require.Len(t, times[id], 2)
	assert.Equal(t, "mon", times[id][0].Day)
	assert.Equal(t, id, times[id][1].SectionID)

	_, err = database.GetSection(ctx, store.DB, id+100)
	assert.True(t, database.IsNotFound(err))
}

func TestBlankExamDatetimeIsNull(t *testing.T) {
	store := dbtest.Open(t)
	dbtest.Course(t, store, 1, "Calculus I", 3)

	id := dbtest.Section(t, store, models.Section{CourseID: 1, ExamDatetime: exam("  "), Capacity: 1},
		models.SectionTime{Day: "mon", StartTime: "08:00", EndTime: "09:00"})

	sec, err := database.GetSection(context.Background(), store.DB, id)
	require.NoError(t, err)
	assert.Nil(t, sec.ExamDatetime)
}

func TestListSections_FilterAndPaging(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()
	dbtest.Course(t, store, 1, "Calculus I", 3)
	dbtest.Course(t, store, 2, "Physics I", 3)

	slot := models.SectionTime{Day: "mon", StartTime: "08:00", EndTime: "09:00"}
	b := dbtest.Section(t, store, models.Section{CourseID: 2, ExamDatetime: exam("2025-10-20"), Capacity: 1}, slot)
	a2 := dbtest.Section(t, store, models.Section{CourseID: 1, ExamDatetime: exam("2025-10-21"), Capacity: 1}, slot)
	a1 := dbtest.Section(t, store, models.Section{CourseID: 1, ExamDatetime: exam("2025-10-14"), Capacity: 1}, slot)

	all, err := database.ListSections(ctx, store.DB, database.SectionFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{a1, a2, b}, sectionIDs(all))

	page, err := database.ListSections(ctx, store.DB, database.SectionFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{b}, sectionIDs(page))

	course := int64(1)
	filtered, err := database.ListSections(ctx, store.DB, database.SectionFilter{CourseID: &course}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{a2}, sectionIDs(filtered))

	total, err := database.CountSections(ctx, store.DB, database.SectionFilter{CourseID: &course})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestUpdateAndDeleteSection(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()
	dbtest.Course(t, store, 1, "Calculus I", 3)
	id := dbtest.Section(t, store, models.Section{CourseID: 1, Capacity: 10},
		models.SectionTime{Day: "mon", StartTime: "08:00", EndTime: "09:00"})

	n, err := database.UpdateSection(ctx, store.DB, models.Section{ID: id, CourseID: 99, Capacity: 25, InstructorName: "Dr. Jones"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	sec, err := database.GetSection(ctx, store.DB, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sec.CourseID, "course_id is immutable")
	assert.Equal(t, 25, sec.Capacity)
	assert.Equal(t, "Dr. Jones", sec.InstructorName)

	removed, err := database.DeleteSectionTimes(ctx, store.DB, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	n, err = database.DeleteSection(ctx, store.DB, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 0, dbtest.Count(t, store, "sections"))
}

func TestLockSection(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()
	dbtest.Course(t, store, 1, "Calculus I", 3)
	id := dbtest.Section(t, store, models.Section{CourseID: 1, Capacity: 10},
		models.SectionTime{Day: "mon", StartTime: "08:00", EndTime: "09:00"})

	err := store.WithTx(ctx, func(q database.Querier) error {
		ok, err := store.LockSection(ctx, q, id)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.LockSection(ctx, q, id+1)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestListSectionTimes_EmptyAndAll(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()
	dbtest.Course(t, store, 1, "Calculus I", 3)
	dbtest.Section(t, store, models.Section{CourseID: 1, Capacity: 10},
		models.SectionTime{Day: "mon", StartTime: "08:00", EndTime: "09:00"})
	dbtest.Section(t, store, models.Section{CourseID: 1, Capacity: 10},
		models.SectionTime{Day: "tue", StartTime: "08:00", EndTime: "09:00"})

	none, err := database.ListSectionTimes(ctx, store.DB, []int64{})
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := database.ListSectionTimes(ctx, store.DB, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestConstraintViolation(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()

	_, err := database.InsertSection(ctx, store.DB, models.Section{CourseID: 42, Capacity: 1})
	require.Error(t, err)
	_, ok := database.ConstraintViolation(err)
	assert.True(t, ok, "foreign key failure should classify as a constraint violation: %v", err)

	dbtest.Course(t, store, 1, "Calculus I", 3)
	_, err = database.InsertSection(ctx, store.DB, models.Section{CourseID: 1, Capacity: -1})
	require.Error(t, err)
	_, ok = database.ConstraintViolation(err)
	assert.True(t, ok, "check failure should classify as a constraint violation: %v", err)

	_, ok = database.ConstraintViolation(context.Canceled)
	assert.False(t, ok)
}

func sectionIDs(sections []models.Section) []int64 {
	ids := make([]int64, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID)
	}
	return ids
}
