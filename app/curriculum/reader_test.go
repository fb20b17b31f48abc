package curriculum_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isina-nej/unipath/app/curriculum"
)

func seedSections(t *testing.T, svc *curriculum.Service, courseID int64, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		exam := fmt.Sprintf("2025-11-%02dT09:00:00", i+1)
		id, err := svc.CreateSection(context.Background(), courseID, curriculum.SectionInput{
			Capacity:     10 + i,
			ExamDatetime: &exam,
			Times:        []curriculum.TimeInput{slot("mon", "08:00", "09:00"), slot("mon", "07:00", "08:00")},
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestListSections_PagesPartition(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	seedSections(t, svc, 2, 7)
	seedSections(t, svc, 1, 8)

	first, err := svc.ListSections(ctx, curriculum.ListParams{Page: 1, PerPage: 10})
	require.NoError(t, err)
	second, err := svc.ListSections(ctx, curriculum.ListParams{Page: 2, PerPage: 10})
	require.NoError(t, err)

	assert.Equal(t, 15, first.Total)
	assert.Equal(t, 2, first.TotalPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrev)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrev)
	require.Len(t, first.Items, 10)
	require.Len(t, second.Items, 5)

	seen := map[int64]bool{}
	var prevCourse int64
	var prevExam string
	for _, sec := range append(first.Items, second.Items...) {
		assert.False(t, seen[sec.ID], "section %d listed twice", sec.ID)
		seen[sec.ID] = true

		require.NotNil(t, sec.ExamDatetime)
		if sec.CourseID == prevCourse {
			assert.Less(t, prevExam, *sec.ExamDatetime)
		} else {
			assert.Less(t, prevCourse, sec.CourseID)
		}
		prevCourse, prevExam = sec.CourseID, *sec.ExamDatetime

		require.Len(t, sec.Times, 2)
		assert.Equal(t, "07:00", sec.Times[0].StartTime)
	}
	assert.Len(t, seen, 15)
}

func TestListSections_Clamping(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	seedSections(t, svc, 1, 3)

	page, err := svc.ListSections(ctx, curriculum.ListParams{Page: -4, PerPage: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.PerPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 1)

	page, err = svc.ListSections(ctx, curriculum.ListParams{Page: 1, PerPage: 500})
	require.NoError(t, err)
	assert.Equal(t, curriculum.MaxPerPage, page.PerPage)
	assert.Len(t, page.Items, 3)

	page, err = svc.ListSections(ctx, curriculum.ListParams{Page: 9, PerPage: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestListSections_HugePage(t *testing.T) {
	svc, _ := newService(t)
	seedSections(t, svc, 1, 3)

	huge := math.MaxInt/10 + 2
	page, err := svc.ListSections(context.Background(), curriculum.ListParams{Page: huge, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, huge, page.Page)
	assert.Equal(t, 3, page.Total)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestListSections_CourseFilter(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	seedSections(t, svc, 1, 2)
	want := seedSections(t, svc, 2, 3)

	course := int64(2)
	page, err := svc.ListSections(ctx, curriculum.ListParams{Page: 1, PerPage: 10, CourseID: &course})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.TotalPages)

	var got []int64
	for _, sec := range page.Items {
		got = append(got, sec.ID)
	}
	assert.Equal(t, want, got)
}

func TestListSections_Empty(t *testing.T) {
	svc, _ := newService(t)

	page, err := svc.ListSections(context.Background(), curriculum.ListParams{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Zero(t, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}
