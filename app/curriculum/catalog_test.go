package curriculum_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isina-nej/unipath/app/curriculum"
	"github.com/isina-nej/unipath/app/models"
)

func TestUpsertCourse(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	c, err := svc.UpsertCourse(ctx, 10, curriculum.CourseInput{Name: "  Databases ", Units: 3})
	require.NoError(t, err)
	assert.Equal(t, "Databases", c.Name)

	_, err = svc.UpsertCourse(ctx, 10, curriculum.CourseInput{Name: "Databases I", Units: 4})
	require.NoError(t, err)

	got, err := svc.GetCourse(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, models.Course{ID: 10, Name: "Databases I", Units: 4}, *got)

	_, err = svc.GetCourse(ctx, 11)
	assert.True(t, errors.Is(err, curriculum.ErrNotFound))

	for _, in := range []struct {
		id int64
		c  curriculum.CourseInput
	}{
		{0, curriculum.CourseInput{Name: "x"}},
		{12, curriculum.CourseInput{Name: " "}},
		{12, curriculum.CourseInput{Name: "x", Units: -1}},
	} {
		_, err := svc.UpsertCourse(ctx, in.id, in.c)
		assert.True(t, errors.Is(err, curriculum.ErrValidation), "%+v", in)
	}
}

func TestSetRequisites(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	err := svc.SetRequisites(ctx, 1, models.Prerequisite, []int64{2, 3, 4, 5})
	assert.True(t, errors.Is(err, curriculum.ErrValidation))

	err = svc.SetRequisites(ctx, 1, models.RequisiteKind("antirequisite"), []int64{2})
	assert.True(t, errors.Is(err, curriculum.ErrValidation))

	err = svc.SetRequisites(ctx, 77, models.Prerequisite, []int64{1})
	assert.True(t, errors.Is(err, curriculum.ErrNotFound))

	require.NoError(t, svc.SetRequisites(ctx, 2, models.Prerequisite, []int64{2, 999}))
	g, err := svc.BuildGraph(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 999}, g.Prerequisites(2))
	assert.Equal(t, []int64{2}, g.Dependents(2))

	require.NoError(t, svc.SetRequisites(ctx, 2, models.Prerequisite, nil))
	g, err = svc.BuildGraph(ctx)
	require.NoError(t, err)
	assert.Empty(t, g.Prerequisites(2))
}

func TestSetRequirement(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	neg := -5
	assert.True(t, errors.Is(svc.SetRequirement(ctx, 1, &neg), curriculum.ErrValidation))

	units := 30
	assert.True(t, errors.Is(svc.SetRequirement(ctx, 99, &units), curriculum.ErrNotFound))
	require.NoError(t, svc.SetRequirement(ctx, 1, &units))
	require.NoError(t, svc.SetRequirement(ctx, 1, nil))

	snap, err := svc.Aggregate(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.Courses[0].MinPassedUnits)
}
