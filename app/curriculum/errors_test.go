package curriculum_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isina-nej/unipath/app/curriculum"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New(`pq: insert or update on table "sections" violates foreign key constraint`)
	storeErr := fmt.Errorf("create: %w", &curriculum.StoreError{Op: "create_section", Err: cause})

	assert.ErrorIs(t, storeErr, curriculum.ErrStore)
	assert.ErrorIs(t, storeErr, cause)
	assert.NotErrorIs(t, storeErr, curriculum.ErrValidation)
	assert.NotContains(t, storeErr.Error(), "foreign key")

	vErr := &curriculum.ValidationError{Field: "capacity", Reason: "must be a non-negative integer, got -1"}
	assert.ErrorIs(t, vErr, curriculum.ErrValidation)
	assert.EqualError(t, vErr, "capacity: must be a non-negative integer, got -1")

	nfErr := &curriculum.NotFoundError{Entity: "section", ID: 9}
	assert.ErrorIs(t, nfErr, curriculum.ErrNotFound)
	assert.NotErrorIs(t, nfErr, curriculum.ErrStore)
	assert.EqualError(t, nfErr, "section 9 not found")
}
