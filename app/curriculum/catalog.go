package curriculum

import (
	"context"
	"strings"

	"github.com/isina-nej/unipath/app/ctxlog"
	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/models"
)

// MaxLinkTargets is the number of slots a course has per requisite kind.
const MaxLinkTargets = 3

// ValidateLinkTargets rejects more ids than there are slots. Unknown and self
// references are accepted.
func ValidateLinkTargets(kind models.RequisiteKind, ids []int64) error {
	if kind != models.Prerequisite && kind != models.Corequisite {
		return invalid("kind", "must be %q or %q", models.Prerequisite, models.Corequisite)
	}
	if len(ids) > MaxLinkTargets {
		return invalid(string(kind)+"s", "at most %d course ids allowed, got %d", MaxLinkTargets, len(ids))
	}
	return nil
}

// CourseInput is the body of a course upsert.
type CourseInput struct {
	Name  string `json:"name"`
	Units int    `json:"units"`
}

// UpsertCourse creates the course or replaces its name and units.
func (s *Service) UpsertCourse(ctx context.Context, id int64, in CourseInput) (*models.Course, error) {
	if id <= 0 {
		return nil, invalid("id", "must be a positive integer")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if in.Units < 0 {
		return nil, invalid("units", "must be a non-negative integer, got %d", in.Units)
	}

	course := models.Course{ID: id, Name: name, Units: in.Units}
	err := s.inTx(ctx, "upsert_course", func(q database.Querier) error {
		return database.UpsertCourse(ctx, q, course)
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// GetCourse returns one course.
func (s *Service) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	c, err := database.GetCourse(ctx, s.store.DB, id)
	if database.IsNotFound(err) {
		return nil, &NotFoundError{Entity: "course", ID: id}
	}
	if err != nil {
		return nil, s.storeErr(ctx, "get_course", err)
	}
	return c, nil
}

// SetRequisites replaces the course's slots of one kind with ids, in order.
// An empty ids clears them.
func (s *Service) SetRequisites(ctx context.Context, courseID int64, kind models.RequisiteKind, ids []int64) error {
	if err := ValidateLinkTargets(kind, ids); err != nil {
		return err
	}

	err := s.inTx(ctx, "set_requisites", func(q database.Querier) error {
		ok, err := database.CourseExists(ctx, q, courseID)
		if err != nil {
			return err
		}
		if !ok {
			return &NotFoundError{Entity: "course", ID: courseID}
		}
		return database.ReplaceRequisiteLink(ctx, q, kind, models.NewRequisiteLink(courseID, ids...))
	})
	if err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("requisites replaced", "course_id", courseID, "kind", string(kind), "targets", ids)
	return nil
}

// SetRequirement stores the minimum passed units for a course; nil clears it.
func (s *Service) SetRequirement(ctx context.Context, courseID int64, minPassedUnits *int) error {
	if minPassedUnits != nil && *minPassedUnits < 0 {
		return invalid("min_passed_units", "must be a non-negative integer, got %d", *minPassedUnits)
	}

	return s.inTx(ctx, "set_requirement", func(q database.Querier) error {
		ok, err := database.CourseExists(ctx, q, courseID)
		if err != nil {
			return err
		}
		if !ok {
			return &NotFoundError{Entity: "course", ID: courseID}
		}
		return database.SetCourseRequirement(ctx, q, courseID, minPassedUnits)
	})
}
