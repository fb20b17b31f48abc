package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/isina-nej/unipath/app/models"
)

const (
	listCourses  = `SELECT id, name, units FROM courses ORDER BY id`
	getCourse    = `SELECT id, name, units FROM courses WHERE id = $1`
	courseExists = `SELECT COUNT(*) FROM courses WHERE id = $1`
	upsertCourse = `INSERT INTO courses (id, name, units) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, units = excluded.units`

	listPrerequisites = `SELECT course_id, prerequisite_1, prerequisite_2, prerequisite_3
		FROM course_prerequisites ORDER BY course_id`
	deletePrerequisites = `DELETE FROM course_prerequisites WHERE course_id = $1`
	insertPrerequisites = `INSERT INTO course_prerequisites (course_id, prerequisite_1, prerequisite_2, prerequisite_3)
		VALUES ($1, $2, $3, $4)`

	listCorequisites = `SELECT course_id, corequisite_1, corequisite_2, corequisite_3
		FROM course_corequisites ORDER BY course_id`
	deleteCorequisites = `DELETE FROM course_corequisites WHERE course_id = $1`
	insertCorequisites = `INSERT INTO course_corequisites (course_id, corequisite_1, corequisite_2, corequisite_3)
		VALUES ($1, $2, $3, $4)`

	listRequirements  = `SELECT course_id, min_passed_units FROM course_requirements ORDER BY course_id`
	upsertRequirement = `INSERT INTO course_requirements (course_id, min_passed_units) VALUES ($1, $2)
		ON CONFLICT (course_id) DO UPDATE SET min_passed_units = excluded.min_passed_units`
	deleteRequirement = `DELETE FROM course_requirements WHERE course_id = $1`
)

// ListCourses returns every course ordered by ascending id.
func ListCourses(ctx context.Context, q Querier) ([]models.Course, error) {
	rows, err := q.QueryContext(ctx, listCourses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Units); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetCourse returns sql.ErrNoRows when the course does not exist.
func GetCourse(ctx context.Context, q Querier, id int64) (*models.Course, error) {
	c := &models.Course{}
	if err := q.QueryRowContext(ctx, getCourse, id).Scan(&c.ID, &c.Name, &c.Units); err != nil {
		return nil, err
	}
	return c, nil
}

func CourseExists(ctx context.Context, q Querier, id int64) (bool, error) {
	var n int
	if err := q.QueryRowContext(ctx, courseExists, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func UpsertCourse(ctx context.Context, q Querier, c models.Course) error {
	_, err := q.ExecContext(ctx, upsertCourse, c.ID, c.Name, c.Units)
	return err
}

// ListRequisiteLinks returns the rows of one link table ordered by owning course id.
func ListRequisiteLinks(ctx context.Context, q Querier, kind models.RequisiteKind) ([]models.RequisiteLink, error) {
	query, err := linkQuery(kind, listPrerequisites, listCorequisites)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []models.RequisiteLink{}
	for rows.Next() {
		var (
			link       models.RequisiteLink
			s1, s2, s3 sql.NullInt64
		)
		if err := rows.Scan(&link.CourseID, &s1, &s2, &s3); err != nil {
			return nil, err
		}
		link.Slot1 = nullableID(s1)
		link.Slot2 = nullableID(s2)
		link.Slot3 = nullableID(s3)
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return links, nil
}

// ReplaceRequisiteLink swaps the link row owned by link.CourseID. An all-empty
// link just removes the row.
func ReplaceRequisiteLink(ctx context.Context, q Querier, kind models.RequisiteKind, link models.RequisiteLink) error {
	del, err := linkQuery(kind, deletePrerequisites, deleteCorequisites)
	if err != nil {
		return err
	}
	ins, _ := linkQuery(kind, insertPrerequisites, insertCorequisites)

	if _, err := q.ExecContext(ctx, del, link.CourseID); err != nil {
		return err
	}
	if link.IsEmpty() {
		return nil
	}
	_, err = q.ExecContext(ctx, ins, link.CourseID, idArg(link.Slot1), idArg(link.Slot2), idArg(link.Slot3))
	return err
}

// ListCourseRequirements returns min_passed_units keyed by course id.
func ListCourseRequirements(ctx context.Context, q Querier) (map[int64]int, error) {
	rows, err := q.QueryContext(ctx, listRequirements)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := map[int64]int{}
	for rows.Next() {
		var r models.CourseRequirement
		if err := rows.Scan(&r.CourseID, &r.MinPassedUnits); err != nil {
			return nil, err
		}
		reqs[r.CourseID] = r.MinPassedUnits
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}

// SetCourseRequirement stores the requirement, or clears it when minPassedUnits is nil.
func SetCourseRequirement(ctx context.Context, q Querier, courseID int64, minPassedUnits *int) error {
	if minPassedUnits == nil {
		_, err := q.ExecContext(ctx, deleteRequirement, courseID)
		return err
	}
	_, err := q.ExecContext(ctx, upsertRequirement, courseID, *minPassedUnits)
	return err
}

func linkQuery(kind models.RequisiteKind, prereq, coreq string) (string, error) {
	switch kind {
	case models.Prerequisite:
		return prereq, nil
	case models.Corequisite:
		return coreq, nil
	default:
		return "", fmt.Errorf("unknown requisite kind %q", kind)
	}
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func idArg(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
