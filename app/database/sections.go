package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/isina-nej/unipath/app/models"
)

// sectionOrder is shared by every section listing so paging and the
// aggregate snapshot agree; id breaks ties so pages never overlap.
const sectionOrder = ` ORDER BY course_id, exam_datetime, id`

const (
	selectSections = `SELECT id, course_id, exam_datetime, capacity, instructor_name, description FROM sections`
	getSection     = selectSections + ` WHERE id = $1`
	lockSection    = `SELECT id FROM sections WHERE id = $1`
	insertSection  = `INSERT INTO sections (course_id, exam_datetime, capacity, instructor_name, description)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	updateSection = `UPDATE sections SET exam_datetime = $1, capacity = $2, instructor_name = $3, description = $4
		WHERE id = $5`
	deleteSection = `DELETE FROM sections WHERE id = $1`
	countSections = `SELECT COUNT(*) FROM sections`

	selectSectionTimes = `SELECT id, section_id, day, start_time, end_time, location FROM section_times`
	deleteSectionTimes = `DELETE FROM section_times WHERE section_id = $1`
	insertSectionTimes = `INSERT INTO section_times (section_id, day, start_time, end_time, location) VALUES `
)

// SectionFilter narrows section listings. A nil CourseID means every course.
type SectionFilter struct {
	CourseID *int64
}

func (f SectionFilter) where(args []any) (string, []any) {
	if f.CourseID == nil {
		return "", args
	}
	args = append(args, *f.CourseID)
	return fmt.Sprintf(" WHERE course_id = $%d", len(args)), args
}

// GetSection returns the section row without its times, or sql.ErrNoRows.
func GetSection(ctx context.Context, q Querier, id int64) (*models.Section, error) {
	return scanSection(q.QueryRowContext(ctx, getSection, id))
}

// LockSection checks the section exists and, where the dialect supports it,
// holds its row until the surrounding transaction ends.
func (s *Store) LockSection(ctx context.Context, q Querier, id int64) (bool, error) {
	var got int64
	err := q.QueryRowContext(ctx, lockSection+s.Dialect.LockSuffix, id).Scan(&got)
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertSection stores the section row and returns its generated id.
func InsertSection(ctx context.Context, q Querier, sec models.Section) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, insertSection,
		sec.CourseID, examArg(sec.ExamDatetime), sec.Capacity, sec.InstructorName, sec.Description,
	).Scan(&id)
	return id, err
}

// UpdateSection rewrites the mutable columns; course_id is never changed.
func UpdateSection(ctx context.Context, q Querier, sec models.Section) (int64, error) {
	res, err := q.ExecContext(ctx, updateSection,
		examArg(sec.ExamDatetime), sec.Capacity, sec.InstructorName, sec.Description, sec.ID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func DeleteSection(ctx context.Context, q Querier, id int64) (int64, error) {
	res, err := q.ExecContext(ctx, deleteSection, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountSections counts the sections matching filter.
func CountSections(ctx context.Context, q Querier, filter SectionFilter) (int, error) {
	where, args := filter.where(nil)
	var total int
	if err := q.QueryRowContext(ctx, countSections+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// ListSections returns section rows (without times) in listing order. A
// limit of zero returns every matching row.
func ListSections(ctx context.Context, q Querier, filter SectionFilter, limit, offset int) ([]models.Section, error) {
	where, args := filter.where(nil)
	query := selectSections + where + sectionOrder
	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []models.Section{}
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, *sec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sections, nil
}

// InsertSectionTimes writes all times for one section in a single statement.
func InsertSectionTimes(ctx context.Context, q Querier, sectionID int64, times []models.SectionTime) error {
	if len(times) == 0 {
		return nil
	}

	const cols = 5
	tuples := make([]string, 0, len(times))
	args := make([]any, 0, len(times)*cols)
	for i, t := range times {
		tuples = append(tuples, "("+placeholders(i*cols+1, cols)+")")
		args = append(args, sectionID, t.Day, t.StartTime, t.EndTime, t.Location)
	}

	_, err := q.ExecContext(ctx, insertSectionTimes+strings.Join(tuples, ", "), args...)
	return err
}

// DeleteSectionTimes removes every time row of a section and reports how many went.
func DeleteSectionTimes(ctx context.Context, q Querier, sectionID int64) (int64, error) {
	res, err := q.ExecContext(ctx, deleteSectionTimes, sectionID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListSectionTimes returns time rows grouped by section id. A nil sectionIDs
// loads every row; an empty non-nil slice loads none. Rows come back in
// insertion order; callers decide the display order.
func ListSectionTimes(ctx context.Context, q Querier, sectionIDs []int64) (map[int64][]models.SectionTime, error) {
	grouped := map[int64][]models.SectionTime{}
	if sectionIDs != nil && len(sectionIDs) == 0 {
		return grouped, nil
	}

	query := selectSectionTimes
	args := make([]any, 0, len(sectionIDs))
	if sectionIDs != nil {
		for _, id := range sectionIDs {
			args = append(args, id)
		}
		query += " WHERE section_id IN (" + placeholders(1, len(sectionIDs)) + ")"
	}
	query += " ORDER BY id"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t models.SectionTime
		if err := rows.Scan(&t.ID, &t.SectionID, &t.Day, &t.StartTime, &t.EndTime, &t.Location); err != nil {
			return nil, err
		}
		grouped[t.SectionID] = append(grouped[t.SectionID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grouped, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSection(row rowScanner) (*models.Section, error) {
	var (
		sec  models.Section
		exam sql.NullString
	)
	if err := row.Scan(&sec.ID, &sec.CourseID, &exam, &sec.Capacity, &sec.InstructorName, &sec.Description); err != nil {
		return nil, err
	}
	if exam.Valid {
		v := exam.String
		sec.ExamDatetime = &v
	}
	sec.Times = []models.SectionTime{}
	return &sec, nil
}

// examArg stores a missing or blank exam datetime as NULL.
func examArg(exam *string) any {
	if exam == nil || strings.TrimSpace(*exam) == "" {
		return nil
	}
	return strings.TrimSpace(*exam)
}
