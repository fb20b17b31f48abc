package database

import "context"

const (
	deleteOrphanTimes = `DELETE FROM section_times
		WHERE section_id NOT IN (SELECT id FROM sections)`
	deleteCourselessSectionTimes = `DELETE FROM section_times
		WHERE section_id IN (SELECT id FROM sections WHERE course_id NOT IN (SELECT id FROM courses))`
	deleteCourselessSections = `DELETE FROM sections
		WHERE course_id NOT IN (SELECT id FROM courses)`
	deleteEmptySections = `DELETE FROM sections
		WHERE NOT EXISTS (SELECT 1 FROM section_times t WHERE t.section_id = sections.id)`
)

// SweepResult counts the rows each orphan rule removed.
type SweepResult struct {
	OrphanTimes        int64 `json:"orphan_times"`
	CourselessSections int64 `json:"courseless_sections"`
	CourselessTimes    int64 `json:"courseless_times"`
	EmptySections      int64 `json:"empty_sections"`
}

// Total is the number of rows removed across all rules.
func (r SweepResult) Total() int64 {
	return r.OrphanTimes + r.CourselessSections + r.CourselessTimes + r.EmptySections
}

// SweepOrphans removes rows that no valid parent owns: times without a
// section, sections whose course is gone (times first, so foreign keys hold),
// then sections left without any time. Valid rows are never matched. Run it
// inside one transaction.
func SweepOrphans(ctx context.Context, q Querier) (SweepResult, error) {
	var (
		result SweepResult
		err    error
	)

	if result.OrphanTimes, err = execCount(ctx, q, deleteOrphanTimes); err != nil {
		return result, err
	}
	if result.CourselessTimes, err = execCount(ctx, q, deleteCourselessSectionTimes); err != nil {
		return result, err
	}
	if result.CourselessSections, err = execCount(ctx, q, deleteCourselessSections); err != nil {
		return result, err
	}
	if result.EmptySections, err = execCount(ctx, q, deleteEmptySections); err != nil {
		return result, err
	}
	return result, nil
}

func execCount(ctx context.Context, q Querier, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
