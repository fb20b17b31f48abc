package curriculum

import (
	"context"
	"strconv"
	"time"

	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/metrics"
	"github.com/isina-nej/unipath/app/models"
)

// CourseSnapshot is everything known about one course.
type CourseSnapshot struct {
	Course                models.Course    `json:"course"`
	MinPassedUnits        *int             `json:"min_passed_units,omitempty"`
	Prerequisites         []CourseRef      `json:"prerequisites"`
	Corequisites          []CourseRef      `json:"corequisites"`
	Sections              []models.Section `json:"sections"`
	DependentCourses      []CourseRef      `json:"dependent_courses"`
	CorequisiteDependents []CourseRef      `json:"corequisite_dependents"`
}

// RawData is the flat row set a snapshot was built from.
type RawData struct {
	Courses       []models.Course        `json:"courses"`
	Prerequisites []models.RequisiteLink `json:"prerequisites"`
	Corequisites  []models.RequisiteLink `json:"corequisites"`
	Sections      []models.Section       `json:"sections"`
}

// Snapshot is the denormalized read view: one entry per course in ascending
// id order plus the raw rows.
type Snapshot struct {
	Courses []CourseSnapshot `json:"courses"`
	Raw     RawData          `json:"raw_data"`
}

// CourseMap keys the course entries by decimal course id.
func (s *Snapshot) CourseMap() map[string]CourseSnapshot {
	m := make(map[string]CourseSnapshot, len(s.Courses))
	for _, c := range s.Courses {
		m[strconv.FormatInt(c.Course.ID, 10)] = c
	}
	return m
}

// Aggregate reads every row in one transaction and composes the snapshot.
// Sections keep the (course_id, exam_datetime) listing order and their times
// are ordered by (day, start_time).
func (s *Service) Aggregate(ctx context.Context) (*Snapshot, error) {
	defer func(start time.Time) { metrics.AggregateDuration.Observe(time.Since(start).Seconds()) }(time.Now())

	var (
		rows     graphRows
		sections []models.Section
		reqs     map[int64]int
	)
	err := s.inTx(ctx, "aggregate", func(q database.Querier) error {
		var err error
		if rows, err = loadGraphRows(ctx, q); err != nil {
			return err
		}
		if reqs, err = database.ListCourseRequirements(ctx, q); err != nil {
			return err
		}
		if sections, err = database.ListSections(ctx, q, database.SectionFilter{}, 0, 0); err != nil {
			return err
		}
		times, err := database.ListSectionTimes(ctx, q, nil)
		if err != nil {
			return err
		}
		for i := range sections {
			sections[i].Times = sortedTimes(times[sections[i].ID])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g := BuildGraph(rows.courses, rows.prereqs, rows.coreqs)
	metrics.GraphCourses.Set(float64(len(rows.courses)))
	return compose(g, reqs, sections, rows), nil
}

func compose(g *Graph, reqs map[int64]int, sections []models.Section, rows graphRows) *Snapshot {
	byCourse := make(map[int64][]models.Section)
	for _, sec := range sections {
		byCourse[sec.CourseID] = append(byCourse[sec.CourseID], sec)
	}

	snap := &Snapshot{
		Courses: make([]CourseSnapshot, 0, len(rows.courses)),
		Raw: RawData{
			Courses:       rows.courses,
			Prerequisites: rows.prereqs,
			Corequisites:  rows.coreqs,
			Sections:      sections,
		},
	}
	for _, c := range g.Courses() {
		node := g.Node(c)
		entry := CourseSnapshot{
			Course:                c,
			Prerequisites:         node.Prerequisites,
			Corequisites:          node.Corequisites,
			Sections:              byCourse[c.ID],
			DependentCourses:      node.Dependents,
			CorequisiteDependents: node.CorequisiteDependents,
		}
		if entry.Sections == nil {
			entry.Sections = []models.Section{}
		}
		if units, ok := reqs[c.ID]; ok {
			entry.MinPassedUnits = &units
		}
		snap.Courses = append(snap.Courses, entry)
	}
	return snap
}
