package database

import (
	"context"

	"github.com/isina-nej/unipath/app/ctxlog"
	"github.com/isina-nej/unipath/app/models"
)

type seedSection struct {
	section models.Section
	times   []models.SectionTime
}

func strPtr(s string) *string { return &s }

var sampleCourses = []models.Course{
	{ID: 101, Name: "Physics I", Units: 3},
	{ID: 102, Name: "Calculus I", Units: 3},
	{ID: 107, Name: "Fundamentals of Computer Science", Units: 3},
	{ID: 201, Name: "Advanced Programming", Units: 3},
	{ID: 205, Name: "Calculus II", Units: 3},
	{ID: 301, Name: "Data Structures", Units: 3},
	{ID: 302, Name: "Logic Circuits", Units: 3},
	{ID: 304, Name: "Physics II Lab", Units: 1},
	{ID: 401, Name: "Algorithm Design", Units: 3},
	{ID: 503, Name: "Database Systems", Units: 3},
}

var samplePrerequisites = []models.RequisiteLink{
	models.NewRequisiteLink(201, 107),
	models.NewRequisiteLink(205, 102),
	models.NewRequisiteLink(301, 201, 205),
	models.NewRequisiteLink(302, 107),
	models.NewRequisiteLink(401, 301),
	models.NewRequisiteLink(503, 301),
}

var sampleCorequisites = []models.RequisiteLink{
	models.NewRequisiteLink(304, 101),
}

var sampleSections = []seedSection{
	{
		section: models.Section{CourseID: 102, ExamDatetime: strPtr("2025-10-14T08:00:00"), Capacity: 40, InstructorName: "Dr. Smith", Description: "Calculus I"},
		times: []models.SectionTime{
			{Day: "mon", StartTime: "08:00", EndTime: "09:30", Location: "Room 101"},
			{Day: "wed", StartTime: "08:00", EndTime: "09:30", Location: "Room 101"},
		},
	},
	{
		section: models.Section{CourseID: 301, ExamDatetime: strPtr("2025-10-28T10:00:00"), Capacity: 40, Description: "Data Structures"},
		times: []models.SectionTime{
			{Day: "sat", StartTime: "10:00", EndTime: "12:00"},
			{Day: "mon", StartTime: "10:00", EndTime: "12:00"},
		},
	},
	{
		section: models.Section{CourseID: 304, Capacity: 20, Description: "Physics II Lab"},
		times: []models.SectionTime{
			{Day: "sun", StartTime: "14:00", EndTime: "16:00", Location: "Lab 2"},
		},
	},
}

// SeedSample loads a small catalog with links and sections into an empty
// database. Courses are upserted; sections are always added.
func SeedSample(ctx context.Context, s *Store) error {
	logger := ctxlog.FromContext(ctx)

	err := s.WithTx(ctx, func(q Querier) error {
		for _, c := range sampleCourses {
			if err := UpsertCourse(ctx, q, c); err != nil {
				return err
			}
		}
		for _, link := range samplePrerequisites {
			if err := ReplaceRequisiteLink(ctx, q, models.Prerequisite, link); err != nil {
				return err
			}
		}
		for _, link := range sampleCorequisites {
			if err := ReplaceRequisiteLink(ctx, q, models.Corequisite, link); err != nil {
				return err
			}
		}
		minUnits := 60
		if err := SetCourseRequirement(ctx, q, 503, &minUnits); err != nil {
			return err
		}
		for _, seed := range sampleSections {
			id, err := InsertSection(ctx, q, seed.section)
			if err != nil {
				return err
			}
			if err := InsertSectionTimes(ctx, q, id, seed.times); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to seed sample data", "error", err)
		return err
	}

	logger.Info("Sample data populated successfully", "courses", len(sampleCourses), "sections", len(sampleSections))
	return nil
}
