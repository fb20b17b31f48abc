package curriculum

import (
	"context"
	"strings"

	"github.com/isina-nej/unipath/app/ctxlog"
	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/metrics"
	"github.com/isina-nej/unipath/app/models"
)

// TimeInput is one weekly meeting slot as submitted by a caller.
type TimeInput struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
}

// SectionInput carries the mutable fields of a section together with its
// complete time-set. Times always replaces whatever the section had.
type SectionInput struct {
	Capacity       int         `json:"capacity"`
	InstructorName string      `json:"instructor_name"`
	Description    string      `json:"description"`
	ExamDatetime   *string     `json:"exam_datetime"`
	Times          []TimeInput `json:"times"`
}

// Validate checks the input without touching the store.
func (in SectionInput) Validate() error {
	if in.Capacity < 0 {
		return invalid("capacity", "must be a non-negative integer, got %d", in.Capacity)
	}
	if len(in.Times) == 0 {
		return invalid("times", "at least one meeting time is required")
	}
	for i, t := range in.Times {
		switch {
		case strings.TrimSpace(t.Day) == "":
			return invalid("times", "entry %d is missing day", i)
		case strings.TrimSpace(t.StartTime) == "":
			return invalid("times", "entry %d is missing start_time", i)
		case strings.TrimSpace(t.EndTime) == "":
			return invalid("times", "entry %d is missing end_time", i)
		}
	}
	return nil
}

func (in SectionInput) section(id, courseID int64) models.Section {
	return models.Section{
		ID:             id,
		CourseID:       courseID,
		ExamDatetime:   in.ExamDatetime,
		Capacity:       in.Capacity,
		InstructorName: in.InstructorName,
		Description:    in.Description,
	}
}

func (in SectionInput) times() []models.SectionTime {
	times := make([]models.SectionTime, 0, len(in.Times))
	for _, t := range in.Times {
		times = append(times, models.SectionTime{
			Day:       strings.TrimSpace(t.Day),
			StartTime: strings.TrimSpace(t.StartTime),
			EndTime:   strings.TrimSpace(t.EndTime),
			Location:  t.Location,
		})
	}
	return times
}

// CreateSection stores a section of courseID together with its times and
// returns the new section id. Nothing is written unless every row is.
func (s *Service) CreateSection(ctx context.Context, courseID int64, in SectionInput) (id int64, err error) {
	defer func() { metrics.SectionWritesTotal.WithLabelValues("create", metrics.Outcome(err)).Inc() }()

	if err := in.Validate(); err != nil {
		return 0, err
	}

	err = s.inTx(ctx, "create_section", func(q database.Querier) error {
		ok, err := database.CourseExists(ctx, q, courseID)
		if err != nil {
			return err
		}
		if !ok {
			return &NotFoundError{Entity: "course", ID: courseID}
		}

		if id, err = database.InsertSection(ctx, q, in.section(0, courseID)); err != nil {
			return err
		}
		return database.InsertSectionTimes(ctx, q, id, in.times())
	})
	if err != nil {
		return 0, err
	}

	ctxlog.FromContext(ctx).Info("section created", "section_id", id, "course_id", courseID, "times", len(in.Times))
	return id, nil
}

// UpdateSection rewrites the section's fields and replaces its whole time-set.
// The section keeps its course; previous time ids are not preserved.
func (s *Service) UpdateSection(ctx context.Context, id int64, in SectionInput) (err error) {
	defer func() { metrics.SectionWritesTotal.WithLabelValues("update", metrics.Outcome(err)).Inc() }()

	if err := in.Validate(); err != nil {
		return err
	}

	err = s.inTx(ctx, "update_section", func(q database.Querier) error {
		ok, err := s.store.LockSection(ctx, q, id)
		if err != nil {
			return err
		}
		if !ok {
			return &NotFoundError{Entity: "section", ID: id}
		}

		if _, err := database.UpdateSection(ctx, q, in.section(id, 0)); err != nil {
			return err
		}
		if _, err := database.DeleteSectionTimes(ctx, q, id); err != nil {
			return err
		}
		return database.InsertSectionTimes(ctx, q, id, in.times())
	})
	if err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("section updated", "section_id", id, "times", len(in.Times))
	return nil
}

// DeleteSection removes the section's times and then the section itself.
func (s *Service) DeleteSection(ctx context.Context, id int64) (err error) {
	defer func() { metrics.SectionWritesTotal.WithLabelValues("delete", metrics.Outcome(err)).Inc() }()

	var removedTimes int64
	err = s.inTx(ctx, "delete_section", func(q database.Querier) error {
		ok, err := s.store.LockSection(ctx, q, id)
		if err != nil {
			return err
		}
		if !ok {
			return &NotFoundError{Entity: "section", ID: id}
		}

		if removedTimes, err = database.DeleteSectionTimes(ctx, q, id); err != nil {
			return err
		}
		_, err = database.DeleteSection(ctx, q, id)
		return err
	})
	if err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("section deleted", "section_id", id, "times", removedTimes)
	return nil
}
