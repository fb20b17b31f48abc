package models

// Section is an offered instance of a course.
type Section struct {
	ID             int64         `json:"id" db:"id"`
	CourseID       int64         `json:"course_id" db:"course_id"`
	ExamDatetime   *string       `json:"exam_datetime" db:"exam_datetime"`
	Capacity       int           `json:"capacity" db:"capacity"`
	InstructorName string        `json:"instructor_name" db:"instructor_name"`
	Description    string        `json:"description" db:"description"`
	Times          []SectionTime `json:"times"`
}

// SectionTime is one weekly meeting slot. Day is a free-text label and the
// times are stored as HH:MM text, so ordering is plain string ordering.
type SectionTime struct {
	ID        int64  `json:"id" db:"id"`
	SectionID int64  `json:"section_id" db:"section_id"`
	Day       string `json:"day" db:"day"`
	StartTime string `json:"start_time" db:"start_time"`
	EndTime   string `json:"end_time" db:"end_time"`
	Location  string `json:"location" db:"location"`
}
