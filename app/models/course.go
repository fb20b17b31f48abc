package models

// Course is a catalog entry. Identity is the externally assigned ID.
type Course struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Units int    `json:"units" db:"units"`
}

// RequisiteKind tells which link table a RequisiteLink row came from.
type RequisiteKind string

const (
	Prerequisite RequisiteKind = "prerequisite"
	Corequisite  RequisiteKind = "corequisite"
)

// RequisiteLink is one row of course_prerequisites or course_corequisites.
// A course carries at most three related course ids; nil slots are empty.
// Targets are not validated: self references and unknown ids are stored as given.
type RequisiteLink struct {
	CourseID int64  `json:"course_id" db:"course_id"`
	Slot1    *int64 `json:"slot_1" db:"slot_1"`
	Slot2    *int64 `json:"slot_2" db:"slot_2"`
	Slot3    *int64 `json:"slot_3" db:"slot_3"`
}

// Targets returns the ids held in non-empty slots, in slot order, without repeats.
func (l RequisiteLink) Targets() []int64 {
	targets := make([]int64, 0, 3)
	for _, slot := range []*int64{l.Slot1, l.Slot2, l.Slot3} {
		if slot == nil || containsID(targets, *slot) {
			continue
		}
		targets = append(targets, *slot)
	}
	return targets
}

// IsEmpty reports whether every slot is empty.
func (l RequisiteLink) IsEmpty() bool {
	return l.Slot1 == nil && l.Slot2 == nil && l.Slot3 == nil
}

// NewRequisiteLink fills the slots from ids. More than three ids is the caller's
// problem; see curriculum.ValidateLinkTargets.
func NewRequisiteLink(courseID int64, ids ...int64) RequisiteLink {
	link := RequisiteLink{CourseID: courseID}
	slots := []**int64{&link.Slot1, &link.Slot2, &link.Slot3}
	for i, id := range ids {
		if i >= len(slots) {
			break
		}
		v := id
		*slots[i] = &v
	}
	return link
}

// CourseRequirement is the minimum number of passed units needed before a course can be taken.
type CourseRequirement struct {
	CourseID       int64 `json:"course_id" db:"course_id"`
	MinPassedUnits int   `json:"min_passed_units" db:"min_passed_units"`
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
