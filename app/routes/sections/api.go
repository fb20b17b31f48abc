package sections

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/isina-nej/unipath/app/curriculum"
)

// sectionRequest is the JSON body of create and update. course_id is read on
// create only; a section never moves to another course.
type sectionRequest struct {
	CourseID       *int64                 `json:"course_id"`
	Capacity       *int                   `json:"capacity"`
	InstructorName string                 `json:"instructor_name"`
	Description    string                 `json:"description"`
	ExamDatetime   *string                `json:"exam_datetime"`
	Times          []curriculum.TimeInput `json:"times"`
}

func (r sectionRequest) input() (curriculum.SectionInput, error) {
	if r.Capacity == nil {
		return curriculum.SectionInput{}, &curriculum.ValidationError{Field: "capacity", Reason: "is required"}
	}
	return curriculum.SectionInput{
		Capacity:       *r.Capacity,
		InstructorName: r.InstructorName,
		Description:    r.Description,
		ExamDatetime:   r.ExamDatetime,
		Times:          r.Times,
	}, nil
}

func parseBody(c *fiber.Ctx) (sectionRequest, curriculum.SectionInput, error) {
	var req sectionRequest
	if err := c.BodyParser(&req); err != nil {
		return req, curriculum.SectionInput{}, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	in, err := req.input()
	return req, in, err
}

func sectionID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid section ID")
	}
	return id, nil
}

// ListSectionsHandler serves ?page=&per_page=&course_id=. Bad page numbers
// fall back to the defaults and are then clamped.
func ListSectionsHandler(svc *curriculum.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := curriculum.ListParams{
			Page:    c.QueryInt("page", 1),
			PerPage: c.QueryInt("per_page", curriculum.DefaultPerPage),
		}
		if raw := c.Query("course_id"); raw != "" {
			courseID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid course_id")
			}
			params.CourseID = &courseID
		}

		page, err := svc.ListSections(c.UserContext(), params)
		if err != nil {
			return err
		}
		return c.JSON(page)
	}
}

func GetSectionHandler(svc *curriculum.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := sectionID(c)
		if err != nil {
			return err
		}

		section, err := svc.GetSection(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(section)
	}
}

func CreateSectionHandler(svc *curriculum.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, in, err := parseBody(c)
		if err != nil {
			return err
		}
		if req.CourseID == nil {
			return &curriculum.ValidationError{Field: "course_id", Reason: "is required"}
		}

		id, err := svc.CreateSection(c.UserContext(), *req.CourseID, in)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":    true,
			"message":    "Section created successfully",
			"section_id": id,
		})
	}
}

func UpdateSectionHandler(svc *curriculum.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := sectionID(c)
		if err != nil {
			return err
		}
		_, in, err := parseBody(c)
		if err != nil {
			return err
		}

		if err := svc.UpdateSection(c.UserContext(), id, in); err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success":    true,
			"message":    "Section updated successfully",
			"section_id": id,
		})
	}
}

func DeleteSectionHandler(svc *curriculum.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := sectionID(c)
		if err != nil {
			return err
		}

		if err := svc.DeleteSection(c.UserContext(), id); err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Section deleted successfully",
		})
	}
}
