package courses

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/isina-nej/unipath/app/curriculum"
	"github.com/isina-nej/unipath/app/models"
)

func courseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid course ID")
	}
	return id, nil
}

// AggregateHandler returns the course map keyed by course id plus the raw rows.
func AggregateHandler(svc *curriculum.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot, err := svc.Aggregate(c.UserContext())
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"course_map": snapshot.CourseMap(),
			"raw_data":   snapshot.Raw,
		})
	}
}

// ListCoursesHandler returns the dependency graph in ascending course id order.
func ListCoursesHandler(svc *curriculum.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		graph, err := svc.BuildGraph(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(graph.Nodes())
	}
}

func GetCourseHandler(svc *curriculum.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := courseID(c)
		if err != nil {
			return err
		}

		graph, err := svc.BuildGraph(c.UserContext())
		if err != nil {
			return err
		}
		course, ok := graph.Course(id)
		if !ok {
			return &curriculum.NotFoundError{Entity: "course", ID: id}
		}
		return c.JSON(graph.Node(course))
	}
}

func UpsertCourseHandler(svc *curriculum.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := courseID(c)
		if err != nil {
			return err
		}

		var req curriculum.CourseInput
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		course, err := svc.UpsertCourse(c.UserContext(), id, req)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "course": course})
	}
}

// SetRequisitesHandler replaces one kind of requisite slots with
// {"course_ids": [...]}; an empty list clears them.
func SetRequisitesHandler(svc *curriculum.Service, kind models.RequisiteKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := courseID(c)
		if err != nil {
			return err
		}

		var req struct {
			CourseIDs []int64 `json:"course_ids"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := svc.SetRequisites(c.UserContext(), id, kind, req.CourseIDs); err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"success":    true,
			"course_id":  id,
			"kind":       kind,
			"course_ids": req.CourseIDs,
		})
	}
}

// SetRequirementHandler stores {"min_passed_units": n}; null removes it.
func SetRequirementHandler(svc *curriculum.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := courseID(c)
		if err != nil {
			return err
		}

		var req struct {
			MinPassedUnits *int `json:"min_passed_units"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := svc.SetRequirement(c.UserContext(), id, req.MinPassedUnits); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "course_id": id, "min_passed_units": req.MinPassedUnits})
	}
}
