package courses

import (
	"github.com/gofiber/fiber/v2"

	"github.com/isina-nej/unipath/app/curriculum"
	"github.com/isina-nej/unipath/app/models"
	"github.com/isina-nej/unipath/app/routes/auth"
)

// Limits groups the per-route limiters.
type Limits struct {
	Reads     fiber.Handler
	Writes    fiber.Handler
	Aggregate fiber.Handler
	Default   fiber.Handler
}

func SetupCoursesRoutes(app *fiber.App, svc *curriculum.Service, tokens *auth.Tokens, limits Limits) {
	app.Get("/api/all_university_data", limits.Aggregate, AggregateHandler(svc))

	api := app.Group("/api/courses")
	api.Get("/", limits.Reads, ListCoursesHandler(svc))
	api.Get("/:id", limits.Reads, GetCourseHandler(svc))

	api.Put("/:id", limits.Writes, auth.AuthMiddleware(tokens), UpsertCourseHandler(svc))
	api.Put("/:id/prerequisites", limits.Writes, auth.AuthMiddleware(tokens), SetRequisitesHandler(svc, models.Prerequisite))
	api.Put("/:id/corequisites", limits.Writes, auth.AuthMiddleware(tokens), SetRequisitesHandler(svc, models.Corequisite))
	api.Put("/:id/requirement", limits.Writes, auth.AuthMiddleware(tokens), SetRequirementHandler(svc))

	// Curriculum overview page
	app.Get("/", limits.Default, func(c *fiber.Ctx) error {
		return c.Redirect("/curriculum")
	})
	app.Get("/curriculum", limits.Aggregate, CurriculumPageHandler(svc))
}

// CurriculumPageHandler renders every course with its relations and sections.
func CurriculumPageHandler(svc *curriculum.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot, err := svc.Aggregate(c.UserContext())
		if err != nil {
			return err
		}

		sections := 0
		for _, course := range snapshot.Courses {
			sections += len(course.Sections)
		}

		return c.Render("courses/index", fiber.Map{
			"Title":        "Curriculum - UniPath",
			"CurrentPage":  "curriculum",
			"Courses":      snapshot.Courses,
			"CourseCount":  len(snapshot.Courses),
			"SectionCount": sections,
		})
	}
}
