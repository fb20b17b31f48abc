package sections

import (
	"github.com/gofiber/fiber/v2"

	"github.com/isina-nej/unipath/app/curriculum"
	"github.com/isina-nej/unipath/app/routes/auth"
)

// Limits groups the per-route limiters.
type Limits struct {
	Reads  fiber.Handler
	Writes fiber.Handler
}

func SetupSectionsRoutes(app *fiber.App, svc *curriculum.Service, tokens *auth.Tokens, limits Limits) {
	api := app.Group("/api/sections")

	api.Get("/", limits.Reads, ListSectionsHandler(svc))
	api.Get("/:id", limits.Reads, GetSectionHandler(svc))

	api.Post("/", limits.Writes, auth.AuthMiddleware(tokens), CreateSectionHandler(svc))
	api.Put("/:id", limits.Writes, auth.AuthMiddleware(tokens), UpdateSectionHandler(svc))
	api.Delete("/:id", limits.Writes, auth.AuthMiddleware(tokens), DeleteSectionHandler(svc))
}
