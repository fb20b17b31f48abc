// Package server assembles the Fiber application: middleware, routes, views
// and the metrics endpoint.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"

	"github.com/isina-nej/unipath/app/config"
	"github.com/isina-nej/unipath/app/curriculum"
	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/metrics"
	"github.com/isina-nej/unipath/app/routes/auth"
	"github.com/isina-nej/unipath/app/routes/courses"
	"github.com/isina-nej/unipath/app/routes/middleware"
	"github.com/isina-nej/unipath/app/routes/sections"
	"github.com/isina-nej/unipath/app/templates"
)

// New builds the application around store. It does not start listening.
func New(cfg *config.Config, store *database.Store, log *slog.Logger) *fiber.App {
	// Initialize template engine
	engine := html.NewFileSystem(http.FS(templates.FS), ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})
	engine.Reload(cfg.Server.TemplateReload)

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ViewsLayout:           "layouts/main",
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(log))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.CORSOrigins}))

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := store.DB.PingContext(c.UserContext()); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Database unavailable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	svc := curriculum.NewService(store)
	tokens := auth.NewTokens(cfg.Auth)

	// The global rule only covers routes without a limiter of their own.
	limits := cfg.RateLimit
	global := middleware.Limit(limits.Enabled, limits.Global)
	reads := middleware.Limit(limits.Enabled, limits.Reads)
	writes := middleware.Limit(limits.Enabled, limits.Writes)

	// Setup auth routes
	auth.SetupAuthRoutes(app, store, tokens, writes)

	// Setup sections routes
	sections.SetupSectionsRoutes(app, svc, tokens, sections.Limits{Reads: reads, Writes: writes})

	// Setup courses routes
	courses.SetupCoursesRoutes(app, svc, tokens, courses.Limits{
		Reads:     reads,
		Writes:    writes,
		Aggregate: middleware.Limit(limits.Enabled, limits.Aggregate),
		Default:   global,
	})

	// Catch-all route for 404 errors (must be last)
	app.Use("*", global, func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	return app
}
