package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/isina-nej/unipath/app/ctxlog"
	"github.com/isina-nej/unipath/app/curriculum"
)

// Status maps an error returned by a handler to its HTTP status and the
// message safe to show the client.
func Status(err error) (int, string) {
	var (
		fErr  *fiber.Error
		vErr  *curriculum.ValidationError
		nfErr *curriculum.NotFoundError
		sErr  *curriculum.StoreError
	)
	switch {
	case errors.As(err, &fErr):
		return fErr.Code, fErr.Message
	case errors.As(err, &vErr):
		return fiber.StatusBadRequest, vErr.Error()
	case errors.As(err, &nfErr):
		return fiber.StatusNotFound, nfErr.Error()
	case errors.As(err, &sErr):
		return fiber.StatusInternalServerError, "Internal server error"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

// IsAPIRequest reports whether the request expects a JSON answer.
func IsAPIRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/") || c.Path() == "/metrics"
}

// ErrorHandler answers API requests with the JSON error envelope and renders
// the error page for everything else.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, message := Status(err)
	if code >= fiber.StatusInternalServerError {
		ctxlog.FromContext(c.UserContext()).Error("request failed",
			"method", c.Method(), "path", c.Path(), "status", code, "error", err)
	}

	if IsAPIRequest(c) {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   message,
			"code":    code,
		})
	}

	return c.Status(code).Render("error", fiber.Map{
		"Title":        "Error - UniPath",
		"ErrorCode":    code,
		"ErrorMessage": message,
	})
}
