package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/isina-nej/unipath/app/database"
)

const cookieName = "jwt_token"

func SetupAuthRoutes(app *fiber.App, store *database.Store, tokens *Tokens, limit fiber.Handler) {
	auth := app.Group("/api/auth", limit)

	// Public routes
	auth.Post("/register", RegisterHandler(store))
	auth.Post("/login", LoginHandler(store, tokens))
	auth.Post("/logout", LogoutHandler)
	auth.Post("/verify", VerifyHandler(tokens))

	// Protected routes
	auth.Get("/profile", AuthMiddleware(tokens), ProfileHandler(store))
	auth.Post("/refresh", AuthMiddleware(tokens), RefreshHandler(store, tokens))
}

// AuthMiddleware validates the JWT from the Authorization header or the
// session cookie and stores the claims in Locals.
func AuthMiddleware(tokens *Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tokenString string

		if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
		if tokenString == "" {
			tokenString = c.Cookies(cookieName)
		}

		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "No token found")
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("claims", claims)

		return c.Next()
	}
}
