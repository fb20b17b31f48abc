package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/isina-nej/unipath/app/ctxlog"
	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/models"
)

const minPasswordLength = 8

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates an account with a bcrypt-hashed password.
func RegisterHandler(store *database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req credentials
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username is required")
		}
		if len(req.Password) < minPasswordLength {
			return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 8 characters")
		}

		ctx := c.UserContext()
		if _, err := database.GetUserByUsername(ctx, store.DB, req.Username); err == nil {
			return fiber.NewError(fiber.StatusConflict, "Username already taken")
		} else if !database.IsNotFound(err) {
			return err
		}

		hashed, err := HashPassword(req.Password)
		if err != nil {
			return err
		}

		user := &models.User{Username: req.Username, Email: strings.TrimSpace(req.Email), Password: hashed}
		if err := database.CreateUser(ctx, store.DB, user); err != nil {
			if _, ok := database.ConstraintViolation(err); ok {
				return fiber.NewError(fiber.StatusConflict, "Username already taken")
			}
			return err
		}

		ctxlog.FromContext(ctx).Info("user registered", "user_id", user.ID, "username", user.Username)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "User registered successfully",
			"user":    user,
		})
	}
}

func LoginHandler(store *database.Store, tokens *Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req credentials
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		user, err := database.GetUserByUsername(c.UserContext(), store.DB, strings.TrimSpace(req.Username))
		if err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
			}
			return err
		}

		if !CheckPasswordHash(req.Password, user.Password) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}

		return issueToken(c, tokens, user, "Login successful")
	}
}

func LogoutHandler(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
}

// ProfileHandler returns the account behind the current token.
func ProfileHandler(store *database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := currentUser(c, store)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "user": user})
	}
}

// RefreshHandler trades a still valid token for a fresh one.
func RefreshHandler(store *database.Store, tokens *Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := currentUser(c, store)
		if err != nil {
			return err
		}
		return issueToken(c, tokens, user, "Token refreshed")
	}
}

// VerifyHandler reports whether the submitted token is valid.
func VerifyHandler(tokens *Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.BodyParser(&req); err != nil || req.Token == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Token is required")
		}

		claims, err := tokens.Validate(req.Token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		return c.JSON(fiber.Map{
			"success":    true,
			"valid":      true,
			"user_id":    claims.UserID,
			"username":   claims.Username,
			"expires_at": claims.ExpiresAt.Time,
		})
	}
}

func currentUser(c *fiber.Ctx, store *database.Store) (*models.User, error) {
	userID, _ := c.Locals("user_id").(int64)
	user, err := database.GetUserByID(c.UserContext(), store.DB, userID)
	if database.IsNotFound(err) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Account no longer exists")
	}
	return user, err
}

func issueToken(c *fiber.Ctx, tokens *Tokens, user *models.User, message string) error {
	token, expires, err := tokens.Generate(user)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    message,
		"token":      token,
		"expires_at": expires,
		"user":       user,
	})
}
