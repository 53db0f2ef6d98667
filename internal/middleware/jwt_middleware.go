package middleware

import (
	"errors"
	"strings"

	"estilo/internal/models"
	"estilo/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired checks the Authorization header for a valid bearer token and
// resolves it to the persisted user record. The resolved user is stored in
// the request locals for the handlers behind it.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Not authenticated")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		user, err := authService.UserFromToken(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, models.ErrExpiredToken):
				return unauthorized(c, "Token has expired")
			case errors.Is(err, models.ErrUserNotFound):
				return unauthorized(c, "User not found")
			default:
				return unauthorized(c, "Could not validate credentials")
			}
		}

		c.Locals("current_user", user)
		c.Locals("user_id", user.ID)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, or nil on an
// unauthenticated route.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("current_user").(*models.User)
	return user
}

func unauthorized(c *fiber.Ctx, msg string) error {
	c.Set("WWW-Authenticate", "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": msg})
}
