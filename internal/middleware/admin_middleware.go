package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"novasphere/internal/models"
	"novasphere/internal/services"
)

// AdminRequired is a Fiber middleware admitting only requests carrying a
// valid token with the ADMIN role.
func AdminRequired(session *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header must be of the form 'Bearer <token>'",
			})
		}

		claims, err := session.ValidateToken(parts[1])
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		if role, _ := claims["role"].(string); role != string(models.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin role required",
			})
		}

		c.Locals("username", claims["username"])
		return c.Next()
	}
}
