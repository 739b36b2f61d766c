package middleware

import (
	"slices"
	"strings"

	"staff-acl/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// RequireRole allows the request through only when the caller's role is one of roles.
// It must run after AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok || claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if !slices.Contains(roles, strings.ToLower(claims.Role)) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied: administrator role required",
			})
		}

		return c.Next()
	}
}
