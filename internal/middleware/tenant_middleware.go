package middleware

import (
	"context"

	"staff-acl/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

const TenantHeader = "X-Tenant-ID"

// TenantHeaderMiddleware lets local tooling pick a tenant with the X-Tenant-ID
// header. It is only honored when token auth is skipped; otherwise the tenant
// always comes from the token.
func TenantHeaderMiddleware(skipAuth bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !skipAuth {
			return c.Next()
		}
		tenant := c.Get(TenantHeader)
		if tenant != "" {
			ctx := context.WithValue(c.UserContext(), models.TenantIDKey, tenant)
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}
