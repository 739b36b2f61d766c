package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"staff-acl/internal/database"
	"staff-acl/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin", AuthMiddleware(false), RequireRole("admin", "manager"), func(c *fiber.Ctx) error {
		claims, _ := utils.ClaimsFromContext(c.UserContext())
		tenant, ok := database.TenantID(c.UserContext())
		return c.JSON(fiber.Map{"staff_id": claims.StaffID, "tenant": tenant.Hex(), "has_tenant": ok})
	})
	return app
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	app := newTestApp()

	adminToken, err := utils.GenerateToken(1, "Admin", "678e9a1b2c3d4e5f6a7b8c9e")
	require.NoError(t, err)
	staffToken, err := utils.GenerateToken(2, "staff", "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: fiber.StatusUnauthorized},
		{name: "bad format", header: "Token abc", want: fiber.StatusUnauthorized},
		{name: "invalid token", header: "Bearer not-a-jwt", want: fiber.StatusUnauthorized},
		{name: "non admin", header: "Bearer " + staffToken, want: fiber.StatusForbidden},
		{name: "admin", header: "Bearer " + adminToken, want: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestTenantHeaderOnlyInSkipAuthMode(t *testing.T) {
	const tenant = "678e9a1b2c3d4e5f6a7b8c9e"

	for _, skip := range []bool{true, false} {
		app := fiber.New()
		app.Use(TenantHeaderMiddleware(skip))
		app.Get("/tenant", func(c *fiber.Ctx) error {
			id, ok := database.TenantID(c.UserContext())
			if !ok {
				return c.SendString("none")
			}
			return c.SendString(id.Hex())
		})

		req := httptest.NewRequest("GET", "/tenant", nil)
		req.Header.Set(TenantHeader, tenant)
		resp, err := app.Test(req)
		require.NoError(t, err)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		if skip {
			assert.Equal(t, tenant, string(body))
		} else {
			assert.Equal(t, "none", string(body))
		}
	}
}
