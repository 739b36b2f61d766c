package permission_test

import (
	"net/http/httptest"
	"testing"

	"staff-acl/internal/config"
	"staff-acl/internal/features/permission"
	"staff-acl/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesScopeAuthToTheirOwnPaths(t *testing.T) {
	cfg := &config.Config{AdminRoles: []string{"admin", "manager"}}
	app := fiber.New()
	permission.NewPermissionApi(permission.NewPermissionController(nil), cfg).Setup(app)

	// A sibling route registered by another feature with its own middleware.
	calls := 0
	app.Get("/api/permissions/check", func(c *fiber.Ctx) error {
		calls++
		return c.SendString("ok")
	})

	staffToken, err := utils.GenerateToken(5, "staff", "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "sibling route untouched", path: "/api/permissions/check", want: fiber.StatusOK},
		{name: "scopes need a token", path: "/api/permissions/scopes", want: fiber.StatusUnauthorized},
		{name: "scopes open to staff", path: "/api/permissions/scopes", header: "Bearer " + staffToken, want: fiber.StatusOK},
		{name: "grants need a token", path: "/api/permissions/grants/staff/5", want: fiber.StatusUnauthorized},
		{name: "grants need an admin", path: "/api/permissions/grants/staff/5", header: "Bearer " + staffToken, want: fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
	assert.Equal(t, 1, calls)
}
