package permission

import (
	"staff-acl/internal/config"
	"staff-acl/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PermissionApi struct {
	Controller *PermissionController
	config     *config.Config
}

func NewPermissionApi(controller *PermissionController, config *config.Config) *PermissionApi {
	return &PermissionApi{
		Controller: controller,
		config:     config,
	}
}

func (a *PermissionApi) Setup(app *fiber.App) {
	api := app.Group("/api")
	RegisterRoutes(api, a.Controller, a.config)
}

// RegisterRoutes registers the scope catalog and grant administration routes.
// Auth is attached per route group so sibling /api/permissions routes owned by
// other features are not wrapped a second time.
func RegisterRoutes(api fiber.Router, ctrl *PermissionController, config *config.Config) {
	auth := middleware.AuthMiddleware(config.SkipAuth)
	api.Get("/permissions/scopes", auth, ctrl.ListScopes)

	grants := api.Group("/permissions/grants", auth, middleware.RequireRole(config.AdminRoles...))
	grants.Post("/", ctrl.Grant)
	grants.Post("/bulk", ctrl.BulkGrant)
	grants.Post("/bulk-revoke", ctrl.BulkRevoke)
	grants.Get("/staff/:staffId", ctrl.ListStaffGrants)
	grants.Post("/staff/:staffId/revoke", ctrl.RevokeAll)
	grants.Post("/staff/:staffId/customers/:customerId/revoke", ctrl.RevokeForCustomer)
	grants.Get("/:id", ctrl.GetGrant)
	grants.Post("/:id/revoke", ctrl.RevokeGrant)
	grants.Delete("/:id", ctrl.DeleteGrant)
}
