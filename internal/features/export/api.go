package export

import (
	"staff-acl/internal/config"
	"staff-acl/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	controller *ExportController
	config     *config.Config
}

func NewExportApi(controller *ExportController, config *config.Config) *ExportApi {
	return &ExportApi{
		controller: controller,
		config:     config,
	}
}

func (h *ExportApi) Setup(app *fiber.App) {
	app.Get("/api/permissions/staff/:staffId/export",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequireRole(h.config.AdminRoles...),
		h.controller.ExportStaff,
	)
}
