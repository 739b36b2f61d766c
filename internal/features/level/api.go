package level

import (
	"staff-acl/internal/config"
	"staff-acl/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type LevelApi struct {
	controller *LevelController
	config     *config.Config
}

func NewLevelApi(controller *LevelController, config *config.Config) *LevelApi {
	return &LevelApi{
		controller: controller,
		config:     config,
	}
}

func (h *LevelApi) Setup(app *fiber.App) {
	levels := app.Group("/api/permissions/levels", middleware.AuthMiddleware(h.config.SkipAuth))
	admin := middleware.RequireRole(h.config.AdminRoles...)

	levels.Get("/fields", h.controller.ListFields)
	levels.Get("/:staffId", h.controller.GetLevels)
	levels.Post("/:staffId", admin, h.controller.InitializeLevels)
	levels.Put("/:staffId", admin, h.controller.UpdateLevels)
	levels.Delete("/:staffId", admin, h.controller.ResetLevels)
}
