package masking

import (
	"staff-acl/internal/config"
	"staff-acl/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MaskingApi struct {
	controller *MaskingController
	config     *config.Config
}

func NewMaskingApi(controller *MaskingController, config *config.Config) *MaskingApi {
	return &MaskingApi{
		controller: controller,
		config:     config,
	}
}

func (h *MaskingApi) Setup(app *fiber.App) {
	app.Post("/api/permissions/mask/:staffId", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Mask)
}
