package policy

import (
	"staff-acl/internal/config"
	"staff-acl/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PolicyApi struct {
	controller *PolicyController
	config     *config.Config
}

func NewPolicyApi(controller *PolicyController, config *config.Config) *PolicyApi {
	return &PolicyApi{
		controller: controller,
		config:     config,
	}
}

func (h *PolicyApi) Setup(app *fiber.App) {
	app.Get("/api/permissions/check", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Check)
}
