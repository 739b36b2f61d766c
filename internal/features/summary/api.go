package summary

import (
	"staff-acl/internal/config"
	"staff-acl/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SummaryApi struct {
	controller *SummaryController
	config     *config.Config
}

func NewSummaryApi(controller *SummaryController, config *config.Config) *SummaryApi {
	return &SummaryApi{
		controller: controller,
		config:     config,
	}
}

func (h *SummaryApi) Setup(app *fiber.App) {
	app.Get("/api/permissions/summary/:staffId", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.GetSummary)
}
