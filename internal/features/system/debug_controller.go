package system

import (
	"context"
	"time"

	"staff-acl/internal/database"
	"staff-acl/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type DebugController struct {
	mongodb *database.MongodbDB
}

func NewDebugController(mongodb *database.MongodbDB) *DebugController {
	return &DebugController{mongodb: mongodb}
}

// Health godoc
// @Summary      Liveness and database reachability
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (c *DebugController) Health(ctx *fiber.Ctx) error {
	pingCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
	defer cancel()

	if err := c.mongodb.DB.Client().Ping(pingCtx, readpref.Primary()); err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "degraded",
			"database": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"status":   "ok",
		"database": "ok",
	})
}

// GetCurrentUser godoc
// @Summary      Get current caller claims
// @Description  Returns the staff id, role and tenant carried by the JWT
// @Tags         debug
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/debug/me [get]
func (c *DebugController) GetCurrentUser(ctx *fiber.Ctx) error {
	claims, ok := utils.ClaimsFromContext(ctx.UserContext())
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	return ctx.JSON(fiber.Map{
		"staff_id":  claims.StaffID,
		"role":      claims.Role,
		"tenant_id": claims.TenantID,
		"message":   "This is your current JWT token data",
	})
}
