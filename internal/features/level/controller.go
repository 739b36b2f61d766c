package level

import (
	common_api "staff-acl/internal/common/api"
	"staff-acl/internal/common/validation"

	"github.com/gofiber/fiber/v2"
)

type LevelController struct {
	LevelService LevelService
}

func NewLevelController(levelService LevelService) *LevelController {
	return &LevelController{
		LevelService: levelService,
	}
}

// GetLevels godoc
// @Summary      Get a staff member's level grant
// @Description  Returns configured=false with no levels when the staff member is unrestricted
// @Tags         levels
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Router       /api/permissions/levels/{staffId} [get]
func (ctrl *LevelController) GetLevels(c *fiber.Ctx) error {
	staffID, err := common_api.ParamInt64(c, "staffId")
	if err != nil {
		return common_api.Fail(c, err)
	}

	g, err := ctrl.LevelService.GetLevels(c.UserContext(), staffID)
	if err != nil {
		return common_api.Fail(c, err)
	}
	if g == nil {
		return c.JSON(fiber.Map{
			"staff_id":   staffID,
			"configured": false,
		})
	}

	return c.JSON(fiber.Map{
		"staff_id":   staffID,
		"configured": true,
		"levels":     g,
	})
}

// InitializeLevels godoc
// @Summary      Initialize a staff member's level grant
// @Tags         levels
// @Accept       json
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Param        request body InitializeRequest false "Default level, EDIT when omitted"
// @Success      200  {object} LevelGrant
// @Router       /api/permissions/levels/{staffId} [post]
func (ctrl *LevelController) InitializeLevels(c *fiber.Ctx) error {
	staffID, err := common_api.ParamInt64(c, "staffId")
	if err != nil {
		return common_api.Fail(c, err)
	}

	var req InitializeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return common_api.BadRequest(c)
		}
	}
	if err := validation.Struct(req); err != nil {
		return common_api.Fail(c, err)
	}

	def := LevelEdit
	if req.Default != "" {
		def = Level(req.Default)
	}

	g, err := ctrl.LevelService.InitializeLevels(c.UserContext(), staffID, def)
	if err != nil {
		return common_api.Fail(c, err)
	}
	return c.JSON(g)
}

// UpdateLevels godoc
// @Summary      Update individual level fields
// @Tags         levels
// @Accept       json
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Param        request body UpdateRequest true "Field levels"
// @Success      200  {object} LevelGrant
// @Router       /api/permissions/levels/{staffId} [put]
func (ctrl *LevelController) UpdateLevels(c *fiber.Ctx) error {
	staffID, err := common_api.ParamInt64(c, "staffId")
	if err != nil {
		return common_api.Fail(c, err)
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return common_api.BadRequest(c)
	}
	if err := validation.Struct(req); err != nil {
		return common_api.Fail(c, err)
	}

	levels := make(map[string]Level, len(req.Levels))
	for field, raw := range req.Levels {
		levels[field] = Level(raw)
	}

	g, err := ctrl.LevelService.UpdateLevels(c.UserContext(), staffID, levels)
	if err != nil {
		return common_api.Fail(c, err)
	}
	return c.JSON(g)
}

// ResetLevels godoc
// @Summary      Remove a staff member's level grant
// @Tags         levels
// @Param        staffId path int true "Staff ID"
// @Router       /api/permissions/levels/{staffId} [delete]
func (ctrl *LevelController) ResetLevels(c *fiber.Ctx) error {
	staffID, err := common_api.ParamInt64(c, "staffId")
	if err != nil {
		return common_api.Fail(c, err)
	}

	if err := ctrl.LevelService.ResetLevels(c.UserContext(), staffID); err != nil {
		return common_api.Fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Level grant removed",
	})
}

// ListFields returns the level field keys.
func (ctrl *LevelController) ListFields(c *fiber.Ctx) error {
	return c.JSON(Fields())
}
