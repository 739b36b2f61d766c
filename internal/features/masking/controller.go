package masking

import (
	common_api "staff-acl/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type MaskingController struct {
	MaskingService MaskingService
}

func NewMaskingController(maskingService MaskingService) *MaskingController {
	return &MaskingController{
		MaskingService: maskingService,
	}
}

// Mask godoc
// @Summary      Mask a customer record for a staff member
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Param        view query string false "basic for the public projection"
// @Param        record body CustomerView true "Customer record"
// @Success      200  {object} CustomerView
// @Router       /api/permissions/mask/{staffId} [post]
func (ctrl *MaskingController) Mask(c *fiber.Ctx) error {
	staffID, err := common_api.ParamInt64(c, "staffId")
	if err != nil {
		return common_api.Fail(c, err)
	}

	var view CustomerView
	if err := c.BodyParser(&view); err != nil {
		return common_api.BadRequest(c)
	}

	if c.Query("view") == "basic" {
		basic, err := ctrl.MaskingService.MaskBasic(c.UserContext(), view, staffID)
		if err != nil {
			return common_api.Fail(c, err)
		}
		return c.JSON(basic)
	}

	out, err := ctrl.MaskingService.Mask(c.UserContext(), view, staffID)
	if err != nil {
		return common_api.Fail(c, err)
	}
	return c.JSON(out)
}
