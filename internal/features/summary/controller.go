package summary

import (
	common_api "staff-acl/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type SummaryController struct {
	Summarizer Summarizer
}

func NewSummaryController(summarizer Summarizer) *SummaryController {
	return &SummaryController{
		Summarizer: summarizer,
	}
}

// GetSummary godoc
// @Summary      Summarize a staff member's scoped permissions
// @Tags         permissions
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Param        customer_id query int false "Customer ID"
// @Success      200  {object} PermissionSummary
// @Router       /api/permissions/summary/{staffId} [get]
func (ctrl *SummaryController) GetSummary(c *fiber.Ctx) error {
	staffID, err := common_api.ParamInt64(c, "staffId")
	if err != nil {
		return common_api.Fail(c, err)
	}
	customerID, err := common_api.QueryInt64(c, "customer_id")
	if err != nil {
		return common_api.Fail(c, err)
	}

	result, err := ctrl.Summarizer.Summarize(c.UserContext(), staffID, customerID)
	if err != nil {
		return common_api.Fail(c, err)
	}
	return c.JSON(result)
}
