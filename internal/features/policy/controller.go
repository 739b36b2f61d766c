package policy

import (
	"fmt"

	common_api "staff-acl/internal/common/api"
	"staff-acl/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type PolicyController struct {
	Evaluator Evaluator
}

func NewPolicyController(evaluator Evaluator) *PolicyController {
	return &PolicyController{
		Evaluator: evaluator,
	}
}

// Check godoc
// @Summary      Evaluate one scope or field for a staff member
// @Description  model=scoped (default, deny when no grant) or model=level (allow when no level row)
// @Tags         permissions
// @Produce      json
// @Param        staff_id query int true "Staff ID"
// @Param        scope query string false "Scope name"
// @Param        field query string false "Field name, used when scope is empty"
// @Param        customer_id query int false "Customer ID"
// @Param        model query string false "scoped or level"
// @Success      200  {object} EvaluateResult
// @Router       /api/permissions/check [get]
func (ctrl *PolicyController) Check(c *fiber.Ctx) error {
	staffID, err := common_api.QueryInt64(c, "staff_id")
	if err != nil {
		return common_api.Fail(c, err)
	}
	if staffID == nil {
		return common_api.Fail(c, fmt.Errorf("%w: staff_id is required", apperr.ErrInvalidArgument))
	}
	customerID, err := common_api.QueryInt64(c, "customer_id")
	if err != nil {
		return common_api.Fail(c, err)
	}

	result, err := ctrl.Evaluator.Evaluate(c.UserContext(), EvaluateRequest{
		StaffID:    *staffID,
		Scope:      c.Query("scope"),
		Field:      c.Query("field"),
		CustomerID: customerID,
		Model:      Model(c.Query("model")),
	})
	if err != nil {
		return common_api.Fail(c, err)
	}
	return c.JSON(result)
}
