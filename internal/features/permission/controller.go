package permission

import (
	common_api "staff-acl/internal/common/api"
	"staff-acl/internal/common/apperr"
	"staff-acl/internal/features/scope"

	"github.com/gofiber/fiber/v2"
)

type PermissionController struct {
	GrantService GrantService
}

func NewPermissionController(grantService GrantService) *PermissionController {
	return &PermissionController{
		GrantService: grantService,
	}
}

// ListScopes godoc
// @Summary      List the permission scope catalog
// @Tags         permissions
// @Produce      json
// @Success      200  {array} scope.Definition
// @Router       /api/permissions/scopes [get]
func (ctrl *PermissionController) ListScopes(c *fiber.Ctx) error {
	return c.JSON(scope.All())
}

// Grant godoc
// @Summary      Grant a scope to a staff member
// @Description  Creates the (staff, scope, customer) grant or re-activates the existing row
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        grant body GrantRequest true "Grant request"
// @Success      200  {object} ScopedGrant
// @Failure      400  {string} string "Invalid request body"
// @Failure      403  {string} string "Caller is not an administrator"
// @Failure      404  {string} string "Unknown staff or customer"
// @Router       /api/permissions/grants [post]
func (ctrl *PermissionController) Grant(c *fiber.Ctx) error {
	var req GrantRequest
	if err := c.BodyParser(&req); err != nil {
		return common_api.BadRequest(c)
	}

	grant, err := ctrl.GrantService.Grant(c.UserContext(), req)
	if err != nil {
		return common_api.Fail(c, err)
	}

	return c.JSON(grant)
}

// BulkGrant godoc
// @Summary      Grant many scopes to many customers
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        request body BulkGrantRequest true "Bulk grant request"
// @Success      200  {array} ScopedGrant
// @Router       /api/permissions/grants/bulk [post]
func (ctrl *PermissionController) BulkGrant(c *fiber.Ctx) error {
	var req BulkGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return common_api.BadRequest(c)
	}

	grants, err := ctrl.GrantService.BulkGrant(c.UserContext(), req)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error":   err.Error(),
			"applied": grants,
		})
	}

	return c.JSON(grants)
}

// BulkRevoke godoc
// @Summary      Revoke many scopes for many customers
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        request body BulkRevokeRequest true "Bulk revoke request"
// @Success      200  {array} ScopedGrant
// @Router       /api/permissions/grants/bulk-revoke [post]
func (ctrl *PermissionController) BulkRevoke(c *fiber.Ctx) error {
	var req BulkRevokeRequest
	if err := c.BodyParser(&req); err != nil {
		return common_api.BadRequest(c)
	}

	grants, err := ctrl.GrantService.BulkRevoke(c.UserContext(), req)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error":   err.Error(),
			"applied": grants,
		})
	}

	return c.JSON(grants)
}

// GetGrant godoc
// @Summary      Get a grant
// @Tags         permissions
// @Produce      json
// @Param        id path string true "Grant ID"
// @Success      200  {object} ScopedGrant
// @Router       /api/permissions/grants/{id} [get]
func (ctrl *PermissionController) GetGrant(c *fiber.Ctx) error {
	grant, err := ctrl.GrantService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return common_api.Fail(c, err)
	}
	return c.JSON(grant)
}

// RevokeGrant godoc
// @Summary      Revoke a grant
// @Description  Sets granted=false; the row is kept for audit and can be re-activated by a new grant
// @Tags         permissions
// @Produce      json
// @Param        id path string true "Grant ID"
// @Success      200  {object} ScopedGrant
// @Router       /api/permissions/grants/{id}/revoke [post]
func (ctrl *PermissionController) RevokeGrant(c *fiber.Ctx) error {
	grant, err := ctrl.GrantService.Revoke(c.UserContext(), c.Params("id"))
	if err != nil {
		return common_api.Fail(c, err)
	}
	return c.JSON(grant)
}

// DeleteGrant godoc
// @Summary      Delete a grant row permanently
// @Tags         permissions
// @Produce      json
// @Param        id path string true "Grant ID"
// @Success      200  {object} map[string]string
// @Router       /api/permissions/grants/{id} [delete]
func (ctrl *PermissionController) DeleteGrant(c *fiber.Ctx) error {
	if err := ctrl.GrantService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return common_api.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Grant deleted successfully",
	})
}

// ListStaffGrants godoc
// @Summary      List every grant row of a staff member
// @Tags         permissions
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Success      200  {array} ScopedGrant
// @Router       /api/permissions/grants/staff/{staffId} [get]
func (ctrl *PermissionController) ListStaffGrants(c *fiber.Ctx) error {
	staffID, err := common_api.ParamInt64(c, "staffId")
	if err != nil {
		return common_api.Fail(c, err)
	}

	grants, err := ctrl.GrantService.ListForStaff(c.UserContext(), staffID)
	if err != nil {
		return common_api.Fail(c, err)
	}
	return c.JSON(grants)
}

// RevokeAll godoc
// @Summary      Revoke every grant of a staff member
// @Tags         permissions
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Success      200  {array} ScopedGrant
// @Router       /api/permissions/grants/staff/{staffId}/revoke [post]
func (ctrl *PermissionController) RevokeAll(c *fiber.Ctx) error {
	staffID, err := common_api.ParamInt64(c, "staffId")
	if err != nil {
		return common_api.Fail(c, err)
	}

	grants, err := ctrl.GrantService.RevokeAll(c.UserContext(), staffID)
	if err != nil {
		return common_api.Fail(c, err)
	}
	return c.JSON(grants)
}

// RevokeForCustomer godoc
// @Summary      Revoke a staff member's grants for one customer
// @Tags         permissions
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Param        customerId path int true "Customer ID"
// @Success      200  {array} ScopedGrant
// @Router       /api/permissions/grants/staff/{staffId}/customers/{customerId}/revoke [post]
func (ctrl *PermissionController) RevokeForCustomer(c *fiber.Ctx) error {
	staffID, err := common_api.ParamInt64(c, "staffId")
	if err != nil {
		return common_api.Fail(c, err)
	}
	customerID, err := common_api.ParamInt64(c, "customerId")
	if err != nil {
		return common_api.Fail(c, err)
	}

	grants, err := ctrl.GrantService.RevokeForCustomer(c.UserContext(), staffID, customerID)
	if err != nil {
		return common_api.Fail(c, err)
	}
	return c.JSON(grants)
}
