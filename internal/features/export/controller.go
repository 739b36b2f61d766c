package export

import (
	"fmt"

	common_api "staff-acl/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	ExportService ExportService
}

func NewExportController(exportService ExportService) *ExportController {
	return &ExportController{
		ExportService: exportService,
	}
}

// ExportStaff godoc
// @Summary      Download a staff member's permissions as xlsx
// @Tags         permissions
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        staffId path int true "Staff ID"
// @Router       /api/permissions/staff/{staffId}/export [get]
func (ctrl *ExportController) ExportStaff(c *fiber.Ctx) error {
	staffID, err := common_api.ParamInt64(c, "staffId")
	if err != nil {
		return common_api.Fail(c, err)
	}

	data, filename, err := ctrl.ExportService.ExportStaff(c.UserContext(), staffID)
	if err != nil {
		return common_api.Fail(c, err)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}
