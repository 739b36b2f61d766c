package export_test

import (
	"bytes"
	"context"
	"testing"

	common_models "staff-acl/internal/common/models"
	"staff-acl/internal/config"
	"staff-acl/internal/features/directory/directorytest"
	"staff-acl/internal/features/export"
	"staff-acl/internal/features/level"
	"staff-acl/internal/features/level/leveltest"
	"staff-acl/internal/features/permission"
	"staff-acl/internal/features/permission/permissiontest"
	"staff-acl/internal/features/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type auditRecorder struct {
	actions []common_models.AuditAction
}

func (a *auditRecorder) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	a.actions = append(a.actions, action)
	return nil
}

func (a *auditRecorder) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

func TestExportStaff(t *testing.T) {
	grants := permissiontest.NewMemoryGrantRepository()
	levels := leveltest.NewMemoryLevelRepository()
	dir := directorytest.New().AddStaff(5, "Linh", "staff").AddStaff(6, "Hoa", "staff")
	rec := &auditRecorder{}
	cfg := &config.Config{}

	customer := int64(10)
	grants.Put(permission.ScopedGrant{StaffID: 5, Scope: scope.CustomerPhoneRead, Granted: true})
	grants.Put(permission.ScopedGrant{StaffID: 5, Scope: scope.InvoiceView, CustomerID: &customer, Granted: false})
	levels.Put(level.NewLevelGrant(5, level.LevelView))

	service := export.NewExportService(
		permission.NewGrantService(grants, dir, dir, rec, cfg, zap.NewNop()),
		level.NewLevelService(levels, dir, rec, cfg, zap.NewNop()),
		rec,
		zap.NewNop(),
	)

	data, filename, err := service.ExportStaff(context.Background(), 5)
	require.NoError(t, err)
	assert.Contains(t, filename, "staff_5_permissions_")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Grants")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Scope", rows[0][1])
	assert.Equal(t, "CUSTOMER_PHONE_READ", rows[1][1])
	assert.Equal(t, "ALL", rows[1][2])
	assert.Equal(t, "INVOICE_VIEW", rows[2][1])
	assert.Equal(t, "10", rows[2][2])
	assert.Equal(t, "FALSE", rows[2][4])

	levelRows, err := f.GetRows("Levels")
	require.NoError(t, err)
	assert.Len(t, levelRows, 21)
	assert.Equal(t, []string{"customerName", "VIEW"}, levelRows[1])

	assert.Equal(t, []common_models.AuditAction{common_models.AuditActionExport}, rec.actions)

	data, _, err = service.ExportStaff(context.Background(), 6)
	require.NoError(t, err)
	f2, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f2.Close()
	levelRows, err = f2.GetRows("Levels")
	require.NoError(t, err)
	assert.Equal(t, "(not configured)", levelRows[1][0])
}
