package expiry_test

import (
	"context"
	"testing"
	"time"

	common_models "staff-acl/internal/common/models"
	"staff-acl/internal/config"
	"staff-acl/internal/features/directory/directorytest"
	"staff-acl/internal/features/expiry"
	"staff-acl/internal/features/permission"
	"staff-acl/internal/features/permission/permissiontest"
	"staff-acl/internal/features/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type nopAudit struct{}

func (nopAudit) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	return nil
}

func (nopAudit) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

func newReporter(schedule string) (expiry.ExpiryReporter, *permissiontest.MemoryGrantRepository, *observer.ObservedLogs) {
	repo := permissiontest.NewMemoryGrantRepository()
	dir := directorytest.New()
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := &config.Config{ExpiryReportSchedule: schedule}
	grants := permission.NewGrantService(repo, dir, dir, nopAudit{}, cfg, zap.NewNop())
	return expiry.NewExpiryReporter(grants, cfg, zap.New(core)), repo, logs
}

func TestRunOnceReportsWithoutMutating(t *testing.T) {
	reporter, repo, logs := newReporter("")
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	expired := repo.Put(permission.ScopedGrant{StaffID: 5, Scope: scope.InvoiceView, Granted: true, ExpiresAt: &past})
	repo.Put(permission.ScopedGrant{StaffID: 5, Scope: scope.InvoiceCreate, Granted: true, ExpiresAt: &future})
	repo.Put(permission.ScopedGrant{StaffID: 5, Scope: scope.InvoiceUpdate, Granted: false, ExpiresAt: &past})

	count, err := reporter.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	row, err := repo.FindByID(context.Background(), expired.ID)
	require.NoError(t, err)
	assert.True(t, row.Granted)

	warnings := logs.FilterMessage("expired grants still flagged as granted").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, int64(1), warnings[0].ContextMap()["count"])
}

func TestSchedulerLifecycle(t *testing.T) {
	disabled, _, logs := newReporter("")
	require.NoError(t, disabled.InitializeScheduler(context.Background()))
	require.NoError(t, disabled.StopScheduler())
	assert.Equal(t, 1, logs.FilterMessage("expiry reporter disabled").Len())

	invalid, _, _ := newReporter("every now and then")
	assert.Error(t, invalid.InitializeScheduler(context.Background()))

	hourly, _, _ := newReporter("@hourly")
	require.NoError(t, hourly.InitializeScheduler(context.Background()))
	require.NoError(t, hourly.StopScheduler())
}
