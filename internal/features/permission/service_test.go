package permission_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"staff-acl/internal/common/apperr"
	common_models "staff-acl/internal/common/models"
	"staff-acl/internal/config"
	"staff-acl/internal/features/directory/directorytest"
	"staff-acl/internal/features/permission"
	"staff-acl/internal/features/permission/permissiontest"
	"staff-acl/internal/features/scope"
	"staff-acl/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingAudit struct {
	mu      sync.Mutex
	actions []common_models.AuditAction
	fail    bool
}

func (a *recordingAudit) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	if a.fail {
		return errors.New("audit store down")
	}
	return nil
}

func (a *recordingAudit) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type fixture struct {
	repo    *permissiontest.MemoryGrantRepository
	audit   *recordingAudit
	service permission.GrantService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := directorytest.New().
		AddStaff(1, "Admin", "admin").
		AddStaff(5, "Linh", "staff").
		AddCustomer(10, "Customer Ten").
		AddCustomer(11, "Customer Eleven").
		AddCustomer(12, "Customer Twelve")

	f := &fixture{
		repo:  permissiontest.NewMemoryGrantRepository(),
		audit: &recordingAudit{},
	}
	cfg := &config.Config{AdminRoles: []string{"admin", "manager"}}
	f.service = permission.NewGrantService(f.repo, dir, dir, f.audit, cfg, zap.NewNop())
	return f
}

func adminCtx() context.Context {
	return utils.WithClaims(context.Background(), &utils.UserClaims{StaffID: 1, Role: "admin"})
}

func ptr(v int64) *int64 { return &v }

func TestCustomerSpecificGrantOnlyAppliesToThatCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := adminCtx()

	g, err := f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "CUSTOMER_EMAIL_READ", CustomerID: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), g.GrantedBy)
	assert.True(t, g.Granted)

	ok, err := f.service.HasScopedGrant(ctx, 5, scope.CustomerEmailRead, ptr(10))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.service.HasScopedGrant(ctx, 5, scope.CustomerEmailRead, ptr(11))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.service.HasScopedGrant(ctx, 5, scope.CustomerEmailRead, nil)
	require.NoError(t, err)
	assert.False(t, ok, "a customer grant does not satisfy a customer-less check")
}

func TestGlobalGrantAppliesToEveryCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := adminCtx()

	_, err := f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "CUSTOMER_PHONE_READ"})
	require.NoError(t, err)

	for _, customerID := range []*int64{nil, ptr(10), ptr(11), ptr(999)} {
		ok, err := f.service.HasScopedGrant(ctx, 5, scope.CustomerPhoneRead, customerID)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestBulkGrantMaterializesCrossProduct(t *testing.T) {
	f := newFixture(t)

	grants, err := f.service.BulkGrant(adminCtx(), permission.BulkGrantRequest{
		StaffID:     5,
		Scopes:      []string{"CUSTOMER_NAME_READ", "INVOICE_VIEW"},
		CustomerIDs: []int64{10, 11, 12},
	})
	require.NoError(t, err)
	assert.Len(t, grants, 6)
	assert.Equal(t, 6, f.repo.Len())

	seen := make(map[string]bool)
	for _, g := range grants {
		require.NotNil(t, g.CustomerID)
		seen[g.ID.Hex()] = true
	}
	assert.Len(t, seen, 6)

	// Repeating the call updates the same identities.
	_, err = f.service.BulkGrant(adminCtx(), permission.BulkGrantRequest{
		StaffID:     5,
		Scopes:      []string{"CUSTOMER_NAME_READ", "INVOICE_VIEW"},
		CustomerIDs: []int64{10, 11, 12, 12},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, f.repo.Len())
}

func TestBulkGrantWithoutCustomersIsGlobal(t *testing.T) {
	f := newFixture(t)

	grants, err := f.service.BulkGrant(adminCtx(), permission.BulkGrantRequest{
		StaffID: 5,
		Scopes:  []string{"HISTORY_VIEW", "HISTORY_EXPORT"},
	})
	require.NoError(t, err)
	require.Len(t, grants, 2)
	for _, g := range grants {
		assert.True(t, g.IsGlobal())
	}
}

func TestBulkGrantReturnsPartialResultOnFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.FailUpsertAfter = 2

	grants, err := f.service.BulkGrant(adminCtx(), permission.BulkGrantRequest{
		StaffID:     5,
		Scopes:      []string{"CUSTOMER_NAME_READ", "INVOICE_VIEW"},
		CustomerIDs: []int64{10, 11},
	})
	require.Error(t, err)
	assert.Len(t, grants, 2)
	assert.Equal(t, 2, f.repo.Len())
}

func TestRevokeThenRegrantReusesRow(t *testing.T) {
	f := newFixture(t)
	ctx := adminCtx()

	first, err := f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "CUSTOMER_DOB_READ", CustomerID: ptr(10), Notes: "first"})
	require.NoError(t, err)

	revoked, err := f.service.Revoke(ctx, first.ID.Hex())
	require.NoError(t, err)
	assert.False(t, revoked.Granted)

	ok, err := f.service.HasScopedGrant(ctx, 5, scope.CustomerDobRead, ptr(10))
	require.NoError(t, err)
	assert.False(t, ok)

	second, err := f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "CUSTOMER_DOB_READ", CustomerID: ptr(10), Notes: "again"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "again", second.Notes)
	assert.Equal(t, 1, f.repo.Len())

	ok, err = f.service.HasScopedGrant(ctx, 5, scope.CustomerDobRead, ptr(10))
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, []common_models.AuditAction{
		common_models.AuditActionGrant,
		common_models.AuditActionRevoke,
		common_models.AuditActionGrant,
	}, f.audit.actions)
}

func TestGlobalAndCustomerIdentitiesAreDistinct(t *testing.T) {
	f := newFixture(t)
	ctx := adminCtx()

	global, err := f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "CUSTOMER_NOTES_READ"})
	require.NoError(t, err)
	specific, err := f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "CUSTOMER_NOTES_READ", CustomerID: ptr(10)})
	require.NoError(t, err)
	assert.NotEqual(t, global.ID, specific.ID)

	_, err = f.service.Revoke(ctx, global.ID.Hex())
	require.NoError(t, err)

	ok, err := f.service.HasScopedGrant(ctx, 5, scope.CustomerNotesRead, ptr(10))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.service.HasScopedGrant(ctx, 5, scope.CustomerNotesRead, ptr(11))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpiredGrantIsNeverValid(t *testing.T) {
	f := newFixture(t)
	ctx := adminCtx()
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	_, err := f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "CUSTOMER_ADDRESS_READ", ExpiresAt: &past})
	require.NoError(t, err)
	_, err = f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "CUSTOMER_GENDER_READ", ExpiresAt: &future})
	require.NoError(t, err)

	ok, err := f.service.HasScopedGrant(ctx, 5, scope.CustomerAddressRead, ptr(10))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.service.HasScopedGrant(ctx, 5, scope.CustomerGenderRead, ptr(10))
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := f.service.CountExpiredActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFieldChecksFailClosed(t *testing.T) {
	f := newFixture(t)
	ctx := adminCtx()

	_, err := f.service.BulkGrant(ctx, permission.BulkGrantRequest{
		StaffID: 5,
		Scopes:  []string{"CUSTOMER_PHONE_READ", "CUSTOMER_PHONE_WRITE", "CUSTOMER_FINANCIAL_READ"},
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		field string
		write bool
		want  bool
	}{
		{name: "read phone", field: "phone", want: true},
		{name: "write phone", field: "phone", write: true, want: true},
		{name: "read email", field: "email", want: false},
		{name: "read total points", field: "totalPoints", want: true},
		{name: "write total points", field: "totalPoints", write: true, want: false},
		{name: "unknown field", field: "password", want: false},
		{name: "empty field", field: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ok bool
			var err error
			if tt.write {
				ok, err = f.service.CanWriteField(ctx, 5, tt.field, ptr(10))
			} else {
				ok, err = f.service.CanReadField(ctx, 5, tt.field, ptr(10))
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestGrantedScopesDeduplicatesAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := adminCtx()

	_, err := f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "CUSTOMER_NAME_READ"})
	require.NoError(t, err)
	_, err = f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "CUSTOMER_NAME_READ", CustomerID: ptr(10)})
	require.NoError(t, err)
	_, err = f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "INVOICE_VIEW", CustomerID: ptr(11)})
	require.NoError(t, err)

	scopes, err := f.service.GrantedScopes(ctx, 5, ptr(10))
	require.NoError(t, err)
	assert.Equal(t, []scope.Scope{scope.CustomerNameRead}, scopes)

	scopes, err = f.service.GrantedScopes(ctx, 5, ptr(11))
	require.NoError(t, err)
	assert.ElementsMatch(t, []scope.Scope{scope.CustomerNameRead, scope.InvoiceView}, scopes)
}

func TestAdministrationErrors(t *testing.T) {
	f := newFixture(t)
	staffCtx := utils.WithClaims(context.Background(), &utils.UserClaims{StaffID: 5, Role: "staff"})
	managerCtx := utils.WithClaims(context.Background(), &utils.UserClaims{StaffID: 2, Role: "Manager"})

	tests := []struct {
		name    string
		ctx     context.Context
		req     permission.GrantRequest
		wantErr error
	}{
		{name: "non admin caller", ctx: staffCtx, req: permission.GrantRequest{StaffID: 5, Scope: "INVOICE_VIEW"}, wantErr: apperr.ErrForbidden},
		{name: "unknown staff", ctx: adminCtx(), req: permission.GrantRequest{StaffID: 404, Scope: "INVOICE_VIEW"}, wantErr: apperr.ErrNotFound},
		{name: "unknown customer", ctx: adminCtx(), req: permission.GrantRequest{StaffID: 5, Scope: "INVOICE_VIEW", CustomerID: ptr(404)}, wantErr: apperr.ErrNotFound},
		{name: "unknown scope", ctx: adminCtx(), req: permission.GrantRequest{StaffID: 5, Scope: "INVOICE_PRINT"}, wantErr: apperr.ErrInvalidArgument},
		{name: "missing staff", ctx: adminCtx(), req: permission.GrantRequest{Scope: "INVOICE_VIEW"}, wantErr: apperr.ErrInvalidArgument},
		{name: "manager allowed", ctx: managerCtx, req: permission.GrantRequest{StaffID: 5, Scope: "INVOICE_VIEW"}},
		{name: "trusted caller without claims", ctx: context.Background(), req: permission.GrantRequest{StaffID: 5, Scope: "INVOICE_CREATE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Grant(tt.ctx, tt.req)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRevokeUnknownGrant(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Revoke(adminCtx(), "not-an-id")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = f.service.Revoke(adminCtx(), "65f000000000000000000000")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRevokeAllAndRevokeForCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := adminCtx()

	_, err := f.service.BulkGrant(ctx, permission.BulkGrantRequest{StaffID: 5, Scopes: []string{"CUSTOMER_NAME_READ"}, CustomerIDs: []int64{10, 11}})
	require.NoError(t, err)
	_, err = f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "INVOICE_VIEW"})
	require.NoError(t, err)

	rows, err := f.service.RevokeForCustomer(ctx, 5, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Granted)

	ok, err := f.service.HasScopedGrant(ctx, 5, scope.InvoiceView, ptr(10))
	require.NoError(t, err)
	assert.True(t, ok, "global rows survive a per-customer revoke")

	rows, err = f.service.RevokeAll(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	for _, g := range rows {
		assert.False(t, g.Granted)
	}
	assert.Equal(t, 3, f.repo.Len())
}

func TestBulkRevokeSkipsMissingIdentities(t *testing.T) {
	f := newFixture(t)
	ctx := adminCtx()

	_, err := f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "APPOINTMENT_VIEW", CustomerID: ptr(10)})
	require.NoError(t, err)

	revoked, err := f.service.BulkRevoke(ctx, permission.BulkRevokeRequest{
		StaffID:     5,
		Scopes:      []string{"APPOINTMENT_VIEW", "APPOINTMENT_CREATE"},
		CustomerIDs: []int64{10, 11},
	})
	require.NoError(t, err)
	require.Len(t, revoked, 1)
	assert.Equal(t, scope.AppointmentView, revoked[0].Scope)
}

func TestDeleteRemovesRow(t *testing.T) {
	f := newFixture(t)
	ctx := adminCtx()

	g, err := f.service.Grant(ctx, permission.GrantRequest{StaffID: 5, Scope: "CUSTOMER_DELETE"})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, g.ID.Hex()))
	assert.Equal(t, 0, f.repo.Len())

	_, err = f.service.Get(ctx, g.ID.Hex())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAuditFailureDoesNotFailGrant(t *testing.T) {
	f := newFixture(t)
	f.audit.fail = true

	g, err := f.service.Grant(adminCtx(), permission.GrantRequest{StaffID: 5, Scope: "INVOICE_UPDATE"})
	require.NoError(t, err)
	assert.True(t, g.Granted)
}
