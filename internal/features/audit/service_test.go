package audit

import (
	"context"
	"testing"

	common_models "staff-acl/internal/common/models"
	"staff-acl/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockAuditRepo struct {
	Created    []common_models.AuditLog
	LastLimit  int64
	LastOffset int64
}

func (m *MockAuditRepo) Create(ctx context.Context, log common_models.AuditLog) error {
	m.Created = append(m.Created, log)
	return nil
}

func (m *MockAuditRepo) List(ctx context.Context, filters map[string]interface{}, limit, offset int64) ([]common_models.AuditLog, error) {
	m.LastLimit = limit
	m.LastOffset = offset
	return m.Created, nil
}

func TestLogChangeRecordsActor(t *testing.T) {
	repo := &MockAuditRepo{}
	service := NewAuditService(repo)

	ctx := utils.WithClaims(context.Background(), &utils.UserClaims{StaffID: 9, Role: "admin"})
	err := service.LogChange(ctx, common_models.AuditActionGrant, "field_permission", "abc", map[string]common_models.Change{
		"granted": {Old: false, New: true},
	})
	require.NoError(t, err)

	err = service.LogChange(context.Background(), common_models.AuditActionRevoke, "field_permission", "abc", nil)
	require.NoError(t, err)

	require.Len(t, repo.Created, 2)
	assert.Equal(t, int64(9), repo.Created[0].ActorID)
	assert.Equal(t, int64(0), repo.Created[1].ActorID)
	assert.False(t, repo.Created[0].Timestamp.IsZero())
}

func TestListLogsPaging(t *testing.T) {
	repo := &MockAuditRepo{}
	service := NewAuditService(repo)

	_, err := service.ListLogs(context.Background(), nil, 3, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), repo.LastLimit)
	assert.Equal(t, int64(40), repo.LastOffset)

	_, err = service.ListLogs(context.Background(), nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(10), repo.LastLimit)
	assert.Equal(t, int64(0), repo.LastOffset)
}
