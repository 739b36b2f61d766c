package masking_test

import (
	"context"
	"testing"

	"staff-acl/internal/config"
	"staff-acl/internal/features/directory/directorytest"
	"staff-acl/internal/features/level"
	"staff-acl/internal/features/level/leveltest"
	"staff-acl/internal/features/masking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(repo *leveltest.MemoryLevelRepository) masking.MaskingService {
	dir := directorytest.New().AddStaff(5, "Linh", "staff")
	levels := level.NewLevelService(repo, dir, nil, &config.Config{}, zap.NewNop())
	return masking.NewMaskingService(levels, zap.NewNop())
}

func TestMaskWithoutLevelRowLeavesPhone(t *testing.T) {
	service := newService(leveltest.NewMemoryLevelRepository())

	out, err := service.Mask(context.Background(), masking.CustomerView{ID: 10, FullName: "Nguyen Thi Mai", Phone: "0901234567"}, 5)
	require.NoError(t, err)
	assert.Equal(t, "0901234567", out.Phone)
	assert.Equal(t, "Nguyen Thi Mai", out.FullName)
}

func TestMaskHiddenPhone(t *testing.T) {
	repo := leveltest.NewMemoryLevelRepository()
	g := level.NewLevelGrant(5, level.LevelEdit)
	g.CustomerPhone = level.LevelNo
	repo.Put(g)
	service := newService(repo)

	out, err := service.Mask(context.Background(), masking.CustomerView{ID: 10, FullName: "Nguyen Thi Mai", Phone: "0901234567"}, 5)
	require.NoError(t, err)
	assert.Equal(t, "090***67", out.Phone)
	assert.Equal(t, "Nguyen Thi Mai", out.FullName)

	basic, err := service.MaskBasic(context.Background(), masking.CustomerView{ID: 10, FullName: "Nguyen Thi Mai", Phone: "0901234567"}, 5)
	require.NoError(t, err)
	assert.Equal(t, "090***67", basic.Phone)
}
