package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ADMIN_ROLES", " Admin, manager ,,")
	t.Setenv("SKIP_AUTH", "true")
	t.Setenv("EXPIRY_REPORT_SCHEDULE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"admin", "manager"}, cfg.AdminRoles)
	assert.True(t, cfg.SkipAuth)
	assert.Empty(t, cfg.ExpiryReportSchedule)
	assert.False(t, cfg.IsProduction())
}
