package config

import (
	"testing"

	"github.com/farellandr/techfesia/internal/models"
	"github.com/farellandr/techfesia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateSeedsRolesAndStaff(t *testing.T) {
	db := testutil.NewDB(t)

	cfg := DefaultConfig()
	cfg.Staff = StaffConfig{Username: "admin", Email: "admin@example.com", Password: "adminpass"}

	require.NoError(t, Migrate(db, cfg))
	require.NoError(t, Migrate(db, cfg))

	var roles int64
	require.NoError(t, db.Model(&models.Role{}).Count(&roles).Error)
	assert.Equal(t, int64(2), roles)

	var staff models.User
	require.NoError(t, db.Preload("Role").Where("username = ?", "admin").First(&staff).Error)
	assert.True(t, staff.IsStaff())
}
