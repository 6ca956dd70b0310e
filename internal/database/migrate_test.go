//go:build integration

package database_test

import (
	"testing"

	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigratorOnPostgres(t *testing.T) {
	db := testdb.NewPostgres(t)

	m, err := database.NewMigrator(db.DB, "mealplanner", zap.NewNop())
	require.NoError(t, err)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	// Already at the latest version
	require.NoError(t, m.Up())

	var count int64
	require.NoError(t, db.ORM.Table("recipe").Count(&count).Error)
	assert.Equal(t, int64(6), count)
}
