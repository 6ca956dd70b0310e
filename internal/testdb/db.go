// Package testdb provides database fixtures for tests: an in-memory sqlite
// database by default, and a postgres container behind the integration tag.
package testdb

import (
	"testing"

	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns an empty, migrated in-memory database
func New(t *testing.T) *database.DB {
	t.Helper()

	orm, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	db, err := database.Wrap(orm)
	require.NoError(t, err)

	// Every new connection would get its own empty :memory: database
	db.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(orm))

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Error closing test database: %v", err)
		}
	})
	return db
}

// NewSeeded returns an in-memory database loaded with the Sample dataset
func NewSeeded(t *testing.T) *database.DB {
	t.Helper()
	db := New(t)
	require.NoError(t, Seed(db.ORM))
	return db
}

// Logger returns a logger that discards output, for components that require one
func Logger() *zap.Logger {
	return zap.NewNop()
}
