package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/testdb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHealthCheck(t *testing.T) {
	db := testdb.New(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, db.HealthCheck(ctx))

	require.NoError(t, db.Close())
	assert.Error(t, db.HealthCheck(ctx))
}

func TestAutoMigrateCreatesTables(t *testing.T) {
	db := testdb.New(t)

	for _, table := range []string{
		"recipe", "rating", "review", "nutrition_info_recipe",
		"sugar_free_recipe", "low_calorie_recipe", "vegetarian_recipe",
	} {
		assert.True(t, db.ORM.Migrator().HasTable(table), table)
	}
	assert.True(t, db.ORM.Migrator().HasColumn(&model.Review{}, "review_date"))
	assert.True(t, db.ORM.Migrator().HasColumn(&model.NutritionInfo{}, "protein_content"))
}

func TestRunMigrationsUsesModelsOnSQLite(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, db.ORM.Migrator().DropTable(&model.VegetarianRecipe{}))

	require.NoError(t, database.RunMigrations(db, config.DatabaseConfig{Name: "mealplanner"}, zap.NewNop()))
	assert.True(t, db.ORM.Migrator().HasTable(&model.VegetarianRecipe{}))
}

func TestStatsCollectorRegisters(t *testing.T) {
	db := testdb.New(t)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(db.StatsCollector("mealplanner")))

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "go_sql_max_open_connections")
}

func TestGormLoggerLevel(t *testing.T) {
	l := database.NewGormLogger(zap.NewNop(), 100*time.Millisecond)
	assert.NotNil(t, l)
}
