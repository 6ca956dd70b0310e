//go:build integration

// Package integration runs the full HTTP stack against postgres and redis
// containers.
package integration

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/client"
	"github.com/pageza/mealplanner/backend/internal/mealplan"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/server"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/testdb"
	"github.com/pageza/mealplanner/backend/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAPIAgainstPostgresAndRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db := testdb.NewPostgres(t)
	rdb := testdb.NewRedis(t)

	cfg := &config.Config{
		Database:  config.DatabaseConfig{Name: "mealplanner"},
		Cache:     config.CacheConfig{TTL: time.Minute},
		RateLimit: config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1000, Burst: 100},
	}
	handler, err := server.Handler(ctx, cfg, db, rdb, mealplan.BuiltIn(), zap.NewNop())
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	defer srv.Close()
	api := client.New(srv.URL)

	require.NoError(t, api.Health(ctx))

	avg, err := api.GetAvgRatings(ctx)
	require.NoError(t, err)
	require.Len(t, avg, 5)
	require.NotNil(t, avg[0].AvgRating)
	assert.InDelta(t, 10.0/3.0, *avg[0].AvgRating, 1e-9)

	// Served through the read-through cache
	recipe, err := api.GetRecipe(ctx, testdb.Spaghetti)
	require.NoError(t, err)
	assert.Equal(t, "Spaghetti Bolognese", recipe.Name)
	cached, err := rdb.Exists(ctx, service.CacheKey("id", testdb.Spaghetti)).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached)

	// LIKE is case-sensitive on postgres
	byName, err := api.GetRecipesByName(ctx, "rice")
	require.NoError(t, err)
	assert.Empty(t, byName)

	minRating := 3.0
	rows, err := api.SearchRecipes(ctx, model.SearchParams{Vegetarian: true, MinRating: &minRating})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, testdb.Pizza, rows[0].RecipeID)
	assert.Equal(t, testdb.GardenSalad, rows[1].RecipeID)

	cards, err := ui.NewMealPlanRecipesLoader(api).Load(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "3.3", cards[0].Rating)
	assert.Equal(t, "4.7", cards[1].Rating)
}
