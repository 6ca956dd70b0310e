package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/mealplan"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/router"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestClient serves the real routes over the seeded sqlite fixture
func newTestClient(t *testing.T) *Client {
	t.Helper()
	db := testdb.NewSeeded(t)
	plans, err := service.NewMealPlanService(context.Background(), mealplan.BuiltIn())
	require.NoError(t, err)

	handler := router.SetupRouter(router.Options{Logger: zap.NewNop()}, api.Dependencies{
		Recipes:   service.NewRecipeService(db.ORM),
		MealPlans: plans,
		Health:    map[string]api.HealthCheck{"database": db.HealthCheck},
		Logger:    zap.NewNop(),
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", WithHTTPClient(srv.Client()), WithLogger(zap.NewNop()))
}

func recipeIDs[T any](rows []T, id func(T) int64) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, id(r))
	}
	return ids
}

func TestClientRecipes(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	recipes, err := c.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, 6)

	recipe, err := c.GetRecipe(ctx, testdb.Pizza)
	require.NoError(t, err)
	assert.Equal(t, "Margherita Pizza", recipe.Name)

	byName, err := c.GetRecipesByName(ctx, "Rice")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, testdb.FriedRice, byName[0].RecipeID)

	ratings, err := c.GetRatings(ctx, testdb.Spaghetti)
	require.NoError(t, err)
	assert.Equal(t, []model.RatingBucket{
		{RecipeID: testdb.Spaghetti, Name: "Spaghetti Bolognese", Rating: 4, Count: 2},
		{RecipeID: testdb.Spaghetti, Name: "Spaghetti Bolognese", Rating: 2, Count: 1},
	}, ratings)

	reviews, err := c.GetReviews(ctx, testdb.Spaghetti)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Too salty for me.", reviews[0].Message)

	nutrition, err := c.GetNutrition(ctx, testdb.GardenSalad)
	require.NoError(t, err)
	assert.Equal(t, float64(180), nutrition.Calories)

	avg, err := c.GetAvgRatings(ctx)
	require.NoError(t, err)
	assert.Len(t, avg, 5)
}

func TestClientSearch(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	zero := 0.0
	rows, err := c.SearchRecipes(ctx, model.SearchParams{Vegetarian: true, MinRating: &zero})
	require.NoError(t, err)
	assert.Equal(t, []int64{testdb.Pizza, testdb.GardenSalad, testdb.Poutine},
		recipeIDs(rows, func(r model.RecipeWithRating) int64 { return r.RecipeID }))
	assert.Nil(t, rows[2].AvgRating)

	minRating := 4.0
	rows, err = c.SearchRecipes(ctx, model.SearchParams{Vegetarian: true, MinRating: &minRating})
	require.NoError(t, err)
	assert.Equal(t, []int64{testdb.Pizza},
		recipeIDs(rows, func(r model.RecipeWithRating) int64 { return r.RecipeID }))

	rows, err = c.SearchRecipes(ctx, model.SearchParams{Vegetarian: true})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	tooHigh := 9.0
	_, err = c.SearchRecipes(ctx, model.SearchParams{MinRating: &tooHigh})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "must be at most 5", apiErr.Fields["minRating"])
}

func TestClientMealPlans(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	plans, err := c.ListMealPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, []string{"potatoes", "noodles", "broth"}, plans[1].ShoppingList)

	pairs, err := c.GetMealPlanRecipes(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []model.MealPlanRecipe{{MealPlanID: 2, RecipeID: 3}, {MealPlanID: 2, RecipeID: 4}}, pairs)

	assert.NoError(t, c.Health(ctx))
}

func TestClientErrors(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.GetRecipe(ctx, testdb.MissingID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Recipe not found", apiErr.Message)

	_, err = c.GetNutrition(ctx, testdb.Poutine)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Nutrition info not found", apiErr.Message)

	_, err = c.GetMealPlanRecipes(ctx, 42)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListRecipes(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestClientHonorsContext(t *testing.T) {
	c := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListRecipes(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClientListsDecodeBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"recipeID":7,"name":"Tacos"}]`))
	}))
	defer srv.Close()

	recipes, err := New(srv.URL).ListRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tacos", recipes[0].Name)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	recipes, err = New(failing.URL).ListRecipes(context.Background())
	require.Error(t, err)
	assert.Nil(t, recipes)
}
