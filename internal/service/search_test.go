package service

import (
	"context"
	"testing"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestSearchRecipes(t *testing.T) {
	svc := newTestRecipeService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params model.SearchParams
		want   []int64
	}{
		{
			name:   "no filters",
			params: model.SearchParams{},
			want:   []int64{testdb.Spaghetti, testdb.Pizza, testdb.GardenSalad, testdb.Ramen, testdb.FriedRice, testdb.Poutine},
		},
		{
			name:   "vegetarian",
			params: model.SearchParams{Vegetarian: true},
			want:   []int64{testdb.Pizza, testdb.GardenSalad, testdb.Poutine},
		},
		{
			name:   "sugar free and low calorie",
			params: model.SearchParams{SugarFree: true, LowCalorie: true},
			want:   []int64{testdb.GardenSalad, testdb.Poutine},
		},
		{
			name:   "min rating",
			params: model.SearchParams{MinRating: ptr(4.0)},
			want:   []int64{testdb.Pizza, testdb.FriedRice},
		},
		{
			name:   "min rating zero does not filter",
			params: model.SearchParams{MinRating: ptr(0.0)},
			want:   []int64{testdb.Spaghetti, testdb.Pizza, testdb.GardenSalad, testdb.Ramen, testdb.FriedRice, testdb.Poutine},
		},
		{
			name:   "name and category",
			params: model.SearchParams{Name: "Salad", Vegetarian: true, SugarFree: true},
			want:   []int64{testdb.GardenSalad},
		},
		{
			name:   "name with wildcard is literal",
			params: model.SearchParams{Name: "%"},
			want:   []int64{},
		},
		{
			name:   "every filter",
			params: model.SearchParams{Name: "Pizza", Vegetarian: true, MinRating: ptr(4.5)},
			want:   []int64{testdb.Pizza},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := svc.SearchRecipes(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, recipeIDs(rows, func(r model.RecipeWithRating) int64 { return r.RecipeID }))
		})
	}
}

// Without filters the search returns the average rating list plus the unrated recipes
func TestSearchRecipesSupersetOfAvgRating(t *testing.T) {
	svc := newTestRecipeService(t)
	ctx := context.Background()

	all, err := svc.SearchRecipes(ctx, model.SearchParams{})
	require.NoError(t, err)
	rated, err := svc.GetAvgRating(ctx)
	require.NoError(t, err)

	byID := make(map[int64]model.RecipeWithRating, len(all))
	for _, r := range all {
		byID[r.RecipeID] = r
	}
	for _, r := range rated {
		got, ok := byID[r.RecipeID]
		require.True(t, ok, "recipe %d missing from search", r.RecipeID)
		require.NotNil(t, got.AvgRating)
		assert.InDelta(t, *r.AvgRating, *got.AvgRating, 1e-9)
		delete(byID, r.RecipeID)
	}

	require.Len(t, byID, 1)
	assert.Nil(t, byID[testdb.Poutine].AvgRating)
}

func TestSearchRecipesMinRatingZeroKeepsUnrated(t *testing.T) {
	svc := newTestRecipeService(t)

	rows, err := svc.SearchRecipes(context.Background(), model.SearchParams{MinRating: ptr(0.0)})
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, testdb.Poutine, rows[5].RecipeID)
	assert.Nil(t, rows[5].AvgRating)
}
