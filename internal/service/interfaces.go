package service

import (
	"context"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	GetAllRecipes(ctx context.Context) ([]model.Recipe, error)
	GetRecipeByID(ctx context.Context, id int64) (*model.Recipe, error)
	GetRecipeByName(ctx context.Context, name string) ([]model.Recipe, error)
	GetAvgRating(ctx context.Context) ([]model.RecipeWithRating, error)
	GetRecipeRatings(ctx context.Context, id int64) ([]model.RatingBucket, error)
	GetRecipeReviews(ctx context.Context, id int64) ([]model.Review, error)
	GetRecipeNutrition(ctx context.Context, id int64) (*model.NutritionInfo, error)
	SearchRecipes(ctx context.Context, params model.SearchParams) ([]model.RecipeWithRating, error)
}

// IMealPlanService defines the interface for meal plan operations
type IMealPlanService interface {
	ListMealPlans(ctx context.Context) ([]model.MealPlan, error)
	GetMealPlanRecipes(ctx context.Context, id int64) ([]model.MealPlanRecipe, error)
}

var (
	_ IRecipeService   = (*RecipeService)(nil)
	_ IRecipeService   = (*CachedRecipeService)(nil)
	_ IMealPlanService = (*MealPlanService)(nil)
)
