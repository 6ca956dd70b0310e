package ui

import (
	"context"

	"github.com/pageza/mealplanner/backend/internal/model"
	"golang.org/x/sync/errgroup"
)

// API is the part of the HTTP client the pages use
type API interface {
	GetRecipe(ctx context.Context, id int64) (*model.Recipe, error)
	GetAvgRatings(ctx context.Context) ([]model.RecipeWithRating, error)
	GetRatings(ctx context.Context, id int64) ([]model.RatingBucket, error)
	GetReviews(ctx context.Context, id int64) ([]model.Review, error)
	GetNutrition(ctx context.Context, id int64) (*model.NutritionInfo, error)
	SearchRecipes(ctx context.Context, params model.SearchParams) ([]model.RecipeWithRating, error)
	ListMealPlans(ctx context.Context) ([]model.MealPlan, error)
	GetMealPlanRecipes(ctx context.Context, id int64) ([]model.MealPlanRecipe, error)
}

// RecipeCard is a recipe of a meal plan with its rating histogram
type RecipeCard struct {
	Recipe  model.Recipe
	Ratings []model.RatingBucket
	// Rating is the formatted weighted average, "n/a" for unrated recipes
	Rating string
}

// MealPlanRecipesLoader builds the recipe cards of a meal plan
type MealPlanRecipesLoader struct {
	api API
	// concurrency bounds the per-recipe requests in flight
	concurrency int
}

func NewMealPlanRecipesLoader(api API) *MealPlanRecipesLoader {
	return &MealPlanRecipesLoader{api: api, concurrency: 8}
}

// Load fetches the plan's recipe ids, then every recipe and its ratings
// concurrently. Cards keep plan order. The first failure cancels the rest.
func (l *MealPlanRecipesLoader) Load(ctx context.Context, mealPlanID int64) ([]RecipeCard, error) {
	pairs, err := l.api.GetMealPlanRecipes(ctx, mealPlanID)
	if err != nil {
		return nil, err
	}

	cards := make([]RecipeCard, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, pair := range pairs {
		i, id := i, pair.RecipeID
		g.Go(func() error {
			recipe, err := l.api.GetRecipe(gctx, id)
			if err != nil {
				return err
			}
			ratings, err := l.api.GetRatings(gctx, id)
			if err != nil {
				return err
			}
			cards[i] = RecipeCard{
				Recipe:  *recipe,
				Ratings: ratings,
				Rating:  FormatRating(AverageRating(ratings)),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cards, nil
}
