package ui

import (
	"context"
	"sync"

	"github.com/pageza/mealplanner/backend/internal/apperr"
	"github.com/pageza/mealplanner/backend/internal/model"
	"go.uber.org/zap"
)

// RecipesPage lists recipes with their average rating. Its overlays fetch on
// every open; nothing is cached between opens.
type RecipesPage struct {
	api    API
	logger *zap.Logger

	mu       sync.Mutex
	recipes  []model.RecipeWithRating
	selected int64

	Recipe    *Overlay[*model.Recipe]
	Ratings   *Overlay[[]model.RatingBucket]
	Reviews   *Overlay[[]model.Review]
	Nutrition *Overlay[*model.NutritionInfo]
}

func NewRecipesPage(api API, logger *zap.Logger) *RecipesPage {
	logger = logger.Named("recipes-page")
	return &RecipesPage{
		api:       api,
		logger:    logger,
		Recipe:    NewOverlay[*model.Recipe]("recipe", logger),
		Ratings:   NewOverlay[[]model.RatingBucket]("ratings", logger),
		Reviews:   NewOverlay[[]model.Review]("reviews", logger),
		Nutrition: NewOverlay[*model.NutritionInfo]("nutrition", logger),
	}
}

// Load fetches the rated recipe list
func (p *RecipesPage) Load(ctx context.Context) error {
	recipes, err := p.api.GetAvgRatings(ctx)
	if err != nil {
		p.logger.Error("Error loading recipes", zap.Error(err))
		return err
	}
	p.setRecipes(recipes)
	return nil
}

// Search replaces the list with the recipes matching params
func (p *RecipesPage) Search(ctx context.Context, params model.SearchParams) error {
	recipes, err := p.api.SearchRecipes(ctx, params)
	if err != nil {
		p.logger.Error("Error searching recipes", zap.Error(err))
		return err
	}
	p.setRecipes(recipes)
	return nil
}

func (p *RecipesPage) setRecipes(recipes []model.RecipeWithRating) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recipes = recipes
}

// Recipes returns the listed recipes
func (p *RecipesPage) Recipes() []model.RecipeWithRating {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.RecipeWithRating(nil), p.recipes...)
}

// Selected returns the recipe the last overlay was opened for
func (p *RecipesPage) Selected() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

func (p *RecipesPage) selectRecipe(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = id
}

func (p *RecipesPage) OpenRecipe(ctx context.Context, id int64) {
	p.selectRecipe(id)
	p.Recipe.Open(ctx, func(ctx context.Context) (*model.Recipe, error) {
		return p.api.GetRecipe(ctx, id)
	})
}

func (p *RecipesPage) OpenRatings(ctx context.Context, id int64) {
	p.selectRecipe(id)
	p.Ratings.Open(ctx, func(ctx context.Context) ([]model.RatingBucket, error) {
		return p.api.GetRatings(ctx, id)
	})
}

func (p *RecipesPage) OpenReviews(ctx context.Context, id int64) {
	p.selectRecipe(id)
	p.Reviews.Open(ctx, func(ctx context.Context) ([]model.Review, error) {
		return p.api.GetReviews(ctx, id)
	})
}

func (p *RecipesPage) OpenNutrition(ctx context.Context, id int64) {
	p.selectRecipe(id)
	p.Nutrition.Open(ctx, func(ctx context.Context) (*model.NutritionInfo, error) {
		return p.api.GetNutrition(ctx, id)
	})
}

// MealPlansPage lists meal plans. The shopping list overlay shows data the
// page already has; the recipes overlay loads the plan's recipe cards.
type MealPlansPage struct {
	api    API
	loader *MealPlanRecipesLoader
	logger *zap.Logger

	mu    sync.Mutex
	plans []model.MealPlan

	ShoppingList *Overlay[[]string]
	Recipes      *Overlay[[]RecipeCard]
}

func NewMealPlansPage(api API, logger *zap.Logger) *MealPlansPage {
	logger = logger.Named("mealplans-page")
	return &MealPlansPage{
		api:          api,
		loader:       NewMealPlanRecipesLoader(api),
		logger:       logger,
		ShoppingList: NewOverlay[[]string]("shopping-list", logger),
		Recipes:      NewOverlay[[]RecipeCard]("mealplan-recipes", logger),
	}
}

// Load fetches the meal plan catalog
func (p *MealPlansPage) Load(ctx context.Context) error {
	plans, err := p.api.ListMealPlans(ctx)
	if err != nil {
		p.logger.Error("Error loading meal plans", zap.Error(err))
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.plans = plans
	return nil
}

// Plans returns the loaded meal plans
func (p *MealPlansPage) Plans() []model.MealPlan {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.MealPlan(nil), p.plans...)
}

// OpenShoppingList shows the shopping list of a loaded plan
func (p *MealPlansPage) OpenShoppingList(id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, plan := range p.plans {
		if plan.ID == id {
			p.ShoppingList.Show(append([]string(nil), plan.ShoppingList...))
			return nil
		}
	}
	return apperr.NotFound("OpenShoppingList", "Meal plan not found")
}

// OpenRecipes loads the recipe cards of a plan into the recipes overlay
func (p *MealPlansPage) OpenRecipes(ctx context.Context, id int64) {
	p.Recipes.Open(ctx, func(ctx context.Context) ([]RecipeCard, error) {
		return p.loader.Load(ctx, id)
	})
}
