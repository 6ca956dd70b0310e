package service

import (
	"context"
	"fmt"

	"github.com/pageza/mealplanner/backend/internal/apperr"
	"github.com/pageza/mealplanner/backend/internal/mealplan"
	"github.com/pageza/mealplanner/backend/internal/model"
)

// MealPlanService serves the meal plan catalog, loaded once at startup
type MealPlanService struct {
	plans []model.MealPlan
	byID  map[int64]model.MealPlan
}

// NewMealPlanService loads the catalog from source
func NewMealPlanService(ctx context.Context, source mealplan.Source) (*MealPlanService, error) {
	plans, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plans: %w", err)
	}

	byID := make(map[int64]model.MealPlan, len(plans))
	for _, p := range plans {
		byID[p.ID] = p
	}
	return &MealPlanService{plans: plans, byID: byID}, nil
}

// ListMealPlans returns every plan in catalog order
func (s *MealPlanService) ListMealPlans(ctx context.Context) ([]model.MealPlan, error) {
	out := make([]model.MealPlan, len(s.plans))
	copy(out, s.plans)
	return out, nil
}

// GetMealPlanRecipes returns the (plan, recipe) pairs of a plan in plan order
func (s *MealPlanService) GetMealPlanRecipes(ctx context.Context, id int64) ([]model.MealPlanRecipe, error) {
	plan, ok := s.byID[id]
	if !ok {
		return nil, apperr.NotFound("GetMealPlanRecipes", "Meal plan not found")
	}

	pairs := make([]model.MealPlanRecipe, 0, len(plan.RecipeIDs))
	for _, recipeID := range plan.RecipeIDs {
		pairs = append(pairs, model.MealPlanRecipe{MealPlanID: plan.ID, RecipeID: recipeID})
	}
	return pairs, nil
}
