package mocks

import (
	"context"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockMealPlanService is a mock implementation of the IMealPlanService interface
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) ListMealPlans(ctx context.Context) ([]model.MealPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) GetMealPlanRecipes(ctx context.Context, id int64) ([]model.MealPlanRecipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MealPlanRecipe), args.Error(1)
}
