package mocks

import (
	"context"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockRecipeService is a mock implementation of the IRecipeService interface
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) GetAllRecipes(ctx context.Context) ([]model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetRecipeByID(ctx context.Context, id int64) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetRecipeByName(ctx context.Context, name string) ([]model.Recipe, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetAvgRating(ctx context.Context) ([]model.RecipeWithRating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecipeWithRating), args.Error(1)
}

func (m *MockRecipeService) GetRecipeRatings(ctx context.Context, id int64) ([]model.RatingBucket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RatingBucket), args.Error(1)
}

func (m *MockRecipeService) GetRecipeReviews(ctx context.Context, id int64) ([]model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockRecipeService) GetRecipeNutrition(ctx context.Context, id int64) (*model.NutritionInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NutritionInfo), args.Error(1)
}

func (m *MockRecipeService) SearchRecipes(ctx context.Context, params model.SearchParams) ([]model.RecipeWithRating, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecipeWithRating), args.Error(1)
}
