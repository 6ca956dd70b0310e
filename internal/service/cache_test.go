package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pageza/mealplanner/backend/internal/apperr"
	"github.com/pageza/mealplanner/backend/internal/mocks"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, false, errors.New("connection refused")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func TestCachedGetRecipeByID(t *testing.T) {
	next := new(mocks.MockRecipeService)
	next.On("GetRecipeByID", mock.Anything, int64(2)).
		Return(&model.Recipe{RecipeID: 2, Name: "Pizza"}, nil).Once()

	store := newMemoryStore()
	svc := NewCachedRecipeService(next, store, time.Minute, zap.NewNop())

	for i := 0; i < 3; i++ {
		recipe, err := svc.GetRecipeByID(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "Pizza", recipe.Name)
	}

	next.AssertExpectations(t)
	assert.Contains(t, store.data, "recipes:id:2")
	assert.Equal(t, time.Minute, store.ttls["recipes:id:2"])
}

func TestCachedNotFoundIsNotStored(t *testing.T) {
	next := new(mocks.MockRecipeService)
	next.On("GetRecipeNutrition", mock.Anything, int64(6)).
		Return(nil, apperr.NotFound("GetRecipeNutrition", "Nutrition info not found")).Twice()

	store := newMemoryStore()
	svc := NewCachedRecipeService(next, store, time.Minute, zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err := svc.GetRecipeNutrition(context.Background(), 6)
		assert.True(t, apperr.IsNotFound(err))
	}
	next.AssertExpectations(t)
	assert.Empty(t, store.data)
}

func TestCacheFailureFallsThrough(t *testing.T) {
	rating := 4.5
	next := new(mocks.MockRecipeService)
	next.On("GetAvgRating", mock.Anything).
		Return([]model.RecipeWithRating{{RecipeID: 1, AvgRating: &rating}}, nil).Twice()

	store := newMemoryStore()
	store.failGet = true
	svc := NewCachedRecipeService(next, store, time.Minute, zap.NewNop())

	for i := 0; i < 2; i++ {
		rows, err := svc.GetAvgRating(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 4.5, *rows[0].AvgRating)
	}
	next.AssertExpectations(t)
}

func TestCachedServicePassesThroughUncachedOperations(t *testing.T) {
	next := new(mocks.MockRecipeService)
	next.On("GetRecipeReviews", mock.Anything, int64(1)).Return([]model.Review{}, nil).Twice()

	svc := NewCachedRecipeService(next, newMemoryStore(), time.Minute, zap.NewNop())
	for i := 0; i < 2; i++ {
		_, err := svc.GetRecipeReviews(context.Background(), 1)
		require.NoError(t, err)
	}
	next.AssertExpectations(t)
}
