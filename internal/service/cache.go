package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheStore is a byte-oriented key value store with expiry
type CacheStore interface {
	// Get returns ok=false on a miss
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache is a CacheStore backed by Redis
type RedisCache struct {
	client redis.Cmdable
}

// NewRedisCache creates a CacheStore on top of a Redis client
func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// CachedRecipeService is a read-through cache in front of an IRecipeService.
// Recipe details, nutrition and the average rating list are cached; the other
// operations go straight to the wrapped service. Cache failures are logged and
// otherwise ignored, and errors (including not found) are never cached.
type CachedRecipeService struct {
	IRecipeService
	store  CacheStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRecipeService wraps next with a cache
func NewCachedRecipeService(next IRecipeService, store CacheStore, ttl time.Duration, logger *zap.Logger) *CachedRecipeService {
	return &CachedRecipeService{
		IRecipeService: next,
		store:          store,
		ttl:            ttl,
		logger:         logger,
	}
}

// CacheKey builds the key under which an operation's result is stored
func CacheKey(op string, id int64) string {
	return "recipes:" + op + ":" + strconv.FormatInt(id, 10)
}

func (s *CachedRecipeService) GetRecipeByID(ctx context.Context, id int64) (*model.Recipe, error) {
	return readThrough(ctx, s, CacheKey("id", id), func() (*model.Recipe, error) {
		return s.IRecipeService.GetRecipeByID(ctx, id)
	})
}

func (s *CachedRecipeService) GetRecipeNutrition(ctx context.Context, id int64) (*model.NutritionInfo, error) {
	return readThrough(ctx, s, CacheKey("nutrition", id), func() (*model.NutritionInfo, error) {
		return s.IRecipeService.GetRecipeNutrition(ctx, id)
	})
}

func (s *CachedRecipeService) GetAvgRating(ctx context.Context) ([]model.RecipeWithRating, error) {
	return readThrough(ctx, s, CacheKey("avgrating", 0), func() ([]model.RecipeWithRating, error) {
		return s.IRecipeService.GetAvgRating(ctx)
	})
}

func readThrough[T any](ctx context.Context, s *CachedRecipeService, key string, load func() (T, error)) (T, error) {
	if raw, ok, err := s.store.Get(ctx, key); err != nil {
		s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		s.logger.Warn("Discarding undecodable cache entry", zap.String("key", key))
	}

	val, err := load()
	if err != nil {
		return val, err
	}

	raw, err := json.Marshal(val)
	if err != nil {
		s.logger.Warn("Cache encode failed", zap.String("key", key), zap.Error(err))
		return val, nil
	}
	if err := s.store.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return val, nil
}
