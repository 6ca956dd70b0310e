package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pageza/mealplanner/backend/internal/apperr"
	"github.com/pageza/mealplanner/backend/internal/model"
	"gorm.io/gorm"
)

// Public messages for failed reads. The driver error is kept as the cause.
const (
	msgFetchRecipes   = "Error fetching recipes"
	msgFetchRecipe    = "Error fetching recipe"
	msgFetchReviews   = "Error fetching review"
	msgFetchNutrition = "Error fetching nutrition"
	msgFetchRatings   = "Error fetching ratings"

	msgRecipeNotFound    = "Recipe not found"
	msgNutritionNotFound = "Nutrition info not found"
)

// RecipeService handles recipe read operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// GetAllRecipes lists every recipe ordered by id
func (s *RecipeService) GetAllRecipes(ctx context.Context) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	if err := s.db.WithContext(ctx).Order("recipe_id").Find(&recipes).Error; err != nil {
		return nil, apperr.Database("GetAllRecipes", msgFetchRecipes, err)
	}
	return recipes, nil
}

// GetRecipeByID retrieves a recipe by ID
func (s *RecipeService) GetRecipeByID(ctx context.Context, id int64) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", id).Take(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("GetRecipeByID", msgRecipeNotFound)
		}
		return nil, apperr.Database("GetRecipeByID", msgFetchRecipe, err)
	}
	return &recipe, nil
}

// GetRecipeByName returns the recipes whose name contains name. Wildcards in
// name match literally; an empty name matches every recipe.
func (s *RecipeService) GetRecipeByName(ctx context.Context, name string) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	err := s.db.WithContext(ctx).
		Where(`name LIKE ? ESCAPE '\'`, containsPattern(name)).
		Order("recipe_id").
		Find(&recipes).Error
	if err != nil {
		return nil, apperr.Database("GetRecipeByName", msgFetchRecipes, err)
	}
	return recipes, nil
}

// GetAvgRating lists the rated recipes with their mean score. Recipes without
// ratings are left out.
func (s *RecipeService) GetAvgRating(ctx context.Context) ([]model.RecipeWithRating, error) {
	averages := s.db.Table("rating").
		Select("recipe_id, CAST(AVG(score) AS DOUBLE PRECISION) AS average_rating").
		Group("recipe_id")

	rows := []model.RecipeWithRating{}
	err := s.db.WithContext(ctx).
		Table("recipe AS r").
		Select("r.recipe_id, r.name, r.instructions, ar.average_rating AS avg_rating").
		Joins("JOIN (?) AS ar ON ar.recipe_id = r.recipe_id", averages).
		Order("r.recipe_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Database("GetAvgRating", msgFetchRecipes, err)
	}
	return rows, nil
}

// GetRecipeRatings returns the rating histogram of a recipe: one bucket per
// distinct score, highest score first
func (s *RecipeService) GetRecipeRatings(ctx context.Context, id int64) ([]model.RatingBucket, error) {
	buckets := []model.RatingBucket{}
	err := s.db.WithContext(ctx).
		Table("rating AS ra").
		Select("r.recipe_id, r.name, ra.score AS rating, COUNT(*) AS count").
		Joins("JOIN recipe AS r ON r.recipe_id = ra.recipe_id").
		Where("ra.recipe_id = ?", id).
		Group("r.recipe_id, r.name, ra.score").
		Order("ra.score DESC").
		Scan(&buckets).Error
	if err != nil {
		return nil, apperr.Database("GetRecipeRatings", msgFetchRatings, err)
	}
	return buckets, nil
}

// GetRecipeReviews lists the reviews of a recipe, newest first
func (s *RecipeService) GetRecipeReviews(ctx context.Context, id int64) ([]model.Review, error) {
	reviews := []model.Review{}
	err := s.db.WithContext(ctx).
		Table("review AS rv").
		Select("rv.review_id, rv.recipe_id, rv.user_id, rv.review_date, rv.message").
		Joins("JOIN recipe AS r ON r.recipe_id = rv.recipe_id").
		Where("rv.recipe_id = ?", id).
		Order("rv.review_date DESC, rv.review_id DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, apperr.Database("GetRecipeReviews", msgFetchReviews, err)
	}
	return reviews, nil
}

// GetRecipeNutrition retrieves the nutrition facts of a recipe
func (s *RecipeService) GetRecipeNutrition(ctx context.Context, id int64) (*model.NutritionInfo, error) {
	var info model.NutritionInfo
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", id).Take(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("GetRecipeNutrition", msgNutritionNotFound)
		}
		return nil, apperr.Database("GetRecipeNutrition", msgFetchNutrition, err)
	}
	return &info, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with LIKE
// metacharacters in s escaped by backslash
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
