package service

import (
	"context"

	"github.com/pageza/mealplanner/backend/internal/apperr"
	"github.com/pageza/mealplanner/backend/internal/model"
)

// dietaryJoins maps each dietary flag to the membership table it filters on
var dietaryJoins = []struct {
	enabled func(model.SearchParams) bool
	join    string
}{
	{func(p model.SearchParams) bool { return p.SugarFree }, "JOIN sugar_free_recipe AS sf ON sf.recipe_id = r.recipe_id"},
	{func(p model.SearchParams) bool { return p.LowCalorie }, "JOIN low_calorie_recipe AS lc ON lc.recipe_id = r.recipe_id"},
	{func(p model.SearchParams) bool { return p.Vegetarian }, "JOIN vegetarian_recipe AS vg ON vg.recipe_id = r.recipe_id"},
}

// SearchRecipes filters recipes by dietary category, name and minimum average
// rating. Every filter is optional and a minimum rating of 0 does not filter.
// Unrated recipes have a nil AvgRating and never satisfy a positive minimum.
func (s *RecipeService) SearchRecipes(ctx context.Context, params model.SearchParams) ([]model.RecipeWithRating, error) {
	q := s.db.WithContext(ctx).
		Table("recipe AS r").
		Select("r.recipe_id, r.name, r.instructions, CAST(AVG(ra.score) AS DOUBLE PRECISION) AS avg_rating")

	for _, dj := range dietaryJoins {
		if dj.enabled(params) {
			q = q.Joins(dj.join)
		}
	}
	q = q.Joins("LEFT JOIN rating AS ra ON ra.recipe_id = r.recipe_id")

	if params.Name != "" {
		q = q.Where(`r.name LIKE ? ESCAPE '\'`, containsPattern(params.Name))
	}

	q = q.Group("r.recipe_id, r.name, r.instructions")
	if params.MinRating != nil && *params.MinRating > 0 {
		q = q.Having("AVG(ra.score) >= ?", *params.MinRating)
	}

	rows := []model.RecipeWithRating{}
	if err := q.Order("r.recipe_id").Scan(&rows).Error; err != nil {
		return nil, apperr.Database("SearchRecipes", msgFetchRecipes, err)
	}
	return rows, nil
}
