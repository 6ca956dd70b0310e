package model

import "time"

// Recipe is a row of the recipe table
type Recipe struct {
	RecipeID     int64  `gorm:"column:recipe_id;primaryKey;autoIncrement" json:"recipeID"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Instructions string `gorm:"type:text;not null" json:"instructions"`
}

func (Recipe) TableName() string {
	return "recipe"
}

// Rating is a single user's score for a recipe
type Rating struct {
	RatingID int64 `gorm:"column:rating_id;primaryKey;autoIncrement" json:"ratingID"`
	RecipeID int64 `gorm:"column:recipe_id;not null;index" json:"recipeID"`
	UserID   int64 `gorm:"column:user_id;not null" json:"userID"`
	Score    int   `gorm:"not null" json:"score"`
}

func (Rating) TableName() string {
	return "rating"
}

// Review is a dated free-text review of a recipe
type Review struct {
	ReviewID int64     `gorm:"column:review_id;primaryKey;autoIncrement" json:"reviewID"`
	RecipeID int64     `gorm:"column:recipe_id;not null;index" json:"recipeID"`
	UserID   int64     `gorm:"column:user_id;not null" json:"userID"`
	Date     time.Time `gorm:"column:review_date;not null" json:"date"`
	Message  string    `gorm:"type:text;not null" json:"message"`
}

func (Review) TableName() string {
	return "review"
}

// NutritionInfo holds the per-serving nutrition of a recipe. One row per recipe.
type NutritionInfo struct {
	RecipeID int64   `gorm:"column:recipe_id;primaryKey;autoIncrement:false" json:"recipeID"`
	Calories float64 `gorm:"column:calories" json:"calories"`
	Protein  float64 `gorm:"column:protein_content" json:"protein"`
	Sugar    float64 `gorm:"column:sugar" json:"sugar"`
	Fat      float64 `gorm:"column:fat_content" json:"fat"`
	Carbs    float64 `gorm:"column:carb_content" json:"carbs"`
}

func (NutritionInfo) TableName() string {
	return "nutrition_info_recipe"
}

// Dietary membership tables: a recipe belongs to the category when its id is present.

type SugarFreeRecipe struct {
	RecipeID int64 `gorm:"column:recipe_id;primaryKey;autoIncrement:false"`
}

func (SugarFreeRecipe) TableName() string {
	return "sugar_free_recipe"
}

type LowCalorieRecipe struct {
	RecipeID int64 `gorm:"column:recipe_id;primaryKey;autoIncrement:false"`
}

func (LowCalorieRecipe) TableName() string {
	return "low_calorie_recipe"
}

type VegetarianRecipe struct {
	RecipeID int64 `gorm:"column:recipe_id;primaryKey;autoIncrement:false"`
}

func (VegetarianRecipe) TableName() string {
	return "vegetarian_recipe"
}

// RecipeWithRating is a recipe joined with its average score. AvgRating is nil
// for recipes nobody has rated.
type RecipeWithRating struct {
	RecipeID     int64    `gorm:"column:recipe_id" json:"recipeID"`
	Name         string   `gorm:"column:name" json:"name"`
	Instructions string   `gorm:"column:instructions" json:"instructions"`
	AvgRating    *float64 `gorm:"column:avg_rating" json:"avgRating"`
}

// RatingBucket is one bar of a recipe's rating histogram
type RatingBucket struct {
	RecipeID int64  `gorm:"column:recipe_id" json:"recipeID"`
	Name     string `gorm:"column:name" json:"name"`
	Rating   int    `gorm:"column:rating" json:"rating"`
	Count    int64  `gorm:"column:count" json:"count"`
}

// Tables lists every persistent model, parents first
func Tables() []interface{} {
	return []interface{}{
		&Recipe{},
		&Rating{},
		&Review{},
		&NutritionInfo{},
		&SugarFreeRecipe{},
		&LowCalorieRecipe{},
		&VegetarianRecipe{},
	}
}
