package testdb

import (
	"time"

	"github.com/pageza/mealplanner/backend/internal/model"
	"gorm.io/gorm"
)

// Recipe ids of the sample dataset
const (
	Spaghetti int64 = iota + 1
	Pizza
	GardenSalad
	Ramen
	FriedRice
	Poutine // no ratings, reviews or nutrition
)

// MissingID is never used by the sample dataset
const MissingID int64 = 999

// Sample is the deterministic dataset loaded by Seed
var Sample = struct {
	Recipes    []model.Recipe
	Ratings    []model.Rating
	Reviews    []model.Review
	Nutrition  []model.NutritionInfo
	SugarFree  []int64
	LowCalorie []int64
	Vegetarian []int64
}{
	Recipes: []model.Recipe{
		{RecipeID: Spaghetti, Name: "Spaghetti Bolognese", Instructions: "Brown the beef, simmer with tomatoes, serve over pasta."},
		{RecipeID: Pizza, Name: "Margherita Pizza", Instructions: "Stretch the dough, add sauce and mozzarella, bake hot."},
		{RecipeID: GardenSalad, Name: "Garden Salad", Instructions: "Chop the vegetables and toss with vinaigrette."},
		{RecipeID: Ramen, Name: "Chicken Ramen", Instructions: "Simmer the broth, cook noodles, top with chicken."},
		{RecipeID: FriedRice, Name: "Fried Rice", Instructions: "Fry day-old rice with egg, peas and soy sauce."},
		{RecipeID: Poutine, Name: "Poutine", Instructions: "Top fries with cheese curds and hot gravy."},
	},
	// Spaghetti: 4,4,2 (avg 3.33); Pizza: 5,5,4; Salad: 3; Ramen: 1,2; Fried rice: 5
	Ratings: []model.Rating{
		{RecipeID: Spaghetti, UserID: 1, Score: 4},
		{RecipeID: Spaghetti, UserID: 2, Score: 4},
		{RecipeID: Spaghetti, UserID: 3, Score: 2},
		{RecipeID: Pizza, UserID: 1, Score: 5},
		{RecipeID: Pizza, UserID: 2, Score: 5},
		{RecipeID: Pizza, UserID: 3, Score: 4},
		{RecipeID: GardenSalad, UserID: 1, Score: 3},
		{RecipeID: Ramen, UserID: 2, Score: 1},
		{RecipeID: Ramen, UserID: 3, Score: 2},
		{RecipeID: FriedRice, UserID: 1, Score: 5},
	},
	Reviews: []model.Review{
		{RecipeID: Spaghetti, UserID: 1, Date: time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC), Message: "Family favourite."},
		{RecipeID: Spaghetti, UserID: 3, Date: time.Date(2024, 3, 5, 12, 30, 0, 0, time.UTC), Message: "Too salty for me."},
		{RecipeID: Pizza, UserID: 2, Date: time.Date(2024, 2, 14, 20, 0, 0, 0, time.UTC), Message: "Crispy base, great sauce."},
	},
	Nutrition: []model.NutritionInfo{
		{RecipeID: Spaghetti, Calories: 650, Protein: 32, Sugar: 9, Fat: 22, Carbs: 78},
		{RecipeID: Pizza, Calories: 800, Protein: 30, Sugar: 6, Fat: 28, Carbs: 95},
		{RecipeID: GardenSalad, Calories: 180, Protein: 4, Sugar: 0, Fat: 12, Carbs: 14},
		{RecipeID: Ramen, Calories: 520, Protein: 35, Sugar: 0, Fat: 15, Carbs: 60},
		{RecipeID: FriedRice, Calories: 450, Protein: 12, Sugar: 3, Fat: 14, Carbs: 68},
	},
	SugarFree:  []int64{GardenSalad, Ramen, Poutine},
	LowCalorie: []int64{GardenSalad, Poutine},
	Vegetarian: []int64{Pizza, GardenSalad, Poutine},
}

// Seed inserts the Sample dataset
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		rows := []interface{}{
			cloneOf(Sample.Recipes),
			cloneOf(Sample.Ratings),
			cloneOf(Sample.Reviews),
			cloneOf(Sample.Nutrition),
		}
		for _, r := range rows {
			if err := tx.Create(r).Error; err != nil {
				return err
			}
		}

		for _, id := range Sample.SugarFree {
			if err := tx.Create(&model.SugarFreeRecipe{RecipeID: id}).Error; err != nil {
				return err
			}
		}
		for _, id := range Sample.LowCalorie {
			if err := tx.Create(&model.LowCalorieRecipe{RecipeID: id}).Error; err != nil {
				return err
			}
		}
		for _, id := range Sample.Vegetarian {
			if err := tx.Create(&model.VegetarianRecipe{RecipeID: id}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// cloneOf copies a slice so Create's primary key back-fill never mutates Sample
func cloneOf[T any](in []T) *[]T {
	out := make([]T, len(in))
	copy(out, in)
	return &out
}
