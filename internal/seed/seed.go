// Package seed generates a plausible recipe dataset for local development and
// demos and writes it through gorm.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pageza/mealplanner/backend/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	batchSize = 100

	// lowCalorieLimit is the calorie count under which a recipe joins the
	// low calorie list
	lowCalorieLimit = 400
)

// Canonical recipes are inserted with fixed ids into an empty database so
// they match the built-in meal plan catalog.
var Canonical = []model.Recipe{
	{RecipeID: 1, Name: "Spaghetti", Instructions: "Boil the pasta, simmer the sauce, combine and top with cheese."},
	{RecipeID: 2, Name: "Pizza", Instructions: "Stretch the dough, spread the sauce, add cheese and bake."},
	{RecipeID: 3, Name: "Fries", Instructions: "Cut the potatoes, fry twice and salt generously."},
	{RecipeID: 4, Name: "Ramen", Instructions: "Simmer the broth, cook the noodles and assemble with toppings."},
	{RecipeID: 5, Name: "Fried Rice", Instructions: "Fry cold rice with egg, vegetables and soy sauce."},
	{RecipeID: 6, Name: "Poutine", Instructions: "Top fries with cheese curds and hot gravy."},
}

// Related holds the rows hanging off a set of inserted recipes
type Related struct {
	Ratings    []model.Rating
	Reviews    []model.Review
	Nutrition  []model.NutritionInfo
	SugarFree  []model.SugarFreeRecipe
	LowCalorie []model.LowCalorieRecipe
	Vegetarian []model.VegetarianRecipe
}

// Generator produces fake recipes and their ratings, reviews and nutrition.
// The same seed and Now always yield the same data.
type Generator struct {
	faker *gofakeit.Faker
	// Users is the number of distinct user ids ratings and reviews are spread over
	Users int
	// Now anchors review dates, which fall within the two years before it
	Now time.Time
}

// NewGenerator creates a generator with a seeded faker
func NewGenerator(seed int64) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
		Users: 50,
		Now:   time.Now().UTC(),
	}
}

// Recipes returns n fake recipes
func (g *Generator) Recipes(n int) []model.Recipe {
	recipes := make([]model.Recipe, 0, n)
	for i := 0; i < n; i++ {
		recipes = append(recipes, model.Recipe{
			Name:         g.recipeName(),
			Instructions: g.faker.Paragraph(1, 4, 10, " "),
		})
	}
	return recipes
}

func (g *Generator) recipeName() string {
	var dish string
	switch g.faker.Number(0, 3) {
	case 0:
		dish = g.faker.Breakfast()
	case 1:
		dish = g.faker.Lunch()
	case 2:
		dish = g.faker.Dinner()
	default:
		dish = g.faker.Dessert()
	}
	if len(dish) > 200 {
		dish = dish[:200]
	}
	return dish
}

// Related generates the dependent rows for recipes, which must already carry
// their database ids
func (g *Generator) Related(recipes []model.Recipe) Related {
	var rel Related
	for _, r := range recipes {
		for i, n := 0, g.faker.Number(0, 8); i < n; i++ {
			rel.Ratings = append(rel.Ratings, model.Rating{
				RecipeID: r.RecipeID,
				UserID:   g.userID(),
				Score:    g.faker.Number(1, 5),
			})
		}

		for i, n := 0, g.faker.Number(0, 3); i < n; i++ {
			rel.Reviews = append(rel.Reviews, model.Review{
				RecipeID: r.RecipeID,
				UserID:   g.userID(),
				Date:     g.faker.DateRange(g.Now.AddDate(-2, 0, 0), g.Now).UTC(),
				Message:  g.faker.Sentence(g.faker.Number(4, 16)),
			})
		}

		// A few recipes are left without nutrition data
		if g.faker.Number(1, 10) > 1 {
			info := model.NutritionInfo{
				RecipeID: r.RecipeID,
				Calories: round1(g.faker.Float64Range(120, 950)),
				Protein:  round1(g.faker.Float64Range(2, 60)),
				Fat:      round1(g.faker.Float64Range(1, 45)),
				Carbs:    round1(g.faker.Float64Range(5, 120)),
			}
			if g.faker.Bool() {
				info.Sugar = round1(g.faker.Float64Range(1, 40))
			}
			rel.Nutrition = append(rel.Nutrition, info)

			if info.Sugar == 0 {
				rel.SugarFree = append(rel.SugarFree, model.SugarFreeRecipe{RecipeID: r.RecipeID})
			}
			if info.Calories < lowCalorieLimit {
				rel.LowCalorie = append(rel.LowCalorie, model.LowCalorieRecipe{RecipeID: r.RecipeID})
			}
		}

		if g.faker.Number(1, 3) == 1 {
			rel.Vegetarian = append(rel.Vegetarian, model.VegetarianRecipe{RecipeID: r.RecipeID})
		}
	}
	return rel
}

func (g *Generator) userID() int64 {
	return int64(g.faker.Number(1, g.Users))
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}

// syncRecipeSequence moves the postgres id sequence past explicitly inserted
// ids. SQLite tracks the maximum rowid itself.
func syncRecipeSequence(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	err := tx.Exec("SELECT setval(pg_get_serial_sequence('recipe', 'recipe_id'), (SELECT MAX(recipe_id) FROM recipe))").Error
	if err != nil {
		return fmt.Errorf("failed to sync recipe id sequence: %w", err)
	}
	return nil
}

// Summary counts the rows written by Run
type Summary struct {
	Recipes   int
	Ratings   int
	Reviews   int
	Nutrition int
}

// Run inserts n fake recipes with their related rows in one transaction.
// The canonical recipes come first when the recipe table is empty.
func Run(ctx context.Context, db *gorm.DB, g *Generator, n int, logger *zap.Logger) (Summary, error) {
	var summary Summary

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.Recipe{}).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to count recipes: %w", err)
		}

		var recipes []model.Recipe
		if existing == 0 {
			canonical := append([]model.Recipe(nil), Canonical...)
			if err := tx.Create(&canonical).Error; err != nil {
				return fmt.Errorf("failed to insert canonical recipes: %w", err)
			}
			if err := syncRecipeSequence(tx); err != nil {
				return err
			}
			recipes = append(recipes, canonical...)
		}

		fake := g.Recipes(n)
		if len(fake) > 0 {
			if err := tx.CreateInBatches(&fake, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert recipes: %w", err)
			}
			recipes = append(recipes, fake...)
		}
		if len(recipes) == 0 {
			return nil
		}

		rel := g.Related(recipes)
		batches := []struct {
			name string
			rows interface{}
			len  int
		}{
			{"ratings", &rel.Ratings, len(rel.Ratings)},
			{"reviews", &rel.Reviews, len(rel.Reviews)},
			{"nutrition", &rel.Nutrition, len(rel.Nutrition)},
			{"sugar free", &rel.SugarFree, len(rel.SugarFree)},
			{"low calorie", &rel.LowCalorie, len(rel.LowCalorie)},
			{"vegetarian", &rel.Vegetarian, len(rel.Vegetarian)},
		}
		for _, b := range batches {
			if b.len == 0 {
				continue
			}
			if err := tx.CreateInBatches(b.rows, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert %s: %w", b.name, err)
			}
		}

		summary = Summary{
			Recipes:   len(recipes),
			Ratings:   len(rel.Ratings),
			Reviews:   len(rel.Reviews),
			Nutrition: len(rel.Nutrition),
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	logger.Info("Seeded recipes",
		zap.Int("recipes", summary.Recipes),
		zap.Int("ratings", summary.Ratings),
		zap.Int("reviews", summary.Reviews),
		zap.Int("nutrition", summary.Nutrition),
	)
	return summary, nil
}
