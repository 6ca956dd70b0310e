package model

// MealPlan is a named, ordered selection of recipes with its shopping list.
// Plans come from a catalog, not from the database.
type MealPlan struct {
	ID           int64    `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	RecipeIDs    []int64  `yaml:"recipeIDs" json:"recipeIDs"`
	Recipes      []string `yaml:"recipes" json:"recipes"`
	ShoppingList []string `yaml:"shoppingList" json:"shoppingList"`
}

// MealPlanRecipe pairs a meal plan with one of its recipes
type MealPlanRecipe struct {
	MealPlanID int64 `json:"mealPlanID"`
	RecipeID   int64 `json:"recipeID"`
}
