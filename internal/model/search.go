package model

// SearchParams are the optional filters of a recipe search. The zero value
// matches every recipe.
type SearchParams struct {
	Name       string   `form:"name" binding:"max=255"`
	MinRating  *float64 `form:"minRating" binding:"omitempty,min=0,max=5"`
	SugarFree  bool     `form:"sugarFree"`
	LowCalorie bool     `form:"lowCalorie"`
	Vegetarian bool     `form:"vegetarian"`
}
