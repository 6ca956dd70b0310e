package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/mealplanner/backend/internal/apperr"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/service"
	"go.uber.org/zap"
)

// RecipeHandler serves the read-only recipe endpoints
type RecipeHandler struct {
	recipeService service.IRecipeService
	logger        *zap.Logger
}

func NewRecipeHandler(recipeService service.IRecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		logger:        logger,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/", h.ListRecipes)
		recipes.GET("/id/:id", h.GetRecipe)
		recipes.GET("/name/:name", h.GetRecipesByName)
		recipes.GET("/avgrating", h.GetAvgRating)
		recipes.GET("/ratingsid/:id", h.GetRatings)
		recipes.GET("/reviewsid/:id", h.GetReviews)
		recipes.GET("/nutritionid/:id", h.GetNutrition)
		recipes.GET("/search", h.SearchRecipes)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.GetAllRecipes(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipeByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// GetRecipesByName answers 200 with a possibly empty list
func (h *RecipeHandler) GetRecipesByName(c *gin.Context) {
	recipes, err := h.recipeService.GetRecipeByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetAvgRating(c *gin.Context) {
	rows, err := h.recipeService.GetAvgRating(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *RecipeHandler) GetRatings(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	buckets, err := h.recipeService.GetRecipeRatings(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

func (h *RecipeHandler) GetReviews(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	reviews, err := h.recipeService.GetRecipeReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *RecipeHandler) GetNutrition(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	info, err := h.recipeService.GetRecipeNutrition(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var params model.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, h.logger, apperr.FromValidator(err))
		return
	}

	rows, err := h.recipeService.SearchRecipes(c.Request.Context(), params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
