package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/mealplanner/backend/internal/service"
	"go.uber.org/zap"
)

// MealPlanHandler serves the meal plan catalog
type MealPlanHandler struct {
	mealPlanService service.IMealPlanService
	logger          *zap.Logger
}

func NewMealPlanHandler(mealPlanService service.IMealPlanService, logger *zap.Logger) *MealPlanHandler {
	return &MealPlanHandler{
		mealPlanService: mealPlanService,
		logger:          logger,
	}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	mealplans := router.Group("/mealplan")
	{
		mealplans.GET("/", h.ListMealPlans)
		mealplans.GET("/mealplanid/:id", h.GetMealPlanRecipes)
	}
}

func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	plans, err := h.mealPlanService.ListMealPlans(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetMealPlanRecipes returns the {mealPlanID, recipeID} pairs of a plan
func (h *MealPlanHandler) GetMealPlanRecipes(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	pairs, err := h.mealPlanService.GetMealPlanRecipes(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pairs)
}
