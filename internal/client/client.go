// Package client is a typed HTTP client for the recipe and meal plan API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/mealplanner/backend/internal/model"
	"go.uber.org/zap"
)

// APIError is returned for every non-2xx response
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to a running API server
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger.Named("api-client") }
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:3000
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListRecipes fetches every recipe
func (c *Client) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	var out []model.Recipe
	if err := c.get(ctx, "/api/recipes/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRecipe fetches a single recipe
func (c *Client) GetRecipe(ctx context.Context, id int64) (*model.Recipe, error) {
	var out model.Recipe
	if err := c.get(ctx, "/api/recipes/id/"+itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecipesByName fetches recipes whose name contains name
func (c *Client) GetRecipesByName(ctx context.Context, name string) ([]model.Recipe, error) {
	var out []model.Recipe
	if err := c.get(ctx, "/api/recipes/name/"+url.PathEscape(name), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAvgRatings fetches every rated recipe with its average score
func (c *Client) GetAvgRatings(ctx context.Context) ([]model.RecipeWithRating, error) {
	var out []model.RecipeWithRating
	if err := c.get(ctx, "/api/recipes/avgrating", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRatings fetches the rating histogram of a recipe
func (c *Client) GetRatings(ctx context.Context, id int64) ([]model.RatingBucket, error) {
	var out []model.RatingBucket
	if err := c.get(ctx, "/api/recipes/ratingsid/"+itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetReviews fetches the reviews of a recipe, newest first
func (c *Client) GetReviews(ctx context.Context, id int64) ([]model.Review, error) {
	var out []model.Review
	if err := c.get(ctx, "/api/recipes/reviewsid/"+itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetNutrition fetches the nutrition info of a recipe
func (c *Client) GetNutrition(ctx context.Context, id int64) (*model.NutritionInfo, error) {
	var out model.NutritionInfo
	if err := c.get(ctx, "/api/recipes/nutritionid/"+itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchRecipes runs a filtered search
func (c *Client) SearchRecipes(ctx context.Context, params model.SearchParams) ([]model.RecipeWithRating, error) {
	q := url.Values{}
	if params.Name != "" {
		q.Set("name", params.Name)
	}
	if params.MinRating != nil {
		q.Set("minRating", strconv.FormatFloat(*params.MinRating, 'f', -1, 64))
	}
	for key, on := range map[string]bool{
		"sugarFree":  params.SugarFree,
		"lowCalorie": params.LowCalorie,
		"vegetarian": params.Vegetarian,
	} {
		if on {
			q.Set(key, "true")
		}
	}

	var out []model.RecipeWithRating
	if err := c.get(ctx, "/api/recipes/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMealPlans fetches the meal plan catalog
func (c *Client) ListMealPlans(ctx context.Context) ([]model.MealPlan, error) {
	var out []model.MealPlan
	if err := c.get(ctx, "/api/mealplan/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMealPlanRecipes fetches the recipe ids of a meal plan, in plan order
func (c *Client) GetMealPlanRecipes(ctx context.Context, id int64) ([]model.MealPlanRecipe, error) {
	var out []model.MealPlanRecipe
	if err := c.get(ctx, "/api/mealplan/mealplanid/"+itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health returns nil when the API reports itself healthy
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.get(ctx, "/api/health", nil, &out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("API request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
		apiErr.Fields = payload.Fields
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
