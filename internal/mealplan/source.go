// Package mealplan loads the meal plan catalog. Plans are curated content and
// live outside the recipe database: in the binary, a YAML file or an S3 object.
package mealplan

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/model"
	"gopkg.in/yaml.v3"
)

// Source loads the full meal plan catalog
type Source interface {
	Load(ctx context.Context) ([]model.MealPlan, error)
}

// catalog is the YAML document layout shared by file and S3 sources
type catalog struct {
	MealPlans []model.MealPlan `yaml:"mealPlans"`
}

// Decode parses and checks a YAML catalog
func Decode(r io.Reader) ([]model.MealPlan, error) {
	var c catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return []model.MealPlan{}, nil
		}
		return nil, fmt.Errorf("failed to decode meal plan catalog: %w", err)
	}
	if err := check(c.MealPlans); err != nil {
		return nil, err
	}
	if c.MealPlans == nil {
		c.MealPlans = []model.MealPlan{}
	}
	return c.MealPlans, nil
}

func check(plans []model.MealPlan) error {
	seen := make(map[int64]bool, len(plans))
	for i, p := range plans {
		if p.ID <= 0 {
			return fmt.Errorf("meal plan %d: id must be positive", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("meal plan %d: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = true
		if len(p.Recipes) > 0 && len(p.Recipes) != len(p.RecipeIDs) {
			return fmt.Errorf("meal plan %d: %d recipe names for %d recipe ids", p.ID, len(p.Recipes), len(p.RecipeIDs))
		}
	}
	return nil
}

// StaticSource serves a fixed catalog
type StaticSource struct {
	Plans []model.MealPlan
}

func (s StaticSource) Load(context.Context) ([]model.MealPlan, error) {
	out := make([]model.MealPlan, len(s.Plans))
	copy(out, s.Plans)
	return out, nil
}

// BuiltIn is the catalog shipped with the application
func BuiltIn() StaticSource {
	return StaticSource{Plans: []model.MealPlan{
		{
			ID:           1,
			Name:         "Meal Plan 1",
			RecipeIDs:    []int64{1, 2},
			Recipes:      []string{"Spaghetti", "Pizza"},
			ShoppingList: []string{"cheese", "sauce", "pasta", "dough"},
		},
		{
			ID:           2,
			Name:         "Meal Plan 2",
			RecipeIDs:    []int64{3, 4},
			Recipes:      []string{"Fries", "Ramen"},
			ShoppingList: []string{"potatoes", "noodles", "broth"},
		},
		{
			ID:           3,
			Name:         "Meal Plan 3",
			RecipeIDs:    []int64{5, 6},
			Recipes:      []string{"Fried Rice", "Poutine"},
			ShoppingList: []string{"rice", "potatoes", "gravy", "cheese"},
		},
	}}
}

// FileSource reads a YAML catalog from disk on every Load
type FileSource struct {
	Path string
}

func (s FileSource) Load(context.Context) ([]model.MealPlan, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open meal plan catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// ObjectGetter is the part of the S3 client used by S3Source
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a YAML catalog from an S3 object
type S3Source struct {
	client   ObjectGetter
	location config.S3Location
}

// NewS3Source creates a source reading the object at loc
func NewS3Source(client ObjectGetter, loc config.S3Location) *S3Source {
	return &S3Source{client: client, location: loc}
}

func (s *S3Source) Load(ctx context.Context) ([]model.MealPlan, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.location.Bucket),
		Key:    aws.String(s.location.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch s3://%s/%s: %w", s.location.Bucket, s.location.Key, err)
	}
	defer out.Body.Close()
	return Decode(out.Body)
}

// NewSource picks the catalog source named by cfg.MealPlan.Source
func NewSource(ctx context.Context, cfg *config.Config) (Source, error) {
	src := strings.TrimSpace(cfg.MealPlan.Source)
	switch {
	case src == "" || src == "builtin":
		return BuiltIn(), nil
	case strings.HasPrefix(src, "s3://"):
		loc, err := config.ParseS3URL(src)
		if err != nil {
			return nil, err
		}
		client, err := config.NewS3Client(ctx, cfg.AWS)
		if err != nil {
			return nil, err
		}
		return NewS3Source(client, loc), nil
	default:
		return FileSource{Path: src}, nil
	}
}
