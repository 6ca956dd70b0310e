package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/ui"
	"github.com/spf13/cobra"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List, show and search recipes",
}

var recipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rated recipes with their average rating",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cancel, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		page := ui.NewRecipesPage(s.api, s.logger)
		if err := page.Load(s.ctx); err != nil {
			return err
		}
		printRecipes(cmd.OutOrStdout(), page.Recipes())
		return nil
	},
}

var recipesShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a recipe with its ratings, reviews and nutrition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid recipe id %q", args[0])
		}

		s, cancel, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		page := ui.NewRecipesPage(s.api, s.logger)
		page.OpenRecipe(s.ctx, id)
		page.OpenRatings(s.ctx, id)
		page.OpenReviews(s.ctx, id)
		page.OpenNutrition(s.ctx, id)
		for _, wait := range []func() error{
			func() error { return page.Recipe.Wait(s.ctx) },
			func() error { return page.Ratings.Wait(s.ctx) },
			func() error { return page.Reviews.Wait(s.ctx) },
			func() error { return page.Nutrition.Wait(s.ctx) },
		} {
			if err := wait(); err != nil {
				return err
			}
		}

		recipe := page.Recipe.State()
		if recipe.Err != nil {
			return recipe.Err
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		bold.Fprintf(out, "#%d %s\n", recipe.Data.RecipeID, recipe.Data.Name)
		fmt.Fprintf(out, "%s\n\n", recipe.Data.Instructions)

		if ratings := page.Ratings.State(); ratings.Err == nil {
			bold.Fprintf(out, "Rating: %s\n", ui.FormatRating(ui.AverageRating(ratings.Data)))
			for _, b := range ratings.Data {
				fmt.Fprintf(out, "  %d stars: %d\n", b.Rating, b.Count)
			}
		} else {
			color.New(color.FgYellow).Fprintf(out, "Ratings unavailable: %v\n", ratings.Err)
		}

		if nutrition := page.Nutrition.State(); nutrition.Err == nil {
			n := nutrition.Data
			bold.Fprintln(out, "Nutrition:")
			fmt.Fprintf(out, "  calories %.0f  protein %.1fg  sugar %.1fg  fat %.1fg  carbs %.1fg\n",
				n.Calories, n.Protein, n.Sugar, n.Fat, n.Carbs)
		} else {
			color.New(color.FgYellow).Fprintf(out, "Nutrition unavailable: %v\n", nutrition.Err)
		}

		if reviews := page.Reviews.State(); reviews.Err == nil {
			bold.Fprintf(out, "Reviews (%d):\n", len(reviews.Data))
			for _, r := range reviews.Data {
				fmt.Fprintf(out, "  %s  user %d: %s\n", r.Date.Format("2006-01-02"), r.UserID, r.Message)
			}
		} else {
			color.New(color.FgYellow).Fprintf(out, "Reviews unavailable: %v\n", reviews.Err)
		}
		return nil
	},
}

var searchFlags struct {
	name       string
	minRating  float64
	sugarFree  bool
	lowCalorie bool
	vegetarian bool
}

var recipesSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search recipes by name, dietary category and minimum rating",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cancel, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		params := model.SearchParams{
			Name:       searchFlags.name,
			SugarFree:  searchFlags.sugarFree,
			LowCalorie: searchFlags.lowCalorie,
			Vegetarian: searchFlags.vegetarian,
		}
		if cmd.Flags().Changed("min-rating") {
			params.MinRating = &searchFlags.minRating
		}

		page := ui.NewRecipesPage(s.api, s.logger)
		if err := page.Search(s.ctx, params); err != nil {
			return err
		}
		printRecipes(cmd.OutOrStdout(), page.Recipes())
		return nil
	},
}

func init() {
	f := recipesSearchCmd.Flags()
	f.StringVar(&searchFlags.name, "name", "", "substring of the recipe name")
	f.Float64Var(&searchFlags.minRating, "min-rating", 0, "minimum average rating (0-5)")
	f.BoolVar(&searchFlags.sugarFree, "sugar-free", false, "only sugar free recipes")
	f.BoolVar(&searchFlags.lowCalorie, "low-calorie", false, "only low calorie recipes")
	f.BoolVar(&searchFlags.vegetarian, "vegetarian", false, "only vegetarian recipes")

	recipesCmd.AddCommand(recipesListCmd, recipesShowCmd, recipesSearchCmd)
}

func printRecipes(out io.Writer, recipes []model.RecipeWithRating) {
	if len(recipes) == 0 {
		color.New(color.FgYellow).Fprintln(out, "No recipes found")
		return
	}
	for _, r := range recipes {
		rating := "n/a"
		if r.AvgRating != nil {
			rating = ui.FormatRating(*r.AvgRating, true)
		}
		color.New(color.FgCyan).Fprintf(out, "%4d  ", r.RecipeID)
		fmt.Fprintf(out, "%-40s %s\n", r.Name, rating)
	}
}
