package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pageza/mealplanner/backend/internal/ui"
	"github.com/spf13/cobra"
)

var mealPlansCmd = &cobra.Command{
	Use:   "mealplans",
	Short: "List and show meal plans",
}

var mealPlansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meal plans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cancel, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		page := ui.NewMealPlansPage(s.api, s.logger)
		if err := page.Load(s.ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range page.Plans() {
			color.New(color.FgCyan).Fprintf(out, "%4d  ", p.ID)
			fmt.Fprintf(out, "%-20s %s\n", p.Name, strings.Join(p.Recipes, ", "))
		}
		return nil
	},
}

var mealPlansShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show the recipes and shopping list of a meal plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid meal plan id %q", args[0])
		}

		s, cancel, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		page := ui.NewMealPlansPage(s.api, s.logger)
		if err := page.Load(s.ctx); err != nil {
			return err
		}
		if err := page.OpenShoppingList(id); err != nil {
			return err
		}
		page.OpenRecipes(s.ctx, id)
		if err := page.Recipes.Wait(s.ctx); err != nil {
			return err
		}

		cards := page.Recipes.State()
		if cards.Err != nil {
			return cards.Err
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		bold.Fprintln(out, "Recipes:")
		for _, c := range cards.Data {
			fmt.Fprintf(out, "  %4d  %-40s %s\n", c.Recipe.RecipeID, c.Recipe.Name, c.Rating)
		}
		bold.Fprintln(out, "Shopping list:")
		for _, item := range page.ShoppingList.State().Data {
			fmt.Fprintf(out, "  - %s\n", item)
		}
		return nil
	},
}

func init() {
	mealPlansCmd.AddCommand(mealPlansListCmd, mealPlansShowCmd)
}
