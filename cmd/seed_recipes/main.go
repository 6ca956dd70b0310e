package main

import (
	"context"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/logger"
	"github.com/pageza/mealplanner/backend/internal/seed"
	"github.com/spf13/cobra"
)

var (
	count    int
	seedFlag int64
)

var rootCmd = &cobra.Command{
	Use:          "seed_recipes",
	Short:        "Fill the database with generated recipes, ratings, reviews and nutrition",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := cmd.Context()
		db, err := database.New(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.RunMigrations(db, cfg.Database, log); err != nil {
			return err
		}

		summary, err := seed.Run(ctx, db.ORM, seed.NewGenerator(seedFlag), count, log)
		if err != nil {
			return err
		}
		color.Green("Seeded %d recipes, %d ratings, %d reviews", summary.Recipes, summary.Ratings, summary.Reviews)
		return nil
	},
}

func init() {
	rootCmd.Flags().IntVarP(&count, "count", "n", 50, "number of generated recipes")
	rootCmd.Flags().Int64Var(&seedFlag, "seed", time.Now().UnixNano(), "random seed")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
