package main

import (
	"context"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pageza/mealplanner/backend/internal/client"
	"github.com/pageza/mealplanner/backend/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	apiURL  string
	timeout time.Duration
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "recipectl",
	Short: "Browse recipes and meal plans served by the API",
	Long: `recipectl reads recipes, ratings, reviews, nutrition and meal plans
from a running API server.

Examples:

  recipectl recipes list
  recipectl recipes show 1
  recipectl recipes search --vegetarian --min-rating 4
  recipectl mealplans show 2
`,
	SilenceUsage: true,
}

func init() {
	defaultURL := os.Getenv("RECIPECTL_API")
	if defaultURL == "" {
		defaultURL = "http://localhost:3000"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "API base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "overall request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log API requests")

	rootCmd.AddCommand(recipesCmd, mealPlansCmd)
}

// session bundles what every subcommand needs
type session struct {
	ctx    context.Context
	api    *client.Client
	logger *zap.Logger
}

func newSession(cmd *cobra.Command) (*session, context.CancelFunc, error) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Format: "console", Development: true})
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	return &session{
		ctx:    ctx,
		api:    client.New(apiURL, client.WithLogger(log)),
		logger: log,
	}, cancel, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
