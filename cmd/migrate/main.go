package main

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the recipe database schema",
	Long: `migrate applies the SQL migrations embedded in the API binary.

Examples:

  migrate up
  migrate down
  migrate version
  migrate force 1
`,
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *database.Migrator) error {
			if err := m.Up(); err != nil {
				return err
			}
			return printVersion(m)
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *database.Migrator) error {
			if err := m.Down(); err != nil {
				return err
			}
			return printVersion(m)
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(printVersion)
	},
}

var forceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Mark VERSION as applied without running it, clearing a dirty state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *database.Migrator) error {
			if err := m.Force(version); err != nil {
				return err
			}
			return printVersion(m)
		})
	},
}

func init() {
	rootCmd.AddCommand(upCmd, downCmd, versionCmd, forceCmd)
}

func withMigrator(fn func(*database.Migrator) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: "console"})
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	m, err := database.NewMigrator(db, cfg.Database.Name, log)
	if err != nil {
		db.Close()
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	return fn(m)
}

func printVersion(m *database.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if dirty {
		color.Yellow("Schema version %d (dirty)", version)
		return nil
	}
	color.Green("Schema version %d", version)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
