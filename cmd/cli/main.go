package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tavolahq/brigade/cmd/cli/commands"
	"github.com/tavolahq/brigade/internal/config"
	"github.com/tavolahq/brigade/pkg/postgres"
	"github.com/tavolahq/brigade/pkg/utils/logging"
)

var (
	verbose  bool
	app      *commands.AppContext
	database *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "brigade",
		Short: "Brigade - restaurant shift validation and generation",
		Long:  `A CLI tool for validating restaurant shift schedules against labour constraints and filling coverage gaps.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
			if database != nil {
				database.Close()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(
		commands.ValidateCmd(appRef()),
		commands.GenerateCmd(appRef()),
		commands.AuditCmd(appRef()),
		commands.CoverageCmd(appRef()),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared context struct; its fields are filled in by
// initApp before any RunE fires
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, and database
func initApp() error {
	app = appRef()
	app.Ctx = context.Background()

	var err error
	app.Logger, err = logging.InitLogger("brigade", verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger.Debug("Connecting to database")
	database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Database = database
	app.Logger.Info("Database initialized successfully", zap.Bool("verbose", verbose))

	return nil
}
