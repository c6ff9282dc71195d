package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/court-docket/cmd/cli/commands"
	"github.com/jakechorley/court-docket/internal/config"
	"github.com/jakechorley/court-docket/pkg/db"
	"github.com/jakechorley/court-docket/pkg/postgres"
	"github.com/jakechorley/court-docket/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
	pg  *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Court Docket CLI - Manage the eviction enforcement docket",
		Long:  `A CLI tool for managing the eviction enforcement docket: calendar pages, commission rotation, and case bookings.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
			if pg != nil {
				pg.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(
		commands.FillCalendarCmd(app),
		commands.BookCmd(app),
		commands.CheckDatesCmd(app),
		commands.CancelCmd(app),
		commands.AmendCmd(app),
		commands.ShowBookingsCmd(app),
		commands.PageCmd(app),
		commands.PagesCmd(app),
		commands.TurnCmd(app),
		commands.PurgeCmd(app),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp fills the shared AppContext with logger, config, and the database
// backend. The context struct is created up front so the command
// constructors can capture it before it is populated.
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	switch app.Cfg.Backend {
	case "postgres":
		app.Logger.Info("Connecting to database")
		pg, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		app.Logger.Info("Running migrations")
		if err := pg.RunMigrations(app.Ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Database = pg
	case "memory":
		app.Logger.Warn("Using in-memory backend, nothing will be persisted")
		app.Database = db.NewMemDB()
	default:
		return fmt.Errorf("unknown backend %q", app.Cfg.Backend)
	}

	app.Logger.Info("Database initialized successfully")
	return nil
}
