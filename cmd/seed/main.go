package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"taskmanager/internal/auth"
	"taskmanager/internal/config"
	"taskmanager/internal/db"
	"taskmanager/internal/repository"
	"taskmanager/internal/seed"
)

var (
	fixtureFile string
	resetTables bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users and tasks into the database",
	Long: `Seed migrates the schema and loads users and tasks from a YAML fixture.

Without --file the built-in demo fixture is used. Users whose email already
exists are skipped, so the command can be run repeatedly.`,
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().StringVarP(&fixtureFile, "file", "f", "", "path to a YAML fixture (default: built-in demo data)")
	rootCmd.Flags().BoolVar(&resetTables, "reset", false, "drop and recreate the tables before seeding")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	data := seed.DefaultFixture
	if fixtureFile != "" {
		if data, err = os.ReadFile(fixtureFile); err != nil {
			return fmt.Errorf("read fixture: %w", err)
		}
	}
	fx, err := seed.Parse(data)
	if err != nil {
		return err
	}

	gormDB, err := db.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close(gormDB)

	if resetTables || cfg.ResetDB {
		logger.Warn("dropping tables before seeding")
	}
	if err := db.Migrate(gormDB, resetTables || cfg.ResetDB); err != nil {
		return err
	}

	seeder := seed.NewSeeder(
		repository.NewUserRepository(gormDB),
		repository.NewTaskRepository(gormDB),
		auth.NewPasswordHasher(),
		logger,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := seeder.Run(ctx, fx)
	if err != nil {
		return err
	}

	logger.Info("seed completed",
		slog.Int("users_created", res.UsersCreated),
		slog.Int("users_skipped", res.UsersSkipped),
		slog.Int("tasks_created", res.TasksCreated),
	)
	return nil
}
