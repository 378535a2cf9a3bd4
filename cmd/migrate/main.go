package main

import (
	"context"
	"flag"
	"fmt"

	"shoe-assistant-api/internal/config"
	"shoe-assistant-api/internal/database"

	"github.com/sirupsen/logrus"
)

func main() {
	var (
		action  = flag.String("action", "up", "Migration action: up, down, status, validate")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Setup logger
	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := cfg.Database.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid database configuration")
	}

	if err := cfg.Database.EnsureDirectories(); err != nil {
		logger.WithError(err).Fatal("Failed to prepare database directory")
	}

	logger.WithFields(logrus.Fields{
		"driver": cfg.Database.Driver,
		"action": *action,
	}).Info("Starting migration tool")

	connector := database.NewConnector(cfg.Database.ToConnectionConfig(logger))
	manager := database.NewMigrationManager(connector, logger)
	ctx := context.Background()

	// Handle different actions
	switch *action {
	case "up":
		if err := manager.RunMigrations(ctx); err != nil {
			logger.WithError(err).Fatal("Migration up failed")
		}
	case "down":
		if err := manager.RollbackMigration(ctx); err != nil {
			logger.WithError(err).Fatal("Migration down failed")
		}
	case "status":
		if err := showMigrationStatus(ctx, manager); err != nil {
			logger.WithError(err).Fatal("Failed to get migration status")
		}
	case "validate":
		if err := manager.ValidateSchema(ctx); err != nil {
			logger.WithError(err).Fatal("Schema validation failed")
		}
		fmt.Println("Schema validation passed successfully")
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: up, down, status, validate")
	}

	logger.Info("Migration tool completed successfully")
}

func showMigrationStatus(ctx context.Context, manager *database.MigrationManager) error {
	status, err := manager.GetMigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	fmt.Printf("Migration Status:\n")
	fmt.Printf("  Version: %d\n", status.Version)
	fmt.Printf("  Applied: %t\n", status.Applied)
	fmt.Printf("  Dirty: %t\n", status.Dirty)

	return nil
}
