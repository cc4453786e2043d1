package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-sharing-platform/cmd/config"
	migration "recipe-sharing-platform/cmd/database/migrate"
	"recipe-sharing-platform/cmd/database/seed"
	"recipe-sharing-platform/internal/logging"
	"recipe-sharing-platform/internal/utils"

	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	seedOnly := flag.Bool("seed", false, "seed default accounts and categories and exit")
	flag.Parse()

	configErr := utils.LoadConfig()

	logger, err := logging.Init(utils.GetConfig("APP_ENV"), utils.GetConfig("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if configErr != nil {
		logger.Warn("Config file not loaded, using defaults", zap.Error(configErr))
	}

	db, err := config.ConnectDB()
	if err != nil {
		logger.Fatal("Database connection failed", zap.Error(err))
	}

	if err := migration.Migrate(db); err != nil {
		logger.Fatal("Database migration failed", zap.Error(err))
	}
	if *migrateOnly {
		return
	}

	if *seedOnly || utils.GetConfig("SEED_DEFAULTS") == "true" {
		if err := seed.Seed(db); err != nil {
			logger.Fatal("Database seeding failed", zap.Error(err))
		}
		if *seedOnly {
			return
		}
	}

	app, err := config.NewApp(db, logger)
	if err != nil {
		logger.Fatal("Failed to build application", zap.Error(err))
	}

	go func() {
		port := utils.GetConfig("APP_PORT")
		logger.Info("Starting server", zap.String("port", port), zap.String("env", utils.GetConfig("APP_ENV")))
		if err := app.Listen(":" + port); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
