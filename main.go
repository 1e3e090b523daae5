package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rental-booking/cmd"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/wire"
	"rental-booking/pkg/database"
	"rental-booking/pkg/events"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.String("store", config.Store.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	if err := run(ctx, config, logger); err != nil {
		logger.Fatal("Application stopped", zap.Error(err))
	}
	logger.Info("Application stopped")
}

func run(ctx context.Context, config *utils.Config, logger *zap.Logger) error {
	repos, closeStore, err := openStore(ctx, config, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if config.Cache.ListingTTL > 0 {
		cached := repository.NewCachedListingRepository(repos.Listing, config.Cache.ListingSize, config.Cache.ListingTTL, logger)
		defer cached.Stop()
		repos.Listing = cached
	}

	if config.App.SeedOnStart {
		if _, err := cmd.Seed(ctx, repos, logger); err != nil {
			return err
		}
	}

	publisher, err := events.New(config.Kafka, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", zap.Error(err))
		}
	}()

	// Wire all dependencies
	app, err := wire.Wiring(repos, publisher, config, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return cmd.APIServer(ctx, app.Router, config.App, logger)
}

func openStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (*repository.Repository, func(), error) {
	if config.Store.Driver == utils.StoreMemory {
		logger.Warn("Using in-memory store, data is lost on restart")
		return repository.NewMemoryRepository(logger), func() {}, nil
	}

	if config.Database.Migrate {
		if err := database.Migrate(ctx, config.Database.DSN()); err != nil {
			return nil, nil, err
		}
		logger.Info("Database migrations applied")
	}

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connected successfully")

	return repository.NewRepository(db, logger), db.Close, nil
}
