package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fuelstation-service/internal/domain/repository"
	"fuelstation-service/internal/infrastructure/config"
	"fuelstation-service/internal/infrastructure/persistence"
	"fuelstation-service/internal/infrastructure/router"
	"fuelstation-service/internal/interface/handler"
	mongoRepo "fuelstation-service/internal/interface/repository"
	"fuelstation-service/pkg/logger"
	"fuelstation-service/pkg/metrics"

	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// Create logger
	log := logger.NewLogger(cfg.IsProduction())
	log.Info("Starting Fuel Station Service", "version", cfg.AppVersion, "env", cfg.Environment)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up the station repository
	var stationRepo repository.FuelStationRepository
	var mongoClient *mongo.Client

	switch cfg.StoreDriver {
	case "memory":
		log.Warn("Using in-memory store, data will not survive a restart")
		stationRepo = mongoRepo.NewMemoryFuelStationRepository()
	default:
		log.Info("Connecting to MongoDB", "database", cfg.MongoDB)
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = client

		repo := mongoRepo.NewMongoFuelStationRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal("Failed to create indexes", "error", err)
		}
		stationRepo = repo
	}

	// Set up metrics and HTTP surface
	m := metrics.NewMetrics(cfg.MetricsNamespace)
	stationHandler := handler.NewFuelStationHandler(stationRepo, log, m, cfg.IsProduction())
	httpHandler := router.New(cfg, log, m, stationHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	// Disconnect from MongoDB
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Fuel Station Service stopped")
}
