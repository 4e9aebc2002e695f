// main.go
package main

import (
	"context"
	"log"

	"shop-backend/cmd"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/wire"
	"shop-backend/pkg/credential"
	"shop-backend/pkg/database"
	"shop-backend/pkg/mailer"
	"shop-backend/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Run migrations before the pool opens
	if config.Database.AutoMigrate {
		if err := database.Migrate(config.Database, logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to the content store
	mongoClient, content, err := database.InitMongo(config.Mongo)
	if err != nil {
		logger.Fatal("Failed to connect to mongo", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	logger.Info("Mongo connected successfully", zap.String("database", config.Mongo.Database))

	tokens, err := credential.NewJWTService(credential.TokenConfig{
		AccessSecret:  config.JWT.AccessSecret,
		RefreshSecret: config.JWT.RefreshSecret,
		AccessTTL:     config.JWT.AccessTTL,
		RefreshTTL:    config.JWT.RefreshTTL,
	})
	if err != nil {
		logger.Fatal("Failed to init token service", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, content, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, tokens, mailer.New(config.Email, logger), logger)

	// Start server
	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
