package main

import (
	"context"
	"log"

	"truthordare/config"
	"truthordare/handlers"
	"truthordare/middleware"
	"truthordare/models"
	"truthordare/routes"
	"truthordare/services"
	"truthordare/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.Mode{},
		&models.Card{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)
	store := storage.NewRedisStore(redisClient, cfg.RedisKeyPrefix)

	// Card catalog
	dbSource := services.NewDBCatalogSource(db)
	if cfg.CatalogSeedFile != "" {
		database, err := services.FileCatalogSource{Path: cfg.CatalogSeedFile}.LoadCatalog(ctx)
		if err != nil {
			log.Fatal("Failed to read catalog seed:", err)
		}
		if err := dbSource.Seed(ctx, database); err != nil {
			log.Fatal("Failed to seed catalog:", err)
		}
		log.Printf("Seeded %d cards and %d modes from %s", len(database.Cards), len(database.Modes), cfg.CatalogSeedFile)
	}

	var source services.CatalogSource = dbSource
	if cfg.CatalogFile != "" {
		source = services.FileCatalogSource{Path: cfg.CatalogFile}
	}

	// Initialize services
	catalogService := services.NewCatalogService(source, store)
	rosterService := services.NewRosterService(store)
	photoService := services.NewPhotoService(store)
	sessionService := services.NewSessionService(catalogService, store, services.NewDrawer(nil), services.Rules{
		TruthLimit:  cfg.TruthLimit,
		ForceAction: cfg.ForceAction,
	})
	unlockService := services.NewUnlockService(catalogService, services.NewGormPaymentRecorder(db), cfg.UnlockSecret)

	// Games can't start without a catalog, but roster and photos still work
	if err := catalogService.Load(ctx); err != nil {
		log.Printf("Starting without a card catalog: %v", err)
	}
	if err := rosterService.Load(ctx); err != nil {
		log.Printf("Failed to load players: %v", err)
	}
	if err := photoService.Load(ctx); err != nil {
		log.Printf("Failed to load photos: %v", err)
	}
	if restored, err := sessionService.Restore(ctx); err != nil {
		log.Printf("Failed to restore game: %v", err)
	} else if restored {
		log.Printf("Resumed previous game")
	}

	// Initialize WebSocket hub
	hub := services.NewHub(rosterService, sessionService, photoService, catalogService)
	go hub.Run()
	defer hub.Subscribe()()

	// Initialize handlers
	playerHandler := handlers.NewPlayerHandler(rosterService)
	sessionHandler := handlers.NewSessionHandler(sessionService, rosterService)
	modeHandler := handlers.NewModeHandler(catalogService, unlockService, cfg.UnlockTokenTTL)
	photoHandler := handlers.NewPhotoHandler(photoService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, playerHandler, sessionHandler, modeHandler, photoHandler, hub, cfg.AdminKeyHash)

	// Start server
	log.Printf("Server starting on %s", cfg.Addr())
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
