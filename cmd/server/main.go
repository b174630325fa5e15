package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/labstock/inventory/config"
	httpDelivery "github.com/labstock/inventory/internal/delivery/http"
	"github.com/labstock/inventory/internal/infrastructure/cache"
	"github.com/labstock/inventory/internal/infrastructure/sqlite"
	"github.com/labstock/inventory/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Inventory Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	store, err := sqlite.Open(context.Background(), cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open inventory store: %v", err)
	}
	defer store.Close()
	log.Printf("[STORE] Inventory database: %s", store.Path())

	specCache := cache.NewMemoryCache(cfg.Detection.SpecCacheTTL)
	defer specCache.Close()
	log.Printf("Spec cache TTL: %s", cfg.Detection.SpecCacheTTL)

	// Initialize usecase layer
	inventoryService := usecase.NewInventoryService(
		store,
		store,
		specCache,
		usecase.InventoryServiceConfig{
			SimilarityThreshold: &cfg.Detection.Threshold,
			SuggestionLimit:     cfg.Suggestions.Limit,
			EnableDebugLogging:  cfg.Detection.DebugLogging,
		},
	)

	log.Printf("Detection: threshold=%.2f, debug=%v, rate limit=%d/min per IP",
		cfg.Detection.Threshold,
		cfg.Detection.DebugLogging,
		cfg.RateLimit.PerIP)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(inventoryService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Printf("Failed to start server: %v", err)
		return
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
