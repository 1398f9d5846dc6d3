package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"novasphere/internal/ai"
	"novasphere/internal/catalog"
	"novasphere/internal/handlers"
	"novasphere/internal/repositories"
	"novasphere/internal/services"
	"novasphere/internal/storefront"
	"novasphere/pkg/pubsub"
)

// NewApp wires the full storefront: local state database, stores, AI
// gateway, event bus and the HTTP facade. A missing or unusable AI key is
// not fatal; the gateway runs in fail-soft mode and every AI feature
// degrades to empty results.
func NewApp(v *viper.Viper) (*fiber.App, *storefront.Storefront, *pubsub.Bus, error) {
	db, err := gorm.Open(sqlite.Open(v.GetString("STATE_DB_PATH")), &gorm.Config{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if err := db.AutoMigrate(&repositories.StateSlot{}); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to migrate state database: %w", err)
	}
	stateRepo := repositories.NewGORMStateRepository(db)

	// Stores. Session and cart restore themselves from the state slots.
	catalogService := services.NewCatalogService(catalog.Seed())
	sessionService := services.NewSessionService(stateRepo, v.GetString("JWT_SECRET"))
	cartService := services.NewCartService(stateRepo)
	orderService := services.NewOrderService()

	var gateway storefront.Recommender
	if apiKey := v.GetString("GEMINI_API_KEY"); apiKey == "" {
		log.Println("GEMINI_API_KEY is not set; AI recommendations and search will return empty results")
	} else {
		gw, err := ai.NewGateway(context.Background(), apiKey, v.GetString("GEMINI_MODEL"))
		if err != nil {
			log.Printf("Failed to initialize AI gateway, continuing without it: %v", err)
		} else {
			gateway = gw
		}
	}

	bus := pubsub.New()
	store := storefront.New(catalogService, sessionService, cartService, orderService, gateway, bus, storefront.Config{
		AITimeout: v.GetDuration("AI_TIMEOUT"),
	})

	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(store).RegisterRoutes(apiV1)
	handlers.NewProductHandler(store, sessionService).RegisterRoutes(apiV1)
	handlers.NewCartHandler(store).RegisterRoutes(apiV1)
	handlers.NewStateHandler(store).RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"ai_busy": store.AIBusy(),
		})
	})

	return app, store, bus, nil
}

func main() {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("STATE_DB_PATH", "novasphere.db")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("AI_TIMEOUT", storefront.DefaultAITimeout)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	app, _, bus, err := NewApp(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	defer bus.Close()

	// Stand-in for the rendering layer: a subscriber that would re-read the
	// projections on every change.
	go func() {
		for msg := range bus.Subscribe(pubsub.TopicOrderCreated) {
			log.Printf("Order placed: %s", msg.Body)
		}
	}()

	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
