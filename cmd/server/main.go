package main

import (
	"fmt"
	"log"
	"net/http"

	"eventsphere/internal/config"
	"eventsphere/internal/database"
	"eventsphere/internal/handlers"
	"eventsphere/internal/middleware"
	"eventsphere/internal/repositories"
	"eventsphere/internal/services"
	"eventsphere/internal/sessions"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	// Run any pending migrations on startup
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create session store
	sessionStore := sessions.NewCookieStore(cfg.Session.Secret, cfg.IsProduction())
	cartStore := sessions.NewCookieCartStore(sessionStore)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	purchaseRepo := repositories.NewPurchaseRepository(db.DB)

	// Initialize services
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo)
	cartService := services.NewCartService(eventRepo)
	checkoutService := services.NewCheckoutService(purchaseRepo)
	analyticsService := services.NewAnalyticsService(db.DB)

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(userService, sessionStore)

	router := &handlers.Router{
		Events:    handlers.NewEventHandler(eventService, categoryRepo),
		Cart:      handlers.NewCartHandler(cartService, checkoutService, cartStore),
		Purchases: handlers.NewPurchaseHandler(checkoutService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Admin:     handlers.NewAdminHandler(userService, purchaseRepo),
		Auth:      authMiddleware,
	}

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s (env: %s)", addr, cfg.Server.Env)
	if err := http.ListenAndServe(addr, router.Routes()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
