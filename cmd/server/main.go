package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"invoice-backend/internal/auth"
	"invoice-backend/internal/cache"
	"invoice-backend/internal/config"
	"invoice-backend/internal/database"
	"invoice-backend/internal/db"
	"invoice-backend/internal/handlers"
	"invoice-backend/internal/health"
	h "invoice-backend/internal/http"
	"invoice-backend/internal/middleware"
	"invoice-backend/internal/repositories"
	"invoice-backend/internal/services"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Run schema migrations before anything touches the tables
	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	// Redis is optional: the listing cache degrades to DB reads without it
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] unavailable, running without cache: %v", err)
	} else {
		log.Println("[Redis] connected")
	}

	jwtManager := auth.NewJWTManager(cfg)
	healthChecker := health.NewHealthChecker(pool)

	// Repositories
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	userRepo := repositories.NewUserRepository(pool)

	// Services
	invoiceService := services.NewInvoiceService(invoiceRepo)
	customerService := services.NewCustomerService(customerRepo)
	userService := services.NewUserService(userRepo, jwtManager)

	// Handlers
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	authHandler := handlers.NewAuthHandler(userService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Middleware and router
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)
	router := h.NewRouter(invoiceHandler, customerHandler, authHandler, healthHandler, authMiddleware)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
