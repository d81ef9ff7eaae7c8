package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/internal/api"
	"storefront-service/internal/assistant"
	"storefront-service/internal/auth"
	"storefront-service/internal/cart"
	"storefront-service/internal/config"
	"storefront-service/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

const defaultAppName = "StorefrontService"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found or failed to load, relying on system environment")
	}
	logger := log.New(os.Stdout, fmt.Sprintf("[%s] ", defaultAppName), log.LstdFlags|log.Lshortfile|log.Lmicroseconds)
	logger.Println("INFO: Starting service...")

	// --- Configuration Loading ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("FATAL: Error loading configuration: %v", err)
	}
	logger.Printf("INFO: Configuration loaded for APP_ENV: %s, LogLevel: %s", cfg.AppEnv, cfg.LogLevel)

	// --- In-Memory State ---
	// All collections are process-lifetime only and reset to the static seed
	// data on every restart; there is no persistence layer.
	memStore := store.NewMemoryStore()
	memStore.Seed()
	logger.Println("INFO: In-memory store seeded with demo catalog, orders and promo codes.")

	// --- Assistant Relay ---
	gemini := assistant.NewGemini(cfg.Assistant.APIKey, cfg.Assistant.Model, cfg.Assistant.BaseURL, cfg.Assistant.Timeout)
	if gemini == nil {
		logger.Println("INFO: Assistant API key not set; chat relay will answer with the fallback message.")
	}
	// NewGemini returns a typed nil on a missing key; keep the interface nil
	// so the relay's unconfigured path triggers.
	var completer assistant.Completer
	if gemini != nil {
		completer = gemini
	}
	relay := assistant.NewRelay(completer, logger)

	// --- Admin Gate ---
	gate := auth.NewGate(cfg.Admin.Password, cfg.Admin.TokenSecret, cfg.Admin.TokenTTL)

	// --- Initialize API Handler ---
	httpAPIHandler := api.NewHTTPHandler(api.Deps{
		Products:   memStore,
		Categories: memStore,
		Orders:     memStore,
		Promos:     memStore,
		Sessions:   memStore,
		Relay:      relay,
		Gate:       gate,
		Delivery:   cart.DeliveryRule{Fee: cfg.Pricing.DeliveryFee, FreeOver: cfg.Pricing.FreeDeliveryOver},
		Logger:     logger,
	})

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter, logger)
	registerHealthCheck(httpRouter, logger)
	httpAPIHandler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		logger.Printf("INFO: HTTP server listening on port %s", cfg.HttpServer.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("FATAL: HTTP server ListenAndServe error: %v", err)
		}
		logger.Println("INFO: HTTP server has stopped.")
	}()

	// --- Graceful Shutdown ---
	shutdownComplete := make(chan struct{})
	go waitForShutdown(logger, httpServer, shutdownComplete)

	<-shutdownComplete
	logger.Println("INFO: Service shutdown sequence finished.")
}

func setupBaseMiddleware(router *chi.Mux, logger *log.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	logger.Println("INFO: Base HTTP middleware registered.")
}

func registerHealthCheck(router *chi.Mux, logger *log.Logger) {
	healthPath := "/api/v1/healthz"
	router.Get(healthPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "healthy",
			"serviceName": defaultAppName,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	logger.Printf("INFO: HTTP health check registered at %s", healthPath)
}

func waitForShutdown(logger *log.Logger, httpServer *http.Server, shutdownComplete chan struct{}) {
	defer close(shutdownComplete)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-sigChan
	logger.Printf("INFO: Received signal: %s. Starting graceful shutdown...", receivedSignal)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	logger.Println("INFO: Attempting to gracefully shut down HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("WARN: HTTP server graceful shutdown failed: %v", err)
	} else {
		logger.Println("INFO: HTTP server gracefully shut down.")
	}

	logger.Println("INFO: Graceful shutdown sequence completed.")
}
