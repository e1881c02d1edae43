package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/code4imabari/kyukyu-annai/internal/adapters/cache"
	"github.com/code4imabari/kyukyu-annai/internal/adapters/feed"
	"github.com/code4imabari/kyukyu-annai/internal/adapters/speech"
	"github.com/code4imabari/kyukyu-annai/internal/api/handlers"
	"github.com/code4imabari/kyukyu-annai/internal/api/middleware"
	"github.com/code4imabari/kyukyu-annai/internal/api/routes"
	"github.com/code4imabari/kyukyu-annai/internal/application/services"
	"github.com/code4imabari/kyukyu-annai/internal/domain/providers"
	"github.com/code4imabari/kyukyu-annai/internal/infrastructure/clients/redis"
	"github.com/code4imabari/kyukyu-annai/internal/infrastructure/observability"
	"github.com/code4imabari/kyukyu-annai/internal/infrastructure/storage"
	"github.com/code4imabari/kyukyu-annai/pkg/config"
)

//go:embed static/index.html
var indexHTML []byte

func main() {

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize Redis client if enabled
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis client: %v", err)
			// Continue without Redis - the application can work without it
		} else {
			defer redisClient.Close()
			log.Println("Redis client initialized successfully")
		}
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	} else {
		cacheProvider = cache.NewMemoryAdapter()
		log.Println("Response cache running in-process (Redis not configured)")
	}

	// Initialize adapters

	feedAdapter := feed.NewCachedAdapter(
		feed.NewHTTPAdapterWithOptions(cfg.Feed.BaseURL, &http.Client{Timeout: cfg.Feed.Timeout()}),
		cfg.Feed.CacheTTL(),
		metrics,
	)

	artifactStore, err := storage.NewArtifactStore(cfg.Audio.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize artifact store: %v", err)
	}

	speechAdapter := speech.NewGoogleAdapterWithOptions(
		cfg.Speech.Endpoint,
		cfg.Speech.Language,
		&http.Client{Timeout: cfg.Speech.Timeout()},
	)

	// Initialize services

	announcementService := services.NewAnnouncementService(speechAdapter, artifactStore)
	guideService := services.NewGuideService(feedAdapter, announcementService)

	// Initialize handlers

	guideHandler := handlers.NewGuideHandler(guideService)
	pageHandler := handlers.NewPageHandler(indexHTML)

	// Initialize cache middleware
	cacheMiddleware := middleware.NewCacheMiddleware(cacheProvider)

	// Set up router

	router := routes.NewRouter(
		guideHandler,
		pageHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
