package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kelvinzhao/epuber-core/internal/adapters/driven/ai"
	"github.com/kelvinzhao/epuber-core/internal/adapters/driven/epubdoc"
	"github.com/kelvinzhao/epuber-core/internal/adapters/driven/headless"
	"github.com/kelvinzhao/epuber-core/internal/adapters/driven/postgres"
	redisadapter "github.com/kelvinzhao/epuber-core/internal/adapters/driven/redis"
	"github.com/kelvinzhao/epuber-core/internal/adapters/driving/http"
	"github.com/kelvinzhao/epuber-core/internal/core/domain"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driven"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
	"github.com/kelvinzhao/epuber-core/internal/core/services"
	"github.com/kelvinzhao/epuber-core/internal/runtime"
)

var version = "dev"

func main() {
	log.Printf("epuber-core %s starting", version)

	// Configuration from environment
	port := getEnvInt("PORT", 8080)
	host := getEnv("HOST", "127.0.0.1")
	redisURL := getEnv("REDIS_URL", "redis://localhost:6379/0")
	databaseURL := getEnv("DATABASE_URL", "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.Default()

	// ===== Initialize Redis =====
	log.Println("Connecting to Redis...")
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	// ===== Redis Stores =====
	annotationStore := redisadapter.NewAnnotationStore(redisClient)
	summaryStore := redisadapter.NewSummaryStore(redisClient)
	chatStore := redisadapter.NewChatStore(redisClient)
	settingsStore := redisadapter.NewSettingsStore(redisClient)

	// ===== Catalog, progress, and stats (PostgreSQL if configured) =====
	var (
		catalogStore  driven.CatalogStore
		progressStore driven.ProgressStore
		statsStore    driven.ReadingStatsStore
		db            *postgres.DB
	)
	if databaseURL != "" {
		log.Println("Connecting to PostgreSQL...")
		dbConfig := postgres.DefaultConfig(databaseURL)
		dbConfig.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", dbConfig.MaxOpenConns)
		dbConfig.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", dbConfig.MaxIdleConns)
		db, err = postgres.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Initialize schema (idempotent)
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		log.Println("PostgreSQL connected and schema initialized")

		catalogStore = postgres.NewCatalogStore(db)
		progressStore = postgres.NewProgressStore(db)
		statsStore = postgres.NewReadingStatsStore(db)
	} else {
		catalogStore = redisadapter.NewCatalogStore(redisClient)
		progressStore = redisadapter.NewProgressStore(redisClient)
		statsStore = redisadapter.NewReadingStatsStore(redisClient)
		log.Println("Using Redis catalog store")
	}

	// ===== Rendering surface =====
	viewport := domain.Viewport{
		Width:  getEnvInt("RENDERER_WIDTH", 1000),
		Height: getEnvInt("RENDERER_HEIGHT", 800),
	}
	renderer := headless.NewRenderer(viewport, logger)

	// ===== Runtime registry and AI factory =====
	runtimeServices := runtime.NewServices()
	defer runtimeServices.Close()
	aiFactory := ai.NewFactory()

	// Saved AI settings take effect at boot; an unconfigured backend is
	// not an error, the AI features just stay off until configured.
	if saved, err := settingsStore.GetAISettings(ctx); err == nil && saved.IsConfigured() {
		if llm, err := aiFactory.CreateLLMService(saved); err == nil {
			runtimeServices.SetLLMService(llm)
			log.Printf("AI backend configured (model=%s)", saved.Model)
		} else {
			log.Printf("Warning: saved AI settings rejected: %v", err)
		}
	}

	// ===== Services (core business logic) =====
	annotationService := services.NewAnnotationService(annotationStore)
	overlayService := services.NewOverlayService(renderer, annotationService, logger)
	annotationService.(interface {
		BindReconciler(driving.Reconciler)
	}).BindReconciler(overlayService)

	positionService := services.NewPositionService(renderer, progressStore, catalogStore, logger)
	sessionService := services.NewSessionService(statsStore, logger)
	themeService := services.NewThemeService(ctx, renderer, settingsStore, logger)
	summaryService := services.NewSummaryService(summaryStore, settingsStore, runtimeServices, logger)
	chatService := services.NewChatService(chatStore, runtimeServices, logger)
	settingsService := services.NewSettingsService(settingsStore, aiFactory, runtimeServices)
	libraryService := services.NewLibraryService(catalogStore, statsStore)

	readerService := services.NewReaderService(services.ReaderDeps{
		Catalog:  catalogStore,
		Loader:   epubdoc.NewLoader(),
		Renderer: renderer,
		CodecFor: func(doc driven.Document) driven.LocatorCodec {
			return epubdoc.NewCodec(doc)
		},
		Annotations: annotationService,
		Overlay:     overlayService,
		Position:    positionService,
		Session:     sessionService,
		Theme:       themeService,
		Summary:     summaryService,
		Chat:        chatService,
		Logger:      logger,
	})

	// ===== HTTP server =====
	cfg := http.Config{
		Host:           host,
		Port:           port,
		Version:        version,
		AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "*")},
	}

	var dbPinger http.Pinger
	if db != nil {
		dbPinger = db
	}

	server := http.NewServer(
		cfg,
		libraryService,
		readerService,
		annotationService,
		overlayService,
		positionService,
		sessionService,
		themeService,
		summaryService,
		chatService,
		settingsService,
		renderer,
		redisPinger{client: redisClient},
		dbPinger,
	)

	log.Printf("API server starting on %s:%d", host, port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// redisPinger adapts the Redis client to the server's health check interface.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.client.Ping(ctx).Err()
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
