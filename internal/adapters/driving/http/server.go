package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelvinzhao/epuber-core/internal/adapters/driven/headless"
	"github.com/kelvinzhao/epuber-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	libraryService    driving.LibraryService
	readerService     driving.ReaderService
	annotationService driving.AnnotationService
	overlayService    driving.OverlayService
	positionService   driving.PositionService
	sessionService    driving.SessionService
	themeService      driving.ThemeService
	summaryService    driving.SummaryService
	chatService       driving.ChatService
	settingsService   driving.SettingsService

	// Rendering surface driven by the embedding shell
	renderer *headless.Renderer

	// Infrastructure
	redisClient Pinger
	db          Pinger // optional
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "127.0.0.1",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	libraryService driving.LibraryService,
	readerService driving.ReaderService,
	annotationService driving.AnnotationService,
	overlayService driving.OverlayService,
	positionService driving.PositionService,
	sessionService driving.SessionService,
	themeService driving.ThemeService,
	summaryService driving.SummaryService,
	chatService driving.ChatService,
	settingsService driving.SettingsService,
	renderer *headless.Renderer,
	redisClient Pinger,
	db Pinger, // can be nil
) *Server {
	s := &Server{
		router:            http.NewServeMux(),
		version:           cfg.Version,
		libraryService:    libraryService,
		readerService:     readerService,
		annotationService: annotationService,
		overlayService:    overlayService,
		positionService:   positionService,
		sessionService:    sessionService,
		themeService:      themeService,
		summaryService:    summaryService,
		chatService:       chatService,
		settingsService:   settingsService,
		renderer:          renderer,
		redisClient:       redisClient,
		db:                db,
	}

	logging := NewLoggingMiddleware(nil)
	recovery := NewRecoveryMiddleware(nil)
	cors := NewCORSMiddleware(cfg.AllowedOrigins)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      logging.Handler(recovery.Handler(cors.Handler(s.router))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Library endpoints
	s.router.HandleFunc("GET /api/v1/books", s.handleListBooks)
	s.router.HandleFunc("POST /api/v1/books", s.handleAddBook)
	s.router.HandleFunc("GET /api/v1/books/{id}", s.handleGetBook)
	s.router.HandleFunc("DELETE /api/v1/books/{id}", s.handleRemoveBook)
	s.router.HandleFunc("GET /api/v1/library/overview", s.handleLibraryOverview)

	// Reader lifecycle endpoints
	s.router.HandleFunc("POST /api/v1/reader/open", s.handleOpenBook)
	s.router.HandleFunc("POST /api/v1/reader/close", s.handleCloseBook)
	s.router.HandleFunc("GET /api/v1/reader/current", s.handleCurrentBook)
	s.router.HandleFunc("POST /api/v1/reader/display", s.handleDisplay)
	s.router.HandleFunc("GET /api/v1/reader/toc", s.handleTOC)
	s.router.HandleFunc("GET /api/v1/reader/position", s.handleRestoreState)

	// Annotation endpoints
	s.router.HandleFunc("GET /api/v1/annotations", s.handleListAnnotations)
	s.router.HandleFunc("POST /api/v1/annotations", s.handleCreateAnnotation)
	s.router.HandleFunc("PATCH /api/v1/annotations/{id}", s.handleUpdateAnnotation)
	s.router.HandleFunc("DELETE /api/v1/annotations/{id}", s.handleDeleteAnnotation)

	// Overlay and floating UI endpoints
	s.router.HandleFunc("GET /api/v1/overlay", s.handleOverlayState)
	s.router.HandleFunc("POST /api/v1/overlay/selection", s.handleSelection)
	s.router.HandleFunc("POST /api/v1/overlay/click", s.handleOverlayClick)
	s.router.HandleFunc("POST /api/v1/overlay/dismiss", s.handleOverlayDismiss)
	s.router.HandleFunc("PUT /api/v1/overlay/tab", s.handleSetActiveTab)
	s.router.HandleFunc("PUT /api/v1/overlay/focus", s.handleFocusHighlight)

	// Reading time endpoints
	s.router.HandleFunc("GET /api/v1/stats", s.handleStats)
	s.router.HandleFunc("POST /api/v1/session/flush", s.handleSessionFlush)

	// Summary endpoints
	s.router.HandleFunc("GET /api/v1/summaries", s.handleListSummaries)
	s.router.HandleFunc("POST /api/v1/summaries/generate", s.handleGenerateSummary)
	s.router.HandleFunc("POST /api/v1/summaries/cancel", s.handleCancelSummary)
	s.router.HandleFunc("GET /api/v1/summaries/generating", s.handleSummaryGenerating)

	// Chat endpoints
	s.router.HandleFunc("GET /api/v1/chat/history", s.handleChatHistory)
	s.router.HandleFunc("POST /api/v1/chat/send", s.handleChatSend)
	s.router.HandleFunc("POST /api/v1/chat/cancel", s.handleChatCancel)
	s.router.HandleFunc("DELETE /api/v1/chat/history", s.handleChatClear)
	s.router.HandleFunc("GET /api/v1/chat/pins", s.handleListPins)
	s.router.HandleFunc("POST /api/v1/chat/pins", s.handlePinMessage)
	s.router.HandleFunc("DELETE /api/v1/chat/pins", s.handleUnpinMessage)

	// Settings endpoints
	s.router.HandleFunc("GET /api/v1/settings/ai", s.handleGetAISettings)
	s.router.HandleFunc("PUT /api/v1/settings/ai", s.handleUpdateAISettings)
	s.router.HandleFunc("POST /api/v1/settings/ai/test", s.handleTestAIConnection)
	s.router.HandleFunc("GET /api/v1/settings/reader", s.handleGetReaderSettings)
	s.router.HandleFunc("PUT /api/v1/settings/reader", s.handleUpdateReaderSettings)

	// Theme endpoints
	s.router.HandleFunc("GET /api/v1/theme", s.handleGetTheme)
	s.router.HandleFunc("PUT /api/v1/theme", s.handleSetTheme)

	// Shell-facing renderer endpoints
	s.router.HandleFunc("GET /api/v1/renderer/commands", s.handleRendererCommands)
	s.router.HandleFunc("POST /api/v1/renderer/events/painted", s.handleSectionPainted)
	s.router.HandleFunc("POST /api/v1/renderer/events/settled", s.handleLocationSettled)
	s.router.HandleFunc("PUT /api/v1/renderer/viewport", s.handleSetViewport)
}

// Start starts the HTTP server with graceful shutdown. The open reading
// session is flushed and the book closed before the process exits.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.readerService.Close(ctx); err != nil {
		log.Printf("failed to close open book: %v", err)
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
