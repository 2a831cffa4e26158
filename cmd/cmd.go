package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wedding-site-backend/internal/config"
	"wedding-site-backend/internal/handlers"
	"wedding-site-backend/internal/middleware"
	"wedding-site-backend/internal/repository"
	"wedding-site-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.Log.Level)

	// Connect to MongoDB
	db, disconnect, err := repository.Connect(context.Background(), cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer disconnect()
	log.Info().Str("database", cfg.Mongo.Database).Msg("Database connection established")

	// Initialize repositories
	albumRepo := repository.NewAlbumRepository(db)
	timelineRepo := repository.NewTimelineRepository(db)
	cardRepo := repository.NewMemoryCardRepository(db)

	// Initialize services
	authService := services.NewAuthService(cfg.Auth)
	imageHost, err := services.NewImageHost(context.Background(), cfg.AWS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create image host")
	}
	wsHub := services.NewWSHub()
	albumService := services.NewAlbumService(albumRepo)
	timelineService := services.NewTimelineService(timelineRepo)
	cardService := services.NewMemoryCardService(cardRepo, authService, imageHost, wsHub)

	// Seed default content explicitly at startup instead of lazily on the
	// first read, so concurrent first reads cannot double-insert
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer seedCancel()
	if err := albumService.EnsureDefaults(seedCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default albums")
	}
	if err := timelineService.EnsureDefaults(seedCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default timeline")
	}
	log.Info().Msg("Default content verified")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Auth.SecureCookies)
	albumHandler := handlers.NewAlbumHandler(albumService)
	timelineHandler := handlers.NewTimelineHandler(timelineService)
	cardHandler := handlers.NewMemoryCardHandler(cardService)
	wsHandler := handlers.NewWebSocketHandler(wsHub)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", handlers.OwnerTokenHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	submissionLimit := httprate.LimitByIP(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/session", authHandler.Session)

		r.Get("/albums", albumHandler.List)
		r.Get("/timeline", timelineHandler.List)

		r.Get("/memory-cards", cardHandler.List)
		r.With(submissionLimit).Post("/memory-cards", cardHandler.Create)
		r.Get("/memory-cards/{id}", cardHandler.Get)
		r.Delete("/memory-cards/{id}", cardHandler.Delete)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(authService))
			r.Put("/albums/{id}", albumHandler.Update)
			r.Post("/albums/{id}/cover", albumHandler.UpdateCover)
			r.Delete("/albums", albumHandler.Reset)
			r.Post("/timeline", timelineHandler.Create)
			r.Put("/timeline", timelineHandler.Reorder)
			r.Delete("/timeline", timelineHandler.Reset)
			r.Put("/timeline/{id}", timelineHandler.Update)
			r.Delete("/timeline/{id}", timelineHandler.Delete)
			r.Delete("/admin/memory-cards/{id}", cardHandler.AdminDelete)
		})
	})

	// Live memory wall feed
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
