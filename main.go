package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"vidtube/internal/config"
	"vidtube/internal/container"
	"vidtube/internal/middleware"
	"vidtube/pkg/logger"
)

// Resources holds all resources that need cleanup
type Resources struct {
	container *container.Container
	server    *http.Server
	log       *logger.Logger
	mu        sync.Mutex
	closed    bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		r.log.Info("Shutting down HTTP server...")
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			return fmt.Errorf("HTTP server shutdown: %w", err)
		}
		r.log.Info("HTTP server shutdown complete")
	}

	if r.container != nil {
		r.container.Cleanup(ctx)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting vidtube server")

	ctx := context.Background()
	app, err := container.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	router := setupRouter(app)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    30 * time.Second, // uploads arrive through this path
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	resources := &Resources{
		container: app,
		server:    server,
		log:       log,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(app *container.Container) *chi.Mux {
	cfg := app.GetConfig()
	log := app.GetLogger()
	h := app.Handlers

	r := chi.NewRouter()

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.AllowedOrigins

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	requireAuth := middleware.Auth(app.Tokens, log)
	optionalAuth := middleware.OptionalAuth(app.Tokens, log)

	// Health check (no auth required)
	r.Get("/health", h.Health.Check)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.User.Register)
			r.Post("/login", h.User.Login)
			r.Post("/refresh-token", h.User.RefreshToken)

			r.With(optionalAuth).Get("/c/{username}", h.User.ChannelProfile)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)

				r.Post("/logout", h.User.Logout)
				r.Post("/change-password", h.User.ChangePassword)
				r.Get("/current-user", h.User.CurrentUser)
				r.Patch("/update-account", h.User.UpdateAccount)
				r.Patch("/avatar", h.User.UpdateAvatar)
				r.Patch("/cover-image", h.User.UpdateCoverImage)
				r.Get("/history", h.User.WatchHistory)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/", h.Video.Feed)
			r.Post("/", h.Video.Publish)
			r.Get("/{videoId}", h.Video.Get)
			r.Patch("/{videoId}", h.Video.Update)
			r.Delete("/{videoId}", h.Video.Delete)
			r.Patch("/toggle/publish/{videoId}", h.Video.TogglePublish)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/{videoId}", h.Comment.List)
			r.Post("/{videoId}", h.Comment.Add)
			r.Patch("/c/{commentId}", h.Comment.Update)
			r.Delete("/c/{commentId}", h.Comment.Delete)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/toggle/v/{videoId}", h.Like.ToggleVideo)
			r.Post("/toggle/c/{commentId}", h.Like.ToggleComment)
			r.Post("/toggle/t/{tweetId}", h.Like.ToggleTweet)
			r.Get("/videos", h.Like.LikedVideos)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/c/{channelId}", h.Subscription.Toggle)
			r.Get("/c/{channelId}", h.Subscription.Subscribers)
			r.Get("/u/{subscriberId}", h.Subscription.SubscribedChannels)
		})

		r.Route("/playlist", func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/", h.Playlist.Create)
			r.Get("/user/{userId}", h.Playlist.ListByUser)
			r.Get("/{playlistId}", h.Playlist.Get)
			r.Patch("/add/{videoId}/{playlistId}", h.Playlist.AddVideo)
			r.Patch("/remove/{videoId}/{playlistId}", h.Playlist.RemoveVideo)
			r.Patch("/{playlistId}", h.Playlist.Update)
			r.Delete("/{playlistId}", h.Playlist.Delete)
		})

		r.Route("/tweets", func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/", h.Tweet.Create)
			r.Get("/user/{userId}", h.Tweet.ListByUser)
			r.Patch("/{tweetId}", h.Tweet.Update)
			r.Delete("/{tweetId}", h.Tweet.Delete)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/stats", h.Dashboard.Stats)
			r.Get("/videos", h.Dashboard.Videos)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":404,"message":"endpoint not found"}`))
	})

	log.Info("Router configured successfully")
	return r
}
