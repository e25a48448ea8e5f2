package container

import (
	"context"
	"fmt"

	"vidtube/internal/config"
	"vidtube/internal/handler"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/pkg/auth"
	"vidtube/pkg/database"
	"vidtube/pkg/logger"
	"vidtube/pkg/media"
	"vidtube/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *database.MongoDB
	RedisClient *redis.Client
	Storage     media.Storage
	Tokens      *auth.TokenManager

	Handlers *Handlers
}

// Handlers groups the HTTP handlers the router mounts
type Handlers struct {
	Health       *handler.HealthHandler
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Like         *handler.LikeHandler
	Subscription *handler.SubscriptionHandler
	Playlist     *handler.PlaylistHandler
	Tweet        *handler.TweetHandler
	Dashboard    *handler.DashboardHandler
}

// New creates a new dependency injection container
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	// Redis is optional; the service degrades to uncached reads without it
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	storage, err := media.NewMinioStorage(ctx, media.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		UseSSL:    cfg.MinioUseSSL,
		Bucket:    cfg.MinioBucket,
		PublicURL: cfg.MinioPublicURL,
	}, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media storage: %w", err)
	}

	tokens := auth.NewTokenManager(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenExpiry,
		cfg.RefreshTokenExpiry,
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Services
	userService := service.NewUserService(userRepo, tokens, storage, redisClient, log)
	videoService := service.NewVideoService(videoRepo, userRepo, commentRepo, likeRepo, storage, redisClient, log)
	commentService := service.NewCommentService(commentRepo, log)
	likeService := service.NewLikeService(likeRepo, log)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, log)
	playlistService := service.NewPlaylistService(playlistRepo, log)
	tweetService := service.NewTweetService(tweetRepo, userRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo, videoRepo, redisClient, log)

	secureCookies := cfg.Environment == "production"

	handlers := &Handlers{
		Health:       handler.NewHealthHandler(db, redisClient, log),
		User:         handler.NewUserHandler(userService, cfg.TempDir, secureCookies, log),
		Video:        handler.NewVideoHandler(videoService, cfg.TempDir, log),
		Comment:      handler.NewCommentHandler(commentService, log),
		Like:         handler.NewLikeHandler(likeService, log),
		Subscription: handler.NewSubscriptionHandler(subscriptionService, log),
		Playlist:     handler.NewPlaylistHandler(playlistService, log),
		Tweet:        handler.NewTweetHandler(tweetService, log),
		Dashboard:    handler.NewDashboardHandler(dashboardService, log),
	}

	return &Container{
		Config:      cfg,
		Logger:      log,
		DB:          db,
		RedisClient: redisClient,
		Storage:     storage,
		Tokens:      tokens,
		Handlers:    handlers,
	}, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// HasRedis returns true if the Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// Cleanup releases the container's connections
func (c *Container) Cleanup(ctx context.Context) {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.WithError(err).Error("Failed to close Redis client")
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(ctx); err != nil {
			c.Logger.WithError(err).Error("Failed to close database connection")
		}
	}
}
