package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Client struct {
	rdb        *redis.Client
	KeyBuilder *KeyBuilder
	log        *zap.Logger
}

// Cache key patterns
const (
	KeyChannelStats   = "channel:%s:stats"    // channel:{channelID}:stats
	KeyChannelProfile = "channel:%s:profile"  // channel:{username}:profile
	KeyVideoByID      = "video:%s"            // video:{videoID}
	KeyVideoViews     = "video:%s:views"      // view counter buffer
	KeySubscriberTot  = "channel:%s:subtotal" // subscriber count
)

// TTL constants
const (
	TTLChannelStats   = 30 * time.Second // stats are aggregation-heavy, short TTL keeps them near-live
	TTLChannelProfile = 5 * time.Minute
	TTLVideoByID      = 1 * time.Minute
	TTLSubscriberTot  = 1 * time.Minute
)

// NewClient creates a new Redis client
func NewClient(redisURL string, environment string, log *zap.Logger) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = 50
	opts.MinIdleConns = 5
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, KeyBuilder: NewKeyBuilder(environment), log: log}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// Health checks the Redis connection
func (c *Client) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Get retrieves a value from Redis. A cache miss returns redis.Nil.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil && err != redis.Nil {
		c.log.Warn("redis_get",
			zap.String("key_prefix", prefixForLog(key)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
	}
	return val, err
}

// Set stores a value in Redis with a TTL
func (c *Client) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Del removes keys from Redis
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// Exists reports how many of the given keys exist
func (c *Client) Exists(ctx context.Context, keys ...string) (int64, error) {
	return c.rdb.Exists(ctx, keys...).Result()
}

// IncrBy increments a numeric key
func (c *Client) IncrBy(ctx context.Context, key string, value int64) (int64, error) {
	return c.rdb.IncrBy(ctx, key, value).Result()
}

// IsCacheMiss reports whether the error is a plain cache miss
func IsCacheMiss(err error) bool {
	return err == redis.Nil
}

// prefixForLog trims key values out of log lines; identifiers stay out of logs
func prefixForLog(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
