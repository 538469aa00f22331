package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/learnsphere/socialgraph/internal/models"
	"github.com/learnsphere/socialgraph/pkg/config"
	"github.com/learnsphere/socialgraph/pkg/logging"
)

// PrivacyTTL bounds staleness of cached privacy snapshots. Writes
// invalidate eagerly; the TTL covers out-of-band DB changes.
const PrivacyTTL = 10 * time.Minute

// Cache wraps Redis client. A nil *Cache is valid and disables caching.
type Cache struct {
	client *redis.Client
}

// New creates a new Redis cache client
func New(cfg *config.RedisConfig) (*Cache, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Redis cache disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &Cache{client: client}, nil
}

// Key builds a namespaced cache key
func Key(parts ...interface{}) string {
	key := "socialgraph"
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

// GetPrivacy retrieves a cached privacy snapshot; a miss returns nil, nil
func (c *Cache) GetPrivacy(ctx context.Context, userID int64) (*models.PrivacySetting, error) {
	if c == nil || c.client == nil {
		return nil, ErrCacheDisabled
	}
	raw, err := c.client.Get(ctx, Key("privacy", userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var setting models.PrivacySetting
	if err := json.Unmarshal(raw, &setting); err != nil {
		// Stale or corrupt entry; treat as a miss
		return nil, nil
	}
	return &setting, nil
}

// SetPrivacy caches a privacy snapshot
func (c *Cache) SetPrivacy(ctx context.Context, setting *models.PrivacySetting) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	raw, err := json.Marshal(setting)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key("privacy", setting.UserID), raw, PrivacyTTL).Err()
}

// InvalidatePrivacy drops the cached snapshot for a user
func (c *Cache) InvalidatePrivacy(ctx context.Context, userID int64) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Del(ctx, Key("privacy", userID)).Err()
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Health checks Redis health
func (c *Cache) Health(ctx context.Context) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Ping(ctx).Err()
}

// ErrCacheDisabled is returned when cache operations are attempted but
// cache is disabled
var ErrCacheDisabled = fmt.Errorf("cache is disabled")
