package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/placement-portal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ContextCache stores serialized chatbot context snapshots per student.
type ContextCache interface {
	// Get returns the cached payload and whether it was present.
	Get(ctx context.Context, studentID uint) ([]byte, bool, error)
	Set(ctx context.Context, studentID uint, payload []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, studentID uint) error
	Close() error
}

// NewContextCache returns a redis-backed cache when REDIS_ADDR is configured
// and a no-op cache otherwise.
func NewContextCache(cfg *config.Config) ContextCache {
	if cfg.Cache.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR is not set. Chatbot context caching is disabled.")
		return NoopContextCache{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	return NewRedisContextCache(client)
}

func contextKey(studentID uint) string {
	return fmt.Sprintf("student_context:%d", studentID)
}

type redisContextCache struct {
	client *redis.Client
}

func NewRedisContextCache(client *redis.Client) ContextCache {
	return &redisContextCache{client: client}
}

func (c *redisContextCache) Get(ctx context.Context, studentID uint) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, contextKey(studentID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get student context: %w", err)
	}
	return val, true, nil
}

func (c *redisContextCache) Set(ctx context.Context, studentID uint, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, contextKey(studentID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set student context: %w", err)
	}
	return nil
}

func (c *redisContextCache) Invalidate(ctx context.Context, studentID uint) error {
	if err := c.client.Del(ctx, contextKey(studentID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate student context: %w", err)
	}
	return nil
}

func (c *redisContextCache) Close() error {
	return c.client.Close()
}

// NoopContextCache never stores anything.
type NoopContextCache struct{}

func (NoopContextCache) Get(context.Context, uint) ([]byte, bool, error) { return nil, false, nil }
func (NoopContextCache) Set(context.Context, uint, []byte, time.Duration) error { return nil }
func (NoopContextCache) Invalidate(context.Context, uint) error { return nil }
func (NoopContextCache) Close() error { return nil }
