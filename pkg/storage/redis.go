package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/uploadkit"
	"github.com/dmitrymomot/uploadkit/pkg/config"
)

// RedisClient defines the Redis operations used by the backend. Narrow on
// purpose so tests can substitute a mock; redis.UniversalClient satisfies it.
type RedisClient interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisConfig contains configuration for the Redis backend. Fields can be
// populated from environment variables via pkg/config.
type RedisConfig struct {
	ConnectionURL  string        `env:"UPLOADKIT_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	KeyPrefix      string        `env:"UPLOADKIT_REDIS_KEY_PREFIX" envDefault:"uploadkit:"`
	TTL            time.Duration `env:"UPLOADKIT_REDIS_TTL" envDefault:"24h"` // Zero disables expiration
	RetryAttempts  int           `env:"UPLOADKIT_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"UPLOADKIT_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"UPLOADKIT_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Redis stores content in Redis with an optional TTL. It is meant as cache
// storage for uploads awaiting validation and promotion to a permanent
// backend: entries expire on their own when the upload is abandoned.
// Safe for concurrent use.
type Redis struct {
	db     RedisClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures the Redis backend.
type RedisOption func(*Redis)

// WithRedisKeyPrefix namespaces all keys written by the backend.
func WithRedisKeyPrefix(prefix string) RedisOption {
	return func(s *Redis) {
		s.prefix = prefix
	}
}

// WithRedisTTL sets the expiration applied on upload. Zero keeps entries
// until explicitly deleted.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *Redis) {
		s.ttl = ttl
	}
}

// NewRedis creates a Redis backend over an existing client.
func NewRedis(client RedisClient, opts ...RedisOption) *Redis {
	if client == nil {
		panic("storage: NewRedis called with nil client")
	}
	s := &Redis{
		db:     client,
		prefix: "uploadkit:",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConnectRedis establishes a connection using the provided configuration,
// retrying up to RetryAttempts times with RetryInterval between attempts.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidRedisURL, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	for i := 0; i < attempts; i++ {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// NewRedisFromEnv connects and creates a Redis backend configured from
// environment variables.
func NewRedisFromEnv(ctx context.Context, opts ...RedisOption) (*Redis, error) {
	var cfg RedisConfig
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	client, err := ConnectRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewRedis(client, append([]RedisOption{
		WithRedisKeyPrefix(cfg.KeyPrefix),
		WithRedisTTL(cfg.TTL),
	}, opts...)...), nil
}

func (s *Redis) key(id string) string { return s.prefix + id }

// Upload reads the content into memory and stores it with the configured TTL.
func (s *Redis) Upload(ctx context.Context, r io.Reader, id string, _ uploadkit.Metadata) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return s.db.Set(ctx, s.key(id), data, s.ttl).Err()
}

// Open returns a seekable reader over the stored content.
func (s *Redis) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	data, err := s.db.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return &memoryReader{Reader: bytes.NewReader(data)}, nil
}

// Exists reports whether content is stored under the id.
func (s *Redis) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.db.Exists(ctx, s.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	return n > 0, nil
}

// Delete removes the stored content. Deleting a missing id returns
// ErrNotFound.
func (s *Redis) Delete(ctx context.Context, id string) error {
	n, err := s.db.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// URL returns "" - cached uploads have no public URL until promoted to a
// permanent backend.
func (s *Redis) URL(string) string { return "" }
