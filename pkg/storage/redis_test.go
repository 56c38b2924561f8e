package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadkit"
	"github.com/dmitrymomot/uploadkit/pkg/storage"
)

// mockRedisClient implements storage.RedisClient over a plain map, recording
// the expirations passed to Set.
type mockRedisClient struct {
	data    map[string]string
	lastTTL time.Duration
}

func newMockRedis() *mockRedisClient {
	return &mockRedisClient{data: make(map[string]string)}
}

func (m *mockRedisClient) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.lastTTL = expiration
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *mockRedisClient) Get(_ context.Context, key string) *redis.StringCmd {
	val, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (m *mockRedisClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			delete(m.data, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (m *mockRedisClient) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedis(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("upload stores under prefixed key with ttl", func(t *testing.T) {
		t.Parallel()
		client := newMockRedis()
		s := storage.NewRedis(client,
			storage.WithRedisKeyPrefix("cache:"),
			storage.WithRedisTTL(time.Minute),
		)

		require.NoError(t, s.Upload(ctx, strings.NewReader("payload"), "id.bin", uploadkit.Metadata{}))
		assert.Equal(t, "payload", client.data["cache:id.bin"])
		assert.Equal(t, time.Minute, client.lastTTL)
	})

	t.Run("open reads back and missing maps to ErrNotFound", func(t *testing.T) {
		t.Parallel()
		client := newMockRedis()
		s := storage.NewRedis(client)

		require.NoError(t, s.Upload(ctx, strings.NewReader("payload"), "id", uploadkit.Metadata{}))
		rc, err := s.Open(ctx, "id")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))

		_, err = s.Open(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("exists and delete", func(t *testing.T) {
		t.Parallel()
		client := newMockRedis()
		s := storage.NewRedis(client)

		require.NoError(t, s.Upload(ctx, strings.NewReader("x"), "id", uploadkit.Metadata{}))
		ok, err := s.Exists(ctx, "id")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, s.Delete(ctx, "id"))
		ok, err = s.Exists(ctx, "id")
		require.NoError(t, err)
		assert.False(t, ok)

		assert.ErrorIs(t, s.Delete(ctx, "id"), storage.ErrNotFound)
	})

	t.Run("empty id rejected and urls are empty", func(t *testing.T) {
		t.Parallel()
		s := storage.NewRedis(newMockRedis())
		assert.ErrorIs(t, s.Upload(ctx, strings.NewReader("x"), "", uploadkit.Metadata{}), storage.ErrInvalidID)
		assert.Equal(t, "", s.URL("anything"))
	})

	t.Run("nil client panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { storage.NewRedis(nil) })
	})
}

func TestConnectRedis(t *testing.T) {
	t.Parallel()

	t.Run("invalid url fails fast", func(t *testing.T) {
		t.Parallel()
		_, err := storage.ConnectRedis(context.Background(), storage.RedisConfig{
			ConnectionURL:  "not-a-url",
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, storage.ErrInvalidRedisURL)
	})
}
