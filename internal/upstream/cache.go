package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"edu_analytics_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache stores snapshots as plain string values.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// CachedSource is a read-through cache in front of another Source. Failures
// of the inner source are returned unchanged and never cached.
type CachedSource struct {
	inner Source
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedSource(inner Source, cache Cache, ttl time.Duration, log *zap.Logger) *CachedSource {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedSource{inner: inner, cache: cache, ttl: ttl, log: log}
}

func (s *CachedSource) FetchRecords(ctx context.Context, q Query) ([]model.ActivityRecord, error) {
	return readThrough(ctx, s, cacheKey("activities", q), func() ([]model.ActivityRecord, error) {
		return s.inner.FetchRecords(ctx, q)
	})
}

func (s *CachedSource) FetchProgress(ctx context.Context, q Query) ([]model.TopicProgress, error) {
	return readThrough(ctx, s, cacheKey("progress", q), func() ([]model.TopicProgress, error) {
		return s.inner.FetchProgress(ctx, q)
	})
}

func cacheKey(kind string, q Query) string {
	return fmt.Sprintf("analytics:upstream:%s:%s:%s", kind, q.StudentID, q.Subject)
}

func readThrough[T any](ctx context.Context, s *CachedSource, key string, load func() ([]T, error)) ([]T, error) {
	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var out []T
		if jerr := json.Unmarshal(cached, &out); jerr == nil {
			return out, nil
		}
		s.log.Warn("discarding undecodable cache entry", zap.String("key", key))
	} else if !errors.Is(err, ErrCacheMiss) {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	// 缓存失效，回源上游
	out, err := load()
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	if raw, jerr := json.Marshal(out); jerr == nil {
		if serr := s.cache.Set(ctx, key, raw, s.ttl); serr != nil {
			s.log.Warn("cache write failed", zap.String("key", key), zap.Error(serr))
		}
	}
	return out, nil
}
