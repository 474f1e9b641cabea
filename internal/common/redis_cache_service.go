package common

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"helo-luxury-air/portal/internal/logging"
	"helo-luxury-air/portal/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const redisCacheOpTimeout = 2 * time.Second

// RedisCacheService stores JSON-encoded values in Redis so that every
// portal instance sees the same fleet listing. Redis errors degrade to
// cache misses.
type RedisCacheService struct {
	client  *redis.Client
	prefix  string
	metrics *metrics.MetricsRegistry
}

var _ CacheInterface = (*RedisCacheService)(nil)

// NewRedisCacheService wraps an already connected client. The client is
// shared and stays open when the cache is closed.
func NewRedisCacheService(client *redis.Client, prefix string, metricsReg *metrics.MetricsRegistry) *RedisCacheService {
	return &RedisCacheService{
		client:  client,
		prefix:  prefix,
		metrics: metricsReg,
	}
}

func (r *RedisCacheService) Set(key string, value interface{}, duration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Warn("Redis cache: marshal failed", "key", key, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisCacheOpTimeout)
	defer cancel()
	if err := r.client.Set(ctx, r.prefix+key, data, duration).Err(); err != nil {
		logging.Warn("Redis cache: set failed", "key", key, "error", err)
	}
}

func (r *RedisCacheService) GetInto(key string, dst interface{}) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisCacheOpTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Warn("Redis cache: get failed", "key", key, "error", err)
		}
		r.record(key, false)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logging.Warn("Redis cache: unmarshal failed", "key", key, "error", err)
		r.record(key, false)
		return false
	}
	r.record(key, true)
	return true
}

func (r *RedisCacheService) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisCacheOpTimeout)
	defer cancel()
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		logging.Warn("Redis cache: delete failed", "key", key, "error", err)
	}
}

// Close is a no-op; the owner of the client closes it.
func (r *RedisCacheService) Close() error {
	return nil
}

func (r *RedisCacheService) record(key string, hit bool) {
	if r.metrics == nil {
		return
	}
	if hit {
		r.metrics.CacheHitsTotal.WithLabelValues(keyPattern(key)).Inc()
	} else {
		r.metrics.CacheMissesTotal.WithLabelValues(keyPattern(key)).Inc()
	}
}
