package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// OriginKeyPrefix namespaces origin records in Redis.
const OriginKeyPrefix = "origin:"

// redisTimeout bounds each Redis round trip.
const redisTimeout = 5 * time.Second

// Redis is a Backend whose responses live in a Redis origin store.
// Keys missing from the origin are computed by the wrapped Simulated
// backend and written back without expiry. Redis failures degrade to
// computing the response directly so Request always answers.
type Redis struct {
	redis   *redis.Client
	compute *Simulated
	logger  zerolog.Logger
}

// NewRedis creates an origin backend over redisClient.
func NewRedis(redisClient *redis.Client, compute *Simulated, logger zerolog.Logger) (*Redis, error) {
	if redisClient == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if compute == nil {
		return nil, fmt.Errorf("compute backend is required")
	}
	return &Redis{
		redis:   redisClient,
		compute: compute,
		logger:  logger,
	}, nil
}

// Request returns the origin record for key, populating it on first use.
func (r *Redis) Request(key string) string {
	start := time.Now()
	defer func() {
		backendDuration.WithLabelValues(backendRedis).Observe(time.Since(start).Seconds())
		backendRequestsTotal.WithLabelValues(backendRedis).Inc()
	}()

	originKey := OriginKeyPrefix + key

	getCtx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	value, err := r.redis.Get(getCtx, originKey).Result()
	cancel()
	if err == nil {
		r.logger.Debug().Str("key", key).Msg("Origin record found")
		return value
	}
	if err != redis.Nil {
		backendErrorsTotal.WithLabelValues("get").Inc()
		r.logger.Warn().Err(err).Str("key", key).Msg("Origin get failed - computing directly")
		return r.compute.Request(key)
	}

	value = r.compute.Request(key)

	setCtx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := r.redis.Set(setCtx, originKey, value, 0).Err(); err != nil {
		backendErrorsTotal.WithLabelValues("set").Inc()
		r.logger.Warn().Err(err).Str("key", key).Msg("Origin set failed")
	}

	return value
}
