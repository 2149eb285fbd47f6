package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/assetflow/asset-service/internal/config"
	"github.com/assetflow/asset-service/internal/events"
)

const redisPingTimeout = 3 * time.Second

// Redis wraps the go-redis client used for the event stream. Client is nil
// when no address is configured.
type Redis struct {
	Client *redis.Client
}

// NewRedis builds a client for cfg. An unreachable server is only logged:
// the stream is best effort and the readiness probe reports it.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if cfg.Addr == "" {
		logger.Warn("REDIS_ADDR not provided; event stream disabled")
		return &Redis{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}

	return &Redis{Client: client}
}

// Publisher returns the stream sink for workflow events, or nil when Redis
// is disabled.
func (r *Redis) Publisher(cfg config.EventsConfig) *events.StreamPublisher {
	if !r.Enabled() {
		return nil
	}
	return events.NewStreamPublisher(r.Client, cfg.StreamName, cfg.StreamMaxLen)
}

// Close closes the client.
func (r *Redis) Close() {
	if r.Enabled() {
		_ = r.Client.Close()
	}
}

// Enabled reports whether a client was configured.
func (r *Redis) Enabled() bool {
	return r != nil && r.Client != nil
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if !r.Enabled() {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
