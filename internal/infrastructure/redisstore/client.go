package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Suly-ms/ThisIsNotFine/internal/config"
)

// Connect opens and pings a Redis client. Sessions live here, so unlike a
// cache this connection is mandatory.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	pingCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
	}
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
