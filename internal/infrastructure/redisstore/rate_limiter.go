package redisstore

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// attemptLog records one attempt at a given instant, drops everything at or
// before the cutoff and returns how many attempts remain for the key.
type attemptLog interface {
	record(ctx context.Context, key string, at, cutoff int64, ttl time.Duration) (int64, error)
}

// redisAttemptLog keeps attempts in a sorted set scored by timestamp, so
// trimming the window is a single range removal.
type redisAttemptLog struct {
	client *redis.Client
}

func (r redisAttemptLog) record(ctx context.Context, key string, at, cutoff int64, ttl time.Duration) (int64, error) {
	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff, 10))
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(at),
		Member: strconv.FormatInt(at, 10),
	})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return count.Val(), nil
}

// LoginLimiter is a sliding-window counter keyed by client origin. When the
// backing store misbehaves the limiter fails open: losing rate limiting is
// preferable to locking every user out.
type LoginLimiter struct {
	log    attemptLog
	limit  int
	window time.Duration
	logger zerolog.Logger

	now func() time.Time

	warnedUnavailable atomic.Bool
}

func NewLoginLimiter(client *redis.Client, limit int, window time.Duration, logger zerolog.Logger) *LoginLimiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	l := &LoginLimiter{limit: limit, window: window, logger: logger, now: time.Now}
	if client != nil {
		l.log = redisAttemptLog{client: client}
	}
	return l
}

// Allow records one attempt for the origin and reports whether it is still
// within the window's budget. Attempts are counted before the credential
// check, so a correct password does not reset the counter.
func (l *LoginLimiter) Allow(ctx context.Context, origin string) (bool, error) {
	if l == nil || l.log == nil || origin == "" {
		return true, nil
	}

	now := l.now()
	count, err := l.log.record(ctx, "ratelimit:login:"+origin,
		now.UnixNano(), now.Add(-l.window).UnixNano(), l.window)
	if err != nil {
		l.warnUnavailableOnce(err)
		return true, nil
	}

	return count <= int64(l.limit), nil
}

func (l *LoginLimiter) warnUnavailableOnce(err error) {
	if l.warnedUnavailable.CompareAndSwap(false, true) {
		l.logger.Warn().Err(err).Msg("redis unavailable, login rate limiting disabled")
	}
}
