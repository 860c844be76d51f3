package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// AttemptLimiter is satisfied by the Redis sliding-window limiter.
type AttemptLimiter interface {
	Allow(ctx context.Context, origin string) (bool, error)
}

// RateLimitMiddleware caps attempts per client IP. The attempt is recorded
// before the handler runs, so correct credentials do not bypass the cap.
type RateLimitMiddleware struct {
	limiter AttemptLimiter
}

func NewRateLimitMiddleware(limiter AttemptLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.limiter == nil {
			return c.Next()
		}

		ok, err := m.limiter.Allow(c.Context(), c.IP())
		if err != nil {
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
		if !ok {
			return NewAppError(fiber.StatusTooManyRequests, "Too many attempts, retry later", nil, nil)
		}
		return c.Next()
	}
}
