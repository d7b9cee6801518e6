package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jingxi/marketplace/pkg/logger"
)

const rateLimitKeyPrefix = "gateway:ratelimit:"

// RateLimiter enforces a sliding-window request limit per caller,
// backed by a Redis sorted set of request timestamps.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter allows up to limit requests per caller per window.
func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: redisClient, limit: limit, window: window}
}

// callerKey identifies the caller: user id when authenticated, client
// IP otherwise.
func callerKey(c *fiber.Ctx) string {
	if userID := c.Locals("user_id"); userID != nil {
		if id, ok := userID.(uint); ok {
			return "user:" + strconv.FormatUint(uint64(id), 10)
		}
	}
	return "ip:" + c.IP()
}

// Middleware returns the rate limiting handler. Redis failures let the
// request through so an outage degrades to no limiting, not a 500.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := callerKey(c)

		used, err := rl.take(c.UserContext(), caller)
		if err != nil {
			logger.Logger.Error().
				Err(err).
				Str("caller", caller).
				Msg("Rate limiter unavailable, letting request through")
			return c.Next()
		}

		remaining := rl.limit - used
		if remaining < 0 {
			remaining = 0
		}
		reset := time.Now().Add(rl.window)
		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if used > rl.limit {
			logger.Logger.Warn().
				Str("caller", caller).
				Int("limit", rl.limit).
				Msg("Rate limit exceeded")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Rate limit exceeded",
				"retry_after": time.Until(reset).Round(time.Second).Seconds(),
			})
		}
		return c.Next()
	}
}

// take records the current request and returns how many requests the
// caller has made inside the window, including this one.
func (rl *RateLimiter) take(ctx context.Context, caller string) (int, error) {
	key := rateLimitKeyPrefix + caller
	now := time.Now().UnixNano()
	cutoff := strconv.FormatInt(time.Now().Add(-rl.window).UnixNano(), 10)

	pipe := rl.redis.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", cutoff)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	countCmd := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, rl.window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(countCmd.Val()), nil
}

// GlobalRateLimiter applies a 100 requests/minute limit to everything.
func GlobalRateLimiter(redisClient *redis.Client) fiber.Handler {
	return NewRateLimiter(redisClient, 100, time.Minute).Middleware()
}
