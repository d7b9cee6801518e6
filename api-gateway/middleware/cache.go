package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jingxi/marketplace/pkg/logger"
)

const cacheKeyPrefix = "gateway:cache:"

// CacheConfig holds response cache configuration
type CacheConfig struct {
	DefaultTTL       time.Duration
	CacheableMethods []string
	CacheableStatus  []int
}

// DefaultCacheConfig returns the default response cache configuration.
// Only safe reads are cached, and writes flush the whole cache: catalog
// listings change shape on any product edit, so fine-grained
// invalidation buys little here.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		DefaultTTL:       2 * time.Minute,
		CacheableMethods: []string{"GET", "HEAD"},
		CacheableStatus:  []int{200, 203, 300, 301, 404, 410},
	}
}

// CacheMiddleware implements response caching with Redis
func CacheMiddleware(redisClient *redis.Client, config CacheConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redisClient == nil {
			return c.Next()
		}

		ctx := context.Background()

		if !contains(config.CacheableMethods, c.Method()) {
			err := c.Next()
			// A successful write invalidates cached reads.
			if err == nil && c.Response().StatusCode() < 400 {
				if ierr := invalidateAll(ctx, redisClient); ierr != nil {
					logger.Logger.Warn().Err(ierr).Msg("Cache invalidation failed")
				}
			}
			return err
		}

		cacheKey := generateCacheKey(c)

		cachedResponse, err := redisClient.Get(ctx, cacheKey).Bytes()
		if err == nil && len(cachedResponse) > 0 {
			logger.Logger.Debug().
				Str("path", c.Path()).
				Str("cache_key", cacheKey).
				Msg("Cache hit")

			c.Set("X-Cache", "HIT")
			c.Set("Content-Type", "application/json")
			return c.Send(cachedResponse)
		}

		err = c.Next()

		statusCode := c.Response().StatusCode()
		if containsInt(config.CacheableStatus, statusCode) {
			responseBody := c.Response().Body()

			if serr := redisClient.Set(ctx, cacheKey, responseBody, config.DefaultTTL).Err(); serr != nil {
				logger.Logger.Warn().
					Err(serr).
					Str("cache_key", cacheKey).
					Msg("Failed to cache response")
			} else {
				logger.Logger.Debug().
					Str("path", c.Path()).
					Str("cache_key", cacheKey).
					Dur("ttl", config.DefaultTTL).
					Int("size", len(responseBody)).
					Msg("Response cached")
			}

			c.Set("X-Cache", "MISS")
		}

		return err
	}
}

// generateCacheKey builds a key over method, path, query and caller.
// The Authorization header is part of the key so one user's cached
// response never leaks to another.
func generateCacheKey(c *fiber.Ctx) string {
	keyComponents := fmt.Sprintf("%s:%s:%s:%s",
		c.Method(),
		c.Path(),
		string(c.Request().URI().QueryString()),
		c.Get("Authorization"),
	)

	hash := sha256.Sum256([]byte(keyComponents))
	return cacheKeyPrefix + hex.EncodeToString(hash[:])
}

func invalidateAll(ctx context.Context, redisClient *redis.Client) error {
	iter := redisClient.Scan(ctx, 0, cacheKeyPrefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := redisClient.Del(ctx, keys...).Err(); err != nil {
			return err
		}
		logger.Logger.Debug().
			Int("count", len(keys)).
			Msg("Cache invalidated")
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
