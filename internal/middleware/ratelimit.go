package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"imagedrop/api/internal/config"
)

// RateLimit enforces a fixed window per client IP backed by redis. When
// redis is unreachable the limiter fails open: a degraded cache must not
// take the API down with it.
func RateLimit(cfg config.RateLimitConfig, client *redis.Client, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("rate limit check failed")
			c.Next()
			return
		}

		if count == 1 {
			if err := client.Expire(c.Request.Context(), key, cfg.Window).Err(); err != nil {
				log.Warn().Err(err).Msg("rate limit expire failed")
			}
		}

		if count > int64(cfg.Max) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			return
		}

		c.Next()
	}
}
