package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/response"
	"github.com/ignatzorin/freelance-lifecycle/internal/logger"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

const rateLimitPrefix = "freelance:ratelimit"

// NewRateLimitStore выбирает хранилище счётчиков: redis, если задан redisURL, иначе память процесса.
func NewRateLimitStore(redisURL string) (limiter.Store, error) {
	if redisURL == "" {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		}), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("rate limit: некорректный REDIS_URL: %w", err)
	}
	store, err := sredis.NewStoreWithOptions(redis.NewClient(opts), limiter.StoreOptions{Prefix: rateLimitPrefix})
	if err != nil {
		return nil, fmt.Errorf("rate limit: redis недоступен: %w", err)
	}
	return store, nil
}

// RateLimitMiddleware ограничивает число запросов с одного IP.
// По умолчанию: 100 запросов в минуту.
func RateLimitMiddleware(store limiter.Store, limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 100
	}
	if period <= 0 {
		period = time.Minute
	}
	instance := limiter.New(store, limiter.Rate{Period: period, Limit: limit})

	return func(c *gin.Context) {
		ctx, err := instance.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Недоступный redis не должен класть API.
			logger.Log.WithError(err).Warn("rate limit: счётчик недоступен, запрос пропущен")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", ctx.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", ctx.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", ctx.Reset))

		if ctx.Reached {
			response.AbortError(c, &apperror.AppError{
				Code:       apperror.ErrCodeBadRequest,
				Message:    "слишком много запросов, попробуйте позже",
				HTTPStatus: http.StatusTooManyRequests,
			})
			return
		}
		c.Next()
	}
}
