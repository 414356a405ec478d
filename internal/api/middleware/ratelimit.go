package middleware

import (
	"net/http"

	"trinity-backtest/internal/api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// NewLimiter returns a token bucket allowing rps requests per second with the
// given burst, or nil (no limit) when rps <= 0.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// RateLimit rejects requests with 429 once the limiter is exhausted.
// A nil limiter lets everything through.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "RATE_LIMITED",
					Message: "too many requests, retry later",
				},
			})
			return
		}
		c.Next()
	}
}
