package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"edupal/internal/ratelimit"
	"edupal/pkg/response"
)

// RateLimit enforces the per-user quota of a request category. It must run
// after Auth.
func (m Middleware) RateLimit(category ratelimit.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, ok := ScopeFromContext(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if err := m.limiter.Allow(sc.UserID, category); err != nil {
			var exceeded *ratelimit.LimitExceededError
			if errors.As(err, &exceeded) {
				c.Header("Retry-After", strconv.Itoa(int(exceeded.RetryAfter.Seconds())+1))
			}
			m.l.Warnf(c.Request.Context(), "middleware: rate limit hit user=%s category=%s", sc.UserID, category)
			response.TooManyRequests(c, string(category))
			c.Abort()
			return
		}

		c.Next()
	}
}
