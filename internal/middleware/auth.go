package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"edupal/internal/model"
	"edupal/pkg/response"
)

const scopeContextKey = "edupal.scope"

// Auth validates the bearer token and injects the caller's scope into the
// gin context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		sc, err := m.scope.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			m.l.Warnf(c.Request.Context(), "middleware: token rejected: %v", err)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(scopeContextKey, sc)
		c.Next()
	}
}

// ScopeFromContext returns the authenticated scope set by Auth.
func ScopeFromContext(c *gin.Context) (model.Scope, bool) {
	v, ok := c.Get(scopeContextKey)
	if !ok {
		return model.Scope{}, false
	}
	sc, ok := v.(model.Scope)
	return sc, ok
}
