package middleware

import (
	"edupal/internal/ratelimit"
	"edupal/pkg/log"
	"edupal/pkg/scope"
)

type Middleware struct {
	l       log.Logger
	scope   *scope.Manager
	limiter *ratelimit.Limiter
}

func New(l log.Logger, scopeManager *scope.Manager, limiter *ratelimit.Limiter) Middleware {
	return Middleware{
		l:       l,
		scope:   scopeManager,
		limiter: limiter,
	}
}
