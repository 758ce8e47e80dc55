package middleware

import (
	"smart-todo/pkg/log"
)

// Middleware holds the gin middlewares shared by the task routes.
type Middleware struct {
	l           log.Logger
	rateLimiter *rateLimiter
}

// New creates the middleware set. requestsPerMin <= 0 disables rate limiting.
func New(l log.Logger, requestsPerMin int) Middleware {
	m := Middleware{l: l}
	if requestsPerMin > 0 {
		m.rateLimiter = newRateLimiter(requestsPerMin)
	}
	return m
}
