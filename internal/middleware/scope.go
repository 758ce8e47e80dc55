package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"smart-todo/internal/model"
)

const (
	HeaderUserID = "X-User-ID"
	scopeKey     = "scope"
)

// Scope reads the caller identity from X-User-ID. Requests without one act as the
// anonymous user.
func (m Middleware) Scope() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(scopeKey, model.NewScope(strings.TrimSpace(c.GetHeader(HeaderUserID))))
		c.Next()
	}
}

// GetScope returns the scope stored by Scope, or the anonymous scope.
func GetScope(c *gin.Context) model.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if sc, ok := v.(model.Scope); ok {
			return sc
		}
	}
	return model.NewScope("")
}
