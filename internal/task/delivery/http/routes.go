package http

import (
	"github.com/gin-gonic/gin"

	"smart-todo/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. Every route runs with the
// caller scope and the rate limiter.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.Use(mw.Scope(), mw.RateLimit())

	tasks := rg.Group("/tasks")
	{
		tasks.POST("/parse", h.Parse)
		tasks.POST("", h.Create)
		tasks.GET("", h.List)
		tasks.GET("/:id", h.Detail)
		tasks.POST("/:id/complete", h.Complete)
	}

	sessions := rg.Group("/chat/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.POST("/:id/messages", h.SendMessage)
		sessions.DELETE("/:id", h.DeleteSession)
	}
}
