package http

import (
	"github.com/gin-gonic/gin"

	"smart-todo/internal/task"
	"smart-todo/pkg/log"
)

// Handler is the public interface for the task HTTP delivery layer.
type Handler interface {
	Parse(c *gin.Context)
	Create(c *gin.Context)
	List(c *gin.Context)
	Detail(c *gin.Context)
	Complete(c *gin.Context)

	CreateSession(c *gin.Context)
	GetSession(c *gin.Context)
	SendMessage(c *gin.Context)
	DeleteSession(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc task.UseCase
}

// New creates a new HTTP handler for the task domain.
func New(l log.Logger, uc task.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
