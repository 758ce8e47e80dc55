package telegram

import (
	"context"

	"github.com/gin-gonic/gin"

	"smart-todo/internal/task"
	pkgLog "smart-todo/pkg/log"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Sender delivers replies to a Telegram chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// New creates a new Telegram delivery handler. secret is compared with the webhook's
// secret token header; an empty secret disables the check.
func New(l pkgLog.Logger, uc task.UseCase, bot Sender, secret string) Handler {
	return &handler{
		l:      l,
		uc:     uc,
		bot:    bot,
		secret: secret,
	}
}
