package httpserver

import (
	"context"

	taskHTTP "smart-todo/internal/task/delivery/http"
	"smart-todo/pkg/response"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (srv HTTPServer) mapHandlers() error {
	srv.gin.Use(gin.Recovery())
	if srv.mode != gin.TestMode {
		srv.gin.Use(gin.Logger())
	}
	srv.gin.NoRoute(response.NotFound)

	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	srv.mountTaskRoutes()
	return nil
}

func (srv HTTPServer) mountTaskRoutes() {
	ctx := context.Background()

	taskHTTP.RegisterRoutes(srv.gin.Group("/api/v1"), srv.taskHandler, srv.middleware)

	// The webhook sits outside /api/v1: Telegram authenticates with its secret
	// header, not with the caller scope middleware.
	if srv.telegramHandler == nil {
		srv.l.Infof(ctx, "httpserver: telegram disabled, %s environment", srv.environment)
		return
	}
	srv.gin.POST("/webhook/telegram", srv.telegramHandler.HandleWebhook)
	srv.l.Infof(ctx, "httpserver: telegram webhook mounted, %s environment", srv.environment)
}
