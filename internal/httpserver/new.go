package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"smart-todo/internal/middleware"
	"smart-todo/internal/model"
	taskHTTP "smart-todo/internal/task/delivery/http"
	tgDelivery "smart-todo/internal/task/delivery/telegram"
	"smart-todo/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	readiness   func(ctx context.Context) error

	// Task domain
	taskHandler     taskHTTP.Handler
	telegramHandler tgDelivery.Handler
	middleware      middleware.Middleware
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	// Readiness is probed by GET /ready; nil always reports ready.
	Readiness func(ctx context.Context) error

	// Task domain. TelegramHandler is optional.
	TaskHandler     taskHTTP.Handler
	TelegramHandler tgDelivery.Handler
	Middleware      middleware.Middleware
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode == "" {
		cfg.Mode = modeFor(cfg.Environment)
	}
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		readiness:       cfg.Readiness,
		taskHandler:     cfg.TaskHandler,
		telegramHandler: cfg.TelegramHandler,
		middleware:      cfg.Middleware,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.taskHandler == nil {
		return errors.New("task handler is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}

// modeFor picks the gin mode when http_server.mode is left empty.
func modeFor(environment string) string {
	if model.Environment(environment) == model.EnvironmentProduction {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}
