package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weatherchat/weatherchat/internal/chat"
	"github.com/weatherchat/weatherchat/internal/config"
	"github.com/weatherchat/weatherchat/internal/server/handlers"
	"github.com/weatherchat/weatherchat/internal/server/middlewares"
	"github.com/weatherchat/weatherchat/pkg/telemetry"
	"go.uber.org/zap"
)

// Server exposes the conversation turn pipeline over HTTP.
type Server struct {
	engine  *gin.Engine
	server  *http.Server
	bot     *chat.Bot
	metrics *handlers.Metrics
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

var (
	instance *Server
	once     sync.Once
)

func NewServer(bot *chat.Bot, logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	once.Do(func() {
		metrics := handlers.NewMetrics()

		gin.SetMode(gin.ReleaseMode)
		engine := gin.New()

		engine.Use(middlewares.RequestIDMiddleware(logger))
		engine.Use(middlewares.LoggingMiddleware(logger, time.RFC3339, true))
		engine.Use(middlewares.RecoveryMiddleware(logger, true))
		engine.Use(middlewares.TelemetryMiddleware(logger, tele))
		engine.Use(middlewares.MetricsMiddleware(metrics))

		instance = &Server{
			engine:  engine,
			bot:     bot,
			metrics: metrics,
			logger:  logger,
			tele:    tele,
		}

		instance.setupRoutes()
	})

	return instance
}

func (s *Server) setupRoutes() {
	// Business endpoints
	s.engine.POST("/chat", handlers.NewChatHandler(s.bot, s.metrics, s.logger).HandleChat)

	// Health endpoints (Kubernetes friendly)
	s.engine.GET("/health", handlers.NewHealthHandler(s.logger).Health)
	s.engine.GET("/health/live", handlers.NewHealthHandler(s.logger).Liveness)
	s.engine.GET("/health/ready", handlers.NewHealthHandler(s.logger).Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", handlers.NewMetricsHandler(s.logger, s.metrics).ServeMetrics)
}

func (s *Server) Start() error {
	cfg := config.GetConfig()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
