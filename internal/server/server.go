package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantryline/backend/config"
	"github.com/pantryline/backend/internal/api"
	"github.com/pantryline/backend/internal/middleware"
	"github.com/pantryline/backend/internal/session"
)

// Server wraps the HTTP surface and its graceful shutdown.
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// New assembles the gin engine, middleware stack and API routes.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3cfg *config.S3Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var transport session.Transport
	if redisClient != nil {
		transport = session.NewRedisTransport(redisClient, cfg.SessionChannelPrefix, log)
	}

	api.SetupAPI(router, api.Deps{
		DB:                 db,
		Redis:              redisClient,
		Transport:          transport,
		S3:                 s3cfg,
		JWTSecret:          cfg.JWTSecret,
		Log:                log,
		GenerateRateLimit:  cfg.GenerateRateLimit,
		GenerateRateWindow: cfg.GenerateRateWindow,
	})

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.ServerHost + ":" + cfg.ServerPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving HTTP until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
