package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lost-woods/entropy/src/api"
	"github.com/lost-woods/entropy/src/config"
	"github.com/lost-woods/entropy/src/entropy"
)

type Server struct {
	port   string
	router *gin.Engine
}

func New(cfg config.Config, src entropy.Source, h *entropy.Health, log *zap.SugaredLogger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// Background health monitoring (best-effort)
	go entropy.PeriodicCheck(src, h, cfg.HealthInterval())

	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"X-API-KEY", "Accept"},
		AllowAllOrigins:  true,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(api.CheckHeader("X-API-KEY", cfg.APIKey))

	handlers := api.NewHandlers(src, h, log, cfg.DefaultSampleSize, cfg.MaxSampleSize)
	router.GET("/", handlers.Analyze)
	router.GET("/analyze", handlers.Analyze)
	router.GET("/tests", handlers.Tests)
	router.GET("/bytes", handlers.Bytes)
	router.GET("/encrypt", handlers.Encrypt)
	router.GET("/benchmark", handlers.Benchmark)
	router.GET("/health", handlers.Health)

	return &Server{port: cfg.Port, router: router}
}

func (s *Server) RunOrDie() {
	if err := s.router.Run(":" + s.port); err != nil {
		panic(err)
	}
}
