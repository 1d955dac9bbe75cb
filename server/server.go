// Package server надає HTTP режим перевірки: той самий прогін, що й CLI,
// але за POST запитом, з історією прогонів у SQLite.
package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"zbdcheck/database"
	"zbdcheck/internal/config"
)

// Logger структурований логер сервера (JSON, як і в інших сервісах).
var Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// Server HTTP сервер перевірки табелів.
type Server struct {
	cfg    *config.ServerConfig
	runsDB *database.RunsDB // nil — історія вимкнена
	engine *gin.Engine
}

// New створює сервер з усіма маршрутами. runsDB може бути nil.
func New(cfg *config.ServerConfig, runsDB *database.RunsDB) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:    cfg,
		runsDB: runsDB,
		engine: gin.New(),
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(RequestIDMiddleware())

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")
	{
		checkLimiter := rate.NewLimiter(rate.Limit(s.cfg.CheckRPS), s.cfg.CheckBurst)
		api.POST("/check", RateLimitMiddleware(checkLimiter), s.handleCheck)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id/mismatches", s.handleRunMismatches)
	}
}

// Engine повертає gin.Engine (для тестів через httptest).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run запускає сервер на налаштованому порту.
func (s *Server) Run() error {
	Logger.Info("Запуск HTTP сервера перевірки табелів", "port", s.cfg.Port)
	return s.engine.Run(":" + s.cfg.Port)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
