package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/cardsheet/internal/api"
	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/generator"
	"github.com/youruser/cardsheet/internal/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("CARDSHEET_CONFIG"), "config file (defaults apply when empty or missing)")
	flag.Parse()

	if _, err := config.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	gen, err := generator.New(cfg, logger)
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(logger))
	api.RegisterRoutes(r, api.NewHandler(gen, logger, cfg.Server.MaxConcurrent, cfg.Server.MaxUploadMB))

	logger.Info("Starting server", zap.String("addr", "http://localhost:"+cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
