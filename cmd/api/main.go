package main

import (
	"context"
	"fmt"

	"cscx-api/config"
	"cscx-api/config/postgre"
	"cscx-api/internal/httpserver"
	"cscx-api/pkg/log"
	"cscx-api/pkg/openai"
	"cscx-api/pkg/scope"
)

// @Name CSCX API
// @description Customer-success alert scoring and bundling API.
// @version 1
// @host localhost:8080
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:    cfg.Logger.Level,
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
	})

	ctx := context.Background()

	srvCfg := httpserver.Config{
		Port:        cfg.Server.Port,
		Environment: cfg.Environment.Name,
		Mode:        cfg.Server.Mode,
	}

	// With no database configured the service runs fully in memory on
	// the demo customer roster.
	if cfg.Postgres.Enabled() {
		db, err := postgre.Connect(ctx, cfg.Postgres)
		if err != nil {
			logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
			return
		}
		defer postgre.Disconnect(ctx, db)
		logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s",
			cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
		srvCfg.DB = db
	} else {
		logger.Info(ctx, "No database configured; running on in-memory storage")
	}

	// With no JWT secret every request runs under the demo scope.
	if cfg.JWT.SecretKey != "" {
		srvCfg.JWTManager = scope.New(cfg.JWT.SecretKey)
	} else {
		srvCfg.DemoMode = true
		logger.Info(ctx, "No JWT secret configured; auth running in demo mode")
	}

	// Optional AI summarizer for bundle copy.
	aiCfg, err := openai.LoadConfig()
	if err != nil {
		logger.Error(ctx, "Failed to load OpenAI config: ", err)
		return
	}
	if aiCfg.Enabled() {
		srvCfg.AIClient = openai.New(logger, aiCfg)
		logger.Infof(ctx, "AI summarizer enabled (model=%s)", aiCfg.Model)
	} else {
		logger.Info(ctx, "No OpenAI key configured; using rule-based summaries")
	}

	httpServer, err := httpserver.New(logger, srvCfg)
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}
