package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ludo_broker/internal/broker"
	"ludo_broker/internal/config"
	"ludo_broker/internal/db"
	httpServer "ludo_broker/internal/http"
	"ludo_broker/internal/http/handlers"
	"ludo_broker/internal/logger"
	"ludo_broker/internal/repository"
	"ludo_broker/internal/store"
	"ludo_broker/internal/ws"

	"github.com/gin-gonic/gin"
)

// Version is set at build time
var Version = "dev"

func main() {
	cfg := config.Load()

	jsonLogs := os.Getenv("LOG_FORMAT") == "json"
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init(logLevel, jsonLogs)
	log := logger.Get()

	// snapshot store: redis when configured, otherwise the matches file
	var snapshots store.SnapshotStore
	if cfg.RedisAddr != "" {
		rs := store.NewRedisStore(cfg.RedisAddr, cfg.RedisKey)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rs.Ping(ctx); err != nil {
			logger.Fatal("redis unreachable", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()
		snapshots = rs
		log.Info("using redis snapshot store", "addr", cfg.RedisAddr, "key", cfg.RedisKey)
	} else {
		snapshots = store.NewFileStore(cfg.MatchesFile)
		log.Info("using file snapshot store", "path", cfg.MatchesFile)
	}

	hub := ws.NewHub()
	svc := broker.NewService(hub, snapshots)

	// match history is optional: only wired when a database is configured
	var archive *repository.MatchArchiveRepository
	if cfg.DatabaseURL != "" {
		dbPool := db.Connect(cfg.DatabaseURL)
		defer dbPool.Close()
		archive = repository.NewMatchArchiveRepository(dbPool)
		svc.SetArchive(archive)
		log.Info("match archive enabled")
	} else {
		log.Warn("DATABASE_URL not set - match history disabled")
	}

	svc.Start(context.Background())

	r := gin.Default()

	// CORS so browser clients on other origins can reach the broker
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	h := handlers.NewHandler(hub, svc, archive, Version, cfg.AllowedOrigin)
	httpServer.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		log.Info("server started", "port", cfg.AppPort, "version", Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	// flush pending snapshot writes before exiting
	svc.Stop()

	log.Info("server exited")
}
