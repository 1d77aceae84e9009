package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mining_webapp/internal/bot"
	"mining_webapp/internal/config"
	"mining_webapp/internal/db"
	httpServer "mining_webapp/internal/http"
	"mining_webapp/internal/http/middleware"
	"mining_webapp/internal/jobs"
	"mining_webapp/internal/logger"
	"mining_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")

	cfg := config.Load()
	service.InitJWT(cfg.JWTSecret)

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := db.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		logger.Fatal("migrations failed", "error", err)
	}

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	r := gin.Default()

	// CORS for production (frontend on a different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	var notifier service.Notifier = service.NopNotifier{}
	var tgBot *bot.Bot
	if cfg.BotEnabled {
		var err error
		tgBot, err = bot.New(cfg.BotToken, cfg.WebAppURL)
		if err != nil {
			logger.Fatal("bot init failed", "error", err)
		}
		notifier = tgBot
		go tgBot.Start()
	}

	httpServer.RegisterRoutes(r, dbPool, cfg, notifier, version)

	scheduler := jobs.NewScheduler(dbPool)
	if err := scheduler.Start(); err != nil {
		logger.Fatal("scheduler start failed", "error", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	scheduler.Stop()
	if tgBot != nil {
		tgBot.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
