package http

import (
	"os"
	"strings"
	"time"

	"mining_webapp/internal/config"
	"mining_webapp/internal/http/handlers"
	"mining_webapp/internal/http/middleware"
	"mining_webapp/internal/service"
	"mining_webapp/internal/solana"
	"mining_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the full API surface and returns the handler so the
// entrypoint can share services with the bot and the scheduler.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, notifier service.Notifier, version string) *handlers.Handler {
	hub := ws.NewHub()
	sol := solana.NewService(cfg.DepositWallet)

	h := handlers.NewHandler(db, handlers.HandlerConfig{
		BotToken:      cfg.BotToken,
		BotUsername:   cfg.BotUsername,
		AdminPassword: cfg.AdminPassword,
		DevMode:       strings.EqualFold(os.Getenv("DEV_MODE"), "true"),
		BaseRate:      cfg.BaseMiningRate,
		MinWithdrawal: cfg.MinWithdrawal,
	}, sol, notifier, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	r.Use(middleware.Metrics())

	// Health checks and metrics (no rate limiting)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second

	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))

	// Auth gets a tighter window than the rest of the API
	api.POST("/auth/telegram", middleware.RedisRateLimit(10, time.Minute), h.TelegramAuth)

	api.GET("/me", middleware.JWT(), h.Me)
	api.GET("/transactions", middleware.JWT(), h.Transactions)

	farming := api.Group("/farming", middleware.JWT())
	{
		farming.GET("/status", h.FarmingStatus)
		farming.POST("/start", h.FarmingStart)
		farming.POST("/claim", h.FarmingClaim)
	}

	tasks := api.Group("/tasks", middleware.JWT())
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("/:id/complete", h.CompleteTask)
	}

	boosts := api.Group("/boosts", middleware.JWT())
	{
		boosts.GET("", h.ListBoosts)
		boosts.POST("/:id/purchase", h.PurchaseBoost)
	}

	referral := api.Group("/referral", middleware.JWT())
	{
		referral.GET("/stats", h.ReferralStats)
		referral.GET("/link", h.ReferralLink)
		referral.GET("/list", h.ReferralList)
	}

	api.GET("/combo/daily", middleware.JWT(), h.DailyCombo)

	wallet := api.Group("/wallet", middleware.JWT())
	{
		wallet.POST("/deposit", h.Deposit)
		wallet.POST("/withdraw", h.Withdraw)
	}

	// Admin surface
	admin := api.Group("/admin")
	admin.POST("/login", middleware.RedisRateLimit(5, time.Minute), h.AdminLogin)

	adminAuth := admin.Group("", middleware.AdminJWT())
	{
		adminAuth.GET("/stats", h.AdminStats)
		adminAuth.GET("/users", h.AdminUsers)
		adminAuth.GET("/transactions", h.AdminTransactions)
		adminAuth.POST("/transactions/:id/settle", h.AdminSettleTransaction)

		adminAuth.POST("/tasks", h.AdminCreateTask)
		adminAuth.PUT("/tasks/:id", h.AdminUpdateTask)
		adminAuth.DELETE("/tasks/:id", h.AdminDeleteTask)

		adminAuth.POST("/boosts", h.AdminCreateBoost)
		adminAuth.DELETE("/boosts/:id", h.AdminDeleteBoost)

		adminAuth.GET("/settings", h.AdminSettings)
		adminAuth.PUT("/settings/:key", h.AdminSetSetting)
	}

	// WebSocket for live balance updates
	r.GET("/ws", h.WS)

	return h
}
