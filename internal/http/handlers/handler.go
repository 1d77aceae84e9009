package handlers

import (
	"errors"
	"net/http"

	"mining_webapp/internal/service"
	"mining_webapp/internal/solana"
	"mining_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// HandlerConfig holds the knobs handlers need beyond the services
type HandlerConfig struct {
	BotToken      string
	BotUsername   string
	AdminPassword string
	DevMode       bool
	BaseRate      decimal.Decimal
	MinWithdrawal decimal.Decimal
}

type Handler struct {
	DB       *pgxpool.Pool
	Cfg      HandlerConfig
	Auth     *service.AuthService
	Farming  *service.FarmingService
	Tasks    *service.TaskService
	Boosts   *service.BoostService
	Referral *service.ReferralService
	Wallet   *service.WalletService
	Combo    *service.ComboService
	Settings *service.SettingsService
	Admin    *service.AdminService
	Hub      *ws.Hub
}

func NewHandler(db *pgxpool.Pool, cfg HandlerConfig, sol *solana.Service, notifier service.Notifier, hub *ws.Hub) *Handler {
	rewards := service.NewRewardService(db)
	settings := service.NewSettingsService(db)
	referrals := service.NewReferralService(db, settings)

	return &Handler{
		DB:       db,
		Cfg:      cfg,
		Auth:     service.NewAuthService(db, referrals, notifier, cfg.BaseRate),
		Farming:  service.NewFarmingService(db, rewards, settings),
		Tasks:    service.NewTaskService(db, rewards, settings),
		Boosts:   service.NewBoostService(db, rewards, settings),
		Referral: referrals,
		Wallet:   service.NewWalletService(db, settings, sol, cfg.MinWithdrawal),
		Combo:    service.NewComboService(db),
		Settings: settings,
		Admin:    service.NewAdminService(db),
		Hub:      hub,
	}
}

func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// serviceError maps service sentinels to HTTP responses
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrBoostNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrFarmingActive),
		errors.Is(err, service.ErrFarmingNotActive),
		errors.Is(err, service.ErrClaimTooEarly),
		errors.Is(err, service.ErrTaskAlreadyCompleted),
		errors.Is(err, service.ErrInvalidStatusChange):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrBelowMinimum),
		errors.Is(err, service.ErrInvalidAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrFeatureDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
