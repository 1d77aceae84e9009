package config

import (
	"os"
	"strconv"
	"strings"

	"mining_webapp/internal/logger"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppPort       string
	DatabaseURL   string
	BotToken      string
	BotUsername   string
	WebAppURL     string
	JWTSecret     string
	AdminPassword string
	BotEnabled    bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DepositWallet string

	// Mining economy defaults
	BaseMiningRate decimal.Decimal
	MinWithdrawal  decimal.Decimal

	APIRateLimit  int
	APIRateWindow int
}

// Load reads configuration from the environment (.env is optional)
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		logger.Fatal("ADMIN_PASSWORD is not set")
	}

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		logger.Fatal("BOT_TOKEN is not set")
	}

	botUsername := os.Getenv("BOT_USERNAME")
	if botUsername == "" {
		botUsername = "MinerUSdt_bot"
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	baseRate := decimal.RequireFromString("0.05")
	if v := os.Getenv("BASE_MINING_RATE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.IsPositive() {
			baseRate = d
		}
	}

	minWithdrawal := decimal.NewFromInt(10)
	if v := os.Getenv("MIN_WITHDRAWAL"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.IsPositive() {
			minWithdrawal = d
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := 60
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = n
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:        port,
		DatabaseURL:    dbURL,
		BotToken:       botToken,
		BotUsername:    botUsername,
		WebAppURL:      os.Getenv("WEBAPP_URL"),
		JWTSecret:      jwtSecret,
		AdminPassword:  adminPassword,
		BotEnabled:     strings.EqualFold(os.Getenv("BOT_ENABLED"), "true"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		DepositWallet:  os.Getenv("DEPOSIT_WALLET"),
		BaseMiningRate: baseRate,
		MinWithdrawal:  minWithdrawal,
		APIRateLimit:   apiRateLimit,
		APIRateWindow:  apiRateWindow,
	}
}
