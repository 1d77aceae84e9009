// Seeds a development database: demo tasks, the boost catalog, today's
// combo and a demo user, then prints a ready-to-use token.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"mining_webapp/internal/db"
	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"
	"mining_webapp/internal/service"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()

	taskRepo := repository.NewTaskRepository(pool)
	boostRepo := repository.NewBoostRepository(pool)
	comboRepo := repository.NewComboRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	if existing, err := taskRepo.GetActive(ctx); err == nil && len(existing) == 0 {
		for _, t := range demoTasks() {
			if err := taskRepo.Create(ctx, t); err != nil {
				log.Fatalf("seed task failed: %v", err)
			}
		}
		log.Println("tasks seeded")
	}

	boosts, err := boostRepo.GetActive(ctx)
	if err == nil && len(boosts) == 0 {
		for _, b := range demoBoosts() {
			if err := boostRepo.Create(ctx, b); err != nil {
				log.Fatalf("seed boost failed: %v", err)
			}
		}
		boosts, _ = boostRepo.GetActive(ctx)
		log.Println("boosts seeded")
	}

	today := time.Now().UTC().Format("2006-01-02")
	if _, err := comboRepo.GetByDate(ctx, today); err != nil && len(boosts) >= 3 {
		combo := &domain.DailyCombo{
			Date:           today,
			RequiredBoosts: []int64{boosts[0].ID, boosts[1].ID, boosts[2].ID},
			Reward:         decimal.NewFromInt(100),
			IsActive:       true,
		}
		if err := comboRepo.Create(ctx, combo); err != nil {
			log.Fatalf("seed combo failed: %v", err)
		}
		log.Println("daily combo seeded")
	}

	tgID := "demo_user_123456789"
	user, err := userRepo.GetByTelegramID(ctx, tgID)
	if err != nil {
		user = &domain.User{
			TelegramID:       tgID,
			TelegramUsername: "demouser",
			TelegramName:     "Demo User",
			MiningRate:       decimal.RequireFromString("0.12"),
			ReferralCode:     repository.GenerateReferralCode(),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("create demo user failed: %v", err)
		}
		log.Printf("demo user created id=%d\n", user.ID)
	} else {
		log.Printf("demo user already exists id=%d\n", user.ID)
	}

	service.InitJWT(os.Getenv("JWT_SECRET"))
	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}

func demoTasks() []*domain.Task {
	return []*domain.Task{
		{
			Title:       "Join @MinerUSdt_bot",
			Description: "Subscribe to our main Telegram channel",
			Reward:      decimal.RequireFromString("2.50"),
			TaskType:    "telegram",
			TaskURL:     "https://t.me/MinerUSdt_bot",
			IconClass:   "telegram",
			IsActive:    true,
		},
		{
			Title:       "Follow on Twitter",
			Description: "Follow our official Twitter account",
			Reward:      decimal.RequireFromString("1.50"),
			TaskType:    "twitter",
			TaskURL:     "https://twitter.com/minerusdt",
			IconClass:   "twitter",
			IsActive:    true,
		},
		{
			Title:       "Subscribe to YouTube",
			Description: "Subscribe to our YouTube channel",
			Reward:      decimal.RequireFromString("3.00"),
			TaskType:    "youtube",
			TaskURL:     "https://youtube.com/minerusdt",
			IconClass:   "youtube",
			IsActive:    true,
		},
		{
			Title:       "Join Mining Community",
			Description: "Join our mining discussion group",
			Reward:      decimal.RequireFromString("2.00"),
			TaskType:    "telegram",
			TaskURL:     "https://t.me/minerusdt_community",
			IconClass:   "telegram",
			IsActive:    true,
		},
		{
			Title:       "Daily Check-in",
			Description: "Complete your daily check-in",
			Reward:      decimal.RequireFromString("1.00"),
			TaskType:    "daily",
			IconClass:   "calendar",
			IsActive:    true,
		},
	}
}

func demoBoosts() []*domain.Boost {
	return []*domain.Boost{
		{
			Name:        "Mining Speed x2",
			Description: "Double your mining speed",
			Cost:        decimal.RequireFromString("10.00"),
			Multiplier:  decimal.RequireFromString("2.0"),
			IconClass:   "zap",
			IsActive:    true,
		},
		{
			Name:        "Mining Speed x3",
			Description: "Triple your mining speed",
			Cost:        decimal.RequireFromString("25.00"),
			Multiplier:  decimal.RequireFromString("3.0"),
			IconClass:   "zap",
			IsActive:    true,
		},
		{
			Name:        "Auto-Claim",
			Description: "Automatically claim mining rewards",
			Cost:        decimal.RequireFromString("50.00"),
			Multiplier:  decimal.RequireFromString("1.0"),
			IconClass:   "robot",
			IsActive:    true,
		},
		{
			Name:        "Energy Boost",
			Description: "Increase mining capacity by 50%",
			Cost:        decimal.RequireFromString("15.00"),
			Multiplier:  decimal.RequireFromString("1.5"),
			IconClass:   "battery",
			IsActive:    true,
		},
	}
}
