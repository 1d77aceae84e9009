package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID               int64           `db:"id" json:"id"`
	TelegramID       string          `db:"telegram_id" json:"telegram_id"`
	TelegramUsername string          `db:"telegram_username" json:"telegram_username,omitempty"`
	TelegramName     string          `db:"telegram_name" json:"telegram_name,omitempty"`
	Balance          decimal.Decimal `db:"balance" json:"balance"`
	MiningRate       decimal.Decimal `db:"mining_rate" json:"mining_rate"`
	LastFarmingClaim *time.Time      `db:"last_farming_claim" json:"last_farming_claim,omitempty"`
	FarmingActive    bool            `db:"farming_active" json:"farming_active"`
	ReferralCode     string          `db:"referral_code" json:"referral_code"`
	ReferredBy       *int64          `db:"referred_by" json:"referred_by,omitempty"`
	TotalEarnings    decimal.Decimal `db:"total_earnings" json:"total_earnings"`
	ReferralEarnings decimal.Decimal `db:"referral_earnings" json:"referral_earnings"`
	Level            int             `db:"level" json:"level"`
	IsAdmin          bool            `db:"is_admin" json:"-"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}
