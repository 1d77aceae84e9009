package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyCombo is the boost set of the day. Display-only: owning every boost
// in RequiredBoosts marks the combo as completed, no crediting happens here.
type DailyCombo struct {
	ID             int64           `db:"id" json:"id"`
	Date           string          `db:"date" json:"date"` // YYYY-MM-DD
	RequiredBoosts []int64         `db:"required_boosts" json:"required_boosts"`
	Reward         decimal.Decimal `db:"reward" json:"reward"`
	IsActive       bool            `db:"is_active" json:"is_active"`
}

type UserDailyCombo struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	ComboID     int64      `db:"combo_id" json:"combo_id"`
	Completed   bool       `db:"completed" json:"completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}
