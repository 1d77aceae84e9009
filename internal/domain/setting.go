package domain

import (
	"encoding/json"
	"time"
)

// Setting is a flat key/value flag consulted before state transitions
type Setting struct {
	ID        int64           `db:"id" json:"id"`
	Key       string          `db:"key" json:"key"`
	Value     json.RawMessage `db:"value" json:"value"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Feature flag keys
const (
	SettingFarmingEnabled     = "farming_enabled"
	SettingTasksEnabled       = "tasks_enabled"
	SettingBoostsEnabled      = "boosts_enabled"
	SettingReferralsEnabled   = "referrals_enabled"
	SettingDepositsEnabled    = "deposits_enabled"
	SettingWithdrawalsEnabled = "withdrawals_enabled"
)
