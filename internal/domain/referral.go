package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Referral is a directed edge from a referrer to a referred user, created
// once at registration time and immutable thereafter. Level 1 is the direct
// referrer, levels 2 and 3 are its ancestors.
type Referral struct {
	ID         int64           `db:"id" json:"id"`
	ReferrerID int64           `db:"referrer_id" json:"referrer_id"`
	ReferredID int64           `db:"referred_id" json:"referred_id"`
	Level      int             `db:"level" json:"level"`
	Commission decimal.Decimal `db:"commission" json:"commission"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// MaxReferralDepth caps how far up the ancestor chain edges are created
const MaxReferralDepth = 3

// ReferralCommission returns the fixed commission for a chain level
func ReferralCommission(level int) decimal.Decimal {
	switch level {
	case 1:
		return decimal.New(1000, -2) // 10.00
	case 2:
		return decimal.New(500, -2) // 5.00
	case 3:
		return decimal.New(200, -2) // 2.00
	default:
		return decimal.Zero
	}
}

// ReferralStats aggregates per-level referral counts for a referrer
type ReferralStats struct {
	Level1 int `json:"level1"`
	Level2 int `json:"level2"`
	Level3 int `json:"level3"`
}
