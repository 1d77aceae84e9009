package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Boost struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description,omitempty"`
	Cost        decimal.Decimal `db:"cost" json:"cost"`
	Multiplier  decimal.Decimal `db:"multiplier" json:"multiplier"`
	IconClass   string          `db:"icon_class" json:"icon_class,omitempty"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// UserBoost records boost ownership. Re-purchasing the same boost is
// allowed and simply adds another row.
type UserBoost struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	BoostID     int64     `db:"boost_id" json:"boost_id"`
	Level       int       `db:"level" json:"level"`
	PurchasedAt time.Time `db:"purchased_at" json:"purchased_at"`
}

// BoostWithStatus is a boost joined with the caller's ownership state
type BoostWithStatus struct {
	Boost
	Owned bool `json:"owned"`
	Level int  `json:"level"`
}
