package service

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func TestFarmingRewardProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	properties.Property("reward is bounded by 24 hours of rate", prop.ForAll(
		func(minutes int, rateBps int) bool {
			rate := decimal.New(int64(rateBps), -4)
			reward, hours, err := FarmingReward(now.Add(-time.Duration(minutes)*time.Minute), now, rate)
			if err != nil {
				return false
			}
			maxReward := rate.Mul(decimal.NewFromInt(MaxFarmingHours)).Round(2)
			return hours >= 1 && hours <= MaxFarmingHours &&
				!reward.IsNegative() && reward.LessThanOrEqual(maxReward)
		},
		gen.IntRange(60, 7*24*60),
		gen.IntRange(1, 50000),
	))

	properties.Property("reward never decreases with more elapsed time", prop.ForAll(
		func(minutes int, extra int, rateBps int) bool {
			rate := decimal.New(int64(rateBps), -4)
			shorter, _, err1 := FarmingReward(now.Add(-time.Duration(minutes)*time.Minute), now, rate)
			longer, _, err2 := FarmingReward(now.Add(-time.Duration(minutes+extra)*time.Minute), now, rate)
			if err1 != nil || err2 != nil {
				return false
			}
			return longer.GreaterThanOrEqual(shorter)
		},
		gen.IntRange(60, 3*24*60),
		gen.IntRange(0, 24*60),
		gen.IntRange(1, 50000),
	))

	properties.Property("claims under an hour are always rejected", prop.ForAll(
		func(minutes int, rateBps int) bool {
			rate := decimal.New(int64(rateBps), -4)
			_, _, err := FarmingReward(now.Add(-time.Duration(minutes)*time.Minute), now, rate)
			return err == ErrClaimTooEarly
		},
		gen.IntRange(0, 59),
		gen.IntRange(1, 50000),
	))

	properties.TestingRun(t)
}
