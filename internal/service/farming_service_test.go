package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFarmingReward_TooEarly(t *testing.T) {
	now := time.Now()
	rate := decimal.RequireFromString("0.05")

	_, _, err := FarmingReward(now.Add(-30*time.Minute), now, rate)
	assert.ErrorIs(t, err, ErrClaimTooEarly)

	_, _, err = FarmingReward(now.Add(-time.Hour+time.Second), now, rate)
	assert.ErrorIs(t, err, ErrClaimTooEarly)
}

func TestFarmingReward_SingleHour(t *testing.T) {
	now := time.Now()
	rate := decimal.RequireFromString("0.05")

	reward, hours, err := FarmingReward(now.Add(-time.Hour), now, rate)
	require.NoError(t, err)
	assert.Equal(t, 1, hours)
	assert.True(t, reward.Equal(decimal.RequireFromString("0.05")), "got %s", reward)
}

func TestFarmingReward_PartialHoursFloor(t *testing.T) {
	now := time.Now()
	rate := decimal.RequireFromString("0.05")

	// 2h30m pays for 2 whole hours
	reward, hours, err := FarmingReward(now.Add(-150*time.Minute), now, rate)
	require.NoError(t, err)
	assert.Equal(t, 2, hours)
	assert.True(t, reward.Equal(decimal.RequireFromString("0.10")), "got %s", reward)
}

func TestFarmingReward_CapAt24Hours(t *testing.T) {
	now := time.Now()
	rate := decimal.RequireFromString("0.05")

	reward, hours, err := FarmingReward(now.Add(-30*time.Hour), now, rate)
	require.NoError(t, err)
	assert.Equal(t, 24, hours)
	assert.True(t, reward.Equal(decimal.RequireFromString("1.20")), "got %s", reward)

	// a week unclaimed pays the same as 24 hours
	rewardWeek, hoursWeek, err := FarmingReward(now.Add(-7*24*time.Hour), now, rate)
	require.NoError(t, err)
	assert.Equal(t, 24, hoursWeek)
	assert.True(t, rewardWeek.Equal(reward))
}

func TestFarmingReward_TinyRateRoundsToZero(t *testing.T) {
	now := time.Now()

	// 4 * 0.001 = 0.004 -> 0.00; a legal claim, just worth nothing
	reward, hours, err := FarmingReward(now.Add(-4*time.Hour), now, decimal.RequireFromString("0.001"))
	require.NoError(t, err)
	assert.Equal(t, 4, hours)
	assert.True(t, reward.IsZero(), "got %s", reward)
}

func TestFarmingReward_RoundsHalfUp(t *testing.T) {
	now := time.Now()

	// 3 * 0.0333 = 0.0999 -> 0.10
	reward, _, err := FarmingReward(now.Add(-3*time.Hour), now, decimal.RequireFromString("0.0333"))
	require.NoError(t, err)
	assert.True(t, reward.Equal(decimal.RequireFromString("0.10")), "got %s", reward)

	// 1 * 0.0250 -> 0.03 (half up)
	reward, _, err = FarmingReward(now.Add(-time.Hour), now, decimal.RequireFromString("0.025"))
	require.NoError(t, err)
	assert.True(t, reward.Equal(decimal.RequireFromString("0.03")), "got %s", reward)
}
