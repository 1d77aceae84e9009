package service

import (
	"context"
	"os"
	"testing"
	"time"

	"mining_webapp/internal/db"
	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests run against a real database. They are skipped unless
// DATABASE_URL is set; migrations are applied on first connect.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}

	require.NoError(t, db.RunMigrations(dsn, "../../migrations"))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool, balance string) *domain.User {
	t.Helper()

	userRepo := repository.NewUserRepository(pool)
	u := &domain.User{
		TelegramID:   "it_" + time.Now().Format("20060102150405.000000000"),
		TelegramName: "Integration Tester",
		MiningRate:   decimal.RequireFromString("0.05"),
		ReferralCode: repository.GenerateReferralCode(),
	}
	require.NoError(t, userRepo.Create(context.Background(), u))

	if balance != "0" {
		_, err := pool.Exec(context.Background(),
			`UPDATE users SET balance = $1 WHERE id = $2`, decimal.RequireFromString(balance), u.ID)
		require.NoError(t, err)
	}
	return u
}

func TestFarmingClaimFlow(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	rewards := NewRewardService(pool)
	settings := NewSettingsService(pool)
	farming := NewFarmingService(pool, rewards, settings)
	user := createTestUser(t, pool, "0")

	require.NoError(t, farming.Start(ctx, user.ID))
	assert.ErrorIs(t, farming.Start(ctx, user.ID), ErrFarmingActive)

	// freshly started session is not claimable
	_, _, err := farming.Claim(ctx, user.ID)
	assert.ErrorIs(t, err, ErrClaimTooEarly)

	// backdate the session by two hours and claim
	_, err = pool.Exec(ctx,
		`UPDATE users SET last_farming_claim = now() - interval '2 hours' WHERE id = $1`, user.ID)
	require.NoError(t, err)

	reward, balance, err := farming.Claim(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, reward.Equal(decimal.RequireFromString("0.10")), "got %s", reward)
	assert.True(t, balance.Equal(reward))

	// session is over, a second claim fails
	_, _, err = farming.Claim(ctx, user.ID)
	assert.ErrorIs(t, err, ErrFarmingNotActive)

	// the claim left exactly one completed farming ledger row
	txRepo := repository.NewTransactionRepository(pool)
	txs, err := txRepo.GetByUserID(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TxTypeFarming, txs[0].Type)
	assert.Equal(t, domain.TxStatusCompleted, txs[0].Status)
	assert.True(t, txs[0].Amount.Equal(reward))
}

func TestFarmingClaimZeroRewardEndsSession(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	rewards := NewRewardService(pool)
	settings := NewSettingsService(pool)
	farming := NewFarmingService(pool, rewards, settings)
	user := createTestUser(t, pool, "0")

	// a rate so small that even a full day rounds to zero cents
	_, err := pool.Exec(ctx,
		`UPDATE users SET mining_rate = 0.001, farming_active = true,
		        last_farming_claim = now() - interval '4 hours'
		 WHERE id = $1`, user.ID)
	require.NoError(t, err)

	reward, balance, err := farming.Claim(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, reward.IsZero(), "got %s", reward)
	assert.True(t, balance.IsZero())

	// the session is over and can be restarted
	_, _, err = farming.Claim(ctx, user.ID)
	assert.ErrorIs(t, err, ErrFarmingNotActive)
	assert.NoError(t, farming.Start(ctx, user.ID))

	// nothing was credited and no ledger row was written
	txRepo := repository.NewTransactionRepository(pool)
	txs, err := txRepo.GetByUserID(ctx, user.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestTaskCompletionIsIdempotent(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	rewards := NewRewardService(pool)
	settings := NewSettingsService(pool)
	tasks := NewTaskService(pool, rewards, settings)
	user := createTestUser(t, pool, "0")

	taskRepo := repository.NewTaskRepository(pool)
	task := &domain.Task{
		Title:    "Integration task",
		Reward:   decimal.RequireFromString("2.50"),
		TaskType: "telegram",
		IsActive: true,
	}
	require.NoError(t, taskRepo.Create(ctx, task))

	balance, err := tasks.Complete(ctx, user.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(task.Reward))

	_, err = tasks.Complete(ctx, user.ID, task.ID)
	assert.ErrorIs(t, err, ErrTaskAlreadyCompleted)

	// balance unchanged by the failed repeat
	userRepo := repository.NewUserRepository(pool)
	u, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, u.Balance.Equal(task.Reward))
	assert.True(t, u.TotalEarnings.Equal(task.Reward))
}

func TestBoostPurchase(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	rewards := NewRewardService(pool)
	settings := NewSettingsService(pool)
	boosts := NewBoostService(pool, rewards, settings)
	user := createTestUser(t, pool, "15.00")

	boostRepo := repository.NewBoostRepository(pool)
	boost := &domain.Boost{
		Name:       "Integration boost",
		Cost:       decimal.RequireFromString("10.00"),
		Multiplier: decimal.RequireFromString("2.0"),
		IsActive:   true,
	}
	require.NoError(t, boostRepo.Create(ctx, boost))

	balance, err := boosts.Purchase(ctx, user.ID, boost.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("5.00")), "got %s", balance)

	// second purchase exceeds the remaining balance
	_, err = boosts.Purchase(ctx, user.ID, boost.ID)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	userRepo := repository.NewUserRepository(pool)
	u, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	// a debit never grows earnings or touches the mining rate
	assert.True(t, u.TotalEarnings.IsZero())
	assert.True(t, u.MiningRate.Equal(decimal.RequireFromString("0.05")), "got %s", u.MiningRate)

	// the debit is a negative completed boost ledger row
	txRepo := repository.NewTransactionRepository(pool)
	txs, err := txRepo.GetByUserID(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TxTypeBoost, txs[0].Type)
	assert.True(t, txs[0].IsDebit())
}

func TestReferralChainRegistration(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	settings := NewSettingsService(pool)
	referrals := NewReferralService(pool, settings)

	grandparent := createTestUser(t, pool, "0")
	parent := createTestUser(t, pool, "0")
	child := createTestUser(t, pool, "0")
	newcomer := createTestUser(t, pool, "0")

	_, err := pool.Exec(ctx, `UPDATE users SET referred_by = $1 WHERE id = $2`, grandparent.ID, parent.ID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `UPDATE users SET referred_by = $1 WHERE id = $2`, parent.ID, child.ID)
	require.NoError(t, err)

	require.NoError(t, referrals.RegisterChain(ctx, newcomer.ID, child.ID))

	refRepo := repository.NewReferralRepository(pool)

	edges, err := refRepo.GetByReferrer(ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, 1, edges[0].Level)
	assert.True(t, edges[0].Commission.Equal(decimal.RequireFromString("10.00")))

	edges, err = refRepo.GetByReferrer(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, 2, edges[0].Level)

	edges, err = refRepo.GetByReferrer(ctx, grandparent.ID)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, 3, edges[0].Level)

	// registration never moves money
	userRepo := repository.NewUserRepository(pool)
	u, err := userRepo.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.True(t, u.Balance.IsZero())

	overview, err := referrals.Overview(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, overview.Stats.Level1)
}

func TestFeatureFlagDisablesFarming(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	rewards := NewRewardService(pool)
	settings := NewSettingsService(pool)
	farming := NewFarmingService(pool, rewards, settings)
	user := createTestUser(t, pool, "0")

	_, err := settings.Set(ctx, domain.SettingFarmingEnabled, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = settings.Set(context.Background(), domain.SettingFarmingEnabled, true)
	})

	assert.ErrorIs(t, farming.Start(ctx, user.ID), ErrFeatureDisabled)

	_, err = settings.Set(ctx, domain.SettingFarmingEnabled, true)
	require.NoError(t, err)
	assert.NoError(t, farming.Start(ctx, user.ID))
}

func TestWithdrawalSettlement(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	admin := NewAdminService(pool)
	user := createTestUser(t, pool, "50.00")

	txRepo := repository.NewTransactionRepository(pool)
	pending := &domain.Transaction{
		UserID:        user.ID,
		Type:          domain.TxTypeWithdrawal,
		Amount:        decimal.RequireFromString("-20.00"),
		Status:        domain.TxStatusPending,
		WalletAddress: "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU",
	}
	require.NoError(t, txRepo.Create(ctx, pending))

	settled, err := admin.SettleTransaction(ctx, pending.ID, domain.TxStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusCompleted, settled.Status)

	userRepo := repository.NewUserRepository(pool)
	u, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, u.Balance.Equal(decimal.RequireFromString("30.00")), "got %s", u.Balance)

	// settled rows cannot change again
	_, err = admin.SettleTransaction(ctx, pending.ID, domain.TxStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestDepositSettlement(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	admin := NewAdminService(pool)
	user := createTestUser(t, pool, "0")

	txRepo := repository.NewTransactionRepository(pool)
	pending := &domain.Transaction{
		UserID: user.ID,
		Type:   domain.TxTypeDeposit,
		Amount: decimal.RequireFromString("25.00"),
		Status: domain.TxStatusPending,
	}
	require.NoError(t, txRepo.Create(ctx, pending))

	settled, err := admin.SettleTransaction(ctx, pending.ID, domain.TxStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusCompleted, settled.Status)

	// a deposit grows the balance but is not an earning
	userRepo := repository.NewUserRepository(pool)
	u, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, u.Balance.Equal(decimal.RequireFromString("25.00")), "got %s", u.Balance)
	assert.True(t, u.TotalEarnings.IsZero(), "got %s", u.TotalEarnings)
}
