package service

import (
	"context"
	"errors"
	"time"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// MaxFarmingHours caps how many hours a single claim can pay out for.
// Leaving a session unclaimed past the cap forfeits the excess.
const MaxFarmingHours = 24

// FarmingReward computes the payout for a claim at `now` against a session
// started at `lastClaim`. Claims under one hour are rejected; whole elapsed
// hours accrue up to MaxFarmingHours, each paying the hourly rate. The
// result is rounded to cents, half up.
func FarmingReward(lastClaim, now time.Time, rate decimal.Decimal) (decimal.Decimal, int, error) {
	elapsed := now.Sub(lastClaim)
	if elapsed < time.Hour {
		return decimal.Zero, 0, ErrClaimTooEarly
	}

	hours := int(elapsed / time.Hour)
	if hours > MaxFarmingHours {
		hours = MaxFarmingHours
	}

	reward := rate.Mul(decimal.NewFromInt(int64(hours))).Round(2)
	return reward, hours, nil
}

// FarmingService drives the start/claim state machine
type FarmingService struct {
	db       *pgxpool.Pool
	userRepo *repository.UserRepository
	rewards  *RewardService
	settings *SettingsService
}

func NewFarmingService(db *pgxpool.Pool, rewards *RewardService, settings *SettingsService) *FarmingService {
	return &FarmingService{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		rewards:  rewards,
		settings: settings,
	}
}

// Status returns the user's current farming state and, when a session is
// running, the reward accrued so far.
type FarmingStatus struct {
	Active       bool            `json:"active"`
	LastClaim    *time.Time      `json:"last_claim,omitempty"`
	MiningRate   decimal.Decimal `json:"mining_rate"`
	HoursElapsed int             `json:"hours_elapsed"`
	Accrued      decimal.Decimal `json:"accrued"`
	Claimable    bool            `json:"claimable"`
}

func (s *FarmingService) Status(ctx context.Context, userID int64) (*FarmingStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	status := &FarmingStatus{
		Active:     user.FarmingActive,
		LastClaim:  user.LastFarmingClaim,
		MiningRate: user.MiningRate,
		Accrued:    decimal.Zero,
	}
	if user.FarmingActive && user.LastFarmingClaim != nil {
		reward, hours, err := FarmingReward(*user.LastFarmingClaim, time.Now(), user.MiningRate)
		if err == nil {
			status.HoursElapsed = hours
			status.Accrued = reward
			status.Claimable = true
		}
	}
	return status, nil
}

// Start begins a farming session. The session anchors to the current time;
// starting while a session is already running is rejected rather than
// resetting the clock.
func (s *FarmingService) Start(ctx context.Context, userID int64) error {
	if err := s.settings.RequireEnabled(ctx, domain.SettingFarmingEnabled); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var active bool
	err = tx.QueryRow(ctx, `SELECT farming_active FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if active {
		return ErrFarmingActive
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET farming_active = true, last_farming_claim = now() WHERE id = $1`, userID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Claim settles a running session: pays out the accrued reward, records the
// ledger entry and deactivates farming, all in one transaction.
func (s *FarmingService) Claim(ctx context.Context, userID int64) (reward decimal.Decimal, newBalance decimal.Decimal, err error) {
	if err := s.settings.RequireEnabled(ctx, domain.SettingFarmingEnabled); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		active    bool
		lastClaim *time.Time
		rate      decimal.Decimal
		balance   decimal.Decimal
	)
	err = tx.QueryRow(ctx,
		`SELECT farming_active, last_farming_claim, mining_rate, balance FROM users WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&active, &lastClaim, &rate, &balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, decimal.Zero, err
	}
	if !active || lastClaim == nil {
		return decimal.Zero, decimal.Zero, ErrFarmingNotActive
	}

	reward, hours, err := FarmingReward(*lastClaim, time.Now(), rate)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	// Tiny rates can round a short session to zero cents. The session still
	// ends; there is just nothing to credit and no ledger entry to write.
	if reward.IsZero() {
		newBalance = balance
	} else {
		newBalance, err = s.rewards.CreditTx(ctx, tx, userID, reward, domain.TxTypeFarming,
			"Farming reward", map[string]any{"hours": hours})
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET farming_active = false, last_farming_claim = now() WHERE id = $1`, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	if err = tx.Commit(ctx); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return reward, newBalance, nil
}
