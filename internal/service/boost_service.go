package service

import (
	"context"
	"errors"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BoostService lists the boost catalog and handles purchases
type BoostService struct {
	db        *pgxpool.Pool
	boostRepo *repository.BoostRepository
	rewards   *RewardService
	settings  *SettingsService
}

func NewBoostService(db *pgxpool.Pool, rewards *RewardService, settings *SettingsService) *BoostService {
	return &BoostService{
		db:        db,
		boostRepo: repository.NewBoostRepository(db),
		rewards:   rewards,
		settings:  settings,
	}
}

// List returns the catalog annotated with the user's ownership state
func (s *BoostService) List(ctx context.Context, userID int64) ([]*domain.BoostWithStatus, error) {
	boosts, err := s.boostRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	userBoosts, err := s.boostRepo.GetUserBoosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	owned := make(map[int64]int, len(userBoosts))
	for _, ub := range userBoosts {
		if ub.Level > owned[ub.BoostID] {
			owned[ub.BoostID] = ub.Level
		}
	}

	res := make([]*domain.BoostWithStatus, 0, len(boosts))
	for _, b := range boosts {
		bs := &domain.BoostWithStatus{Boost: *b}
		if level, ok := owned[b.ID]; ok {
			bs.Owned = true
			bs.Level = level
		}
		res = append(res, bs)
	}
	return res, nil
}

// Purchase debits the boost cost and records ownership in one
// transaction. Buying the same boost again stacks: the level goes up with
// each purchase. What a boost does to the economy is read from the
// ownership rows (daily combo, display); the mining rate itself is not
// touched here.
func (s *BoostService) Purchase(ctx context.Context, userID, boostID int64) (newBalance decimal.Decimal, err error) {
	if err := s.settings.RequireEnabled(ctx, domain.SettingBoostsEnabled); err != nil {
		return decimal.Zero, err
	}

	boost, err := s.boostRepo.GetByID(ctx, boostID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrBoostNotFound
		}
		return decimal.Zero, err
	}
	if !boost.IsActive {
		return decimal.Zero, ErrBoostNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Debit; CreditTx locks the user row and checks the balance
	newBalance, err = s.rewards.CreditTx(ctx, tx, userID, boost.Cost.Neg(), domain.TxTypeBoost,
		"Boost purchase: "+boost.Name, map[string]any{"boost_id": boostID})
	if err != nil {
		return decimal.Zero, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO user_boosts (user_id, boost_id, level)
		 VALUES ($1, $2, COALESCE((SELECT MAX(level) FROM user_boosts WHERE user_id = $1 AND boost_id = $2), 0) + 1)`,
		userID, boostID,
	)
	if err != nil {
		return decimal.Zero, err
	}

	if err = tx.Commit(ctx); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}
