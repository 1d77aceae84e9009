package service

import (
	"context"
	"errors"
	"time"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ComboService serves the boost set of the day. Completion is derived from
// boost ownership at read time; the combo never credits anything itself.
type ComboService struct {
	comboRepo *repository.ComboRepository
	boostRepo *repository.BoostRepository
}

func NewComboService(db *pgxpool.Pool) *ComboService {
	return &ComboService{
		comboRepo: repository.NewComboRepository(db),
		boostRepo: repository.NewBoostRepository(db),
	}
}

type ComboStatus struct {
	Combo     *domain.DailyCombo `json:"combo"`
	Owned     []int64            `json:"owned"`
	Completed bool               `json:"completed"`
}

// Today returns the active combo for the current UTC date with the user's
// progress, or nil when no combo is scheduled.
func (s *ComboService) Today(ctx context.Context, userID int64) (*ComboStatus, error) {
	date := time.Now().UTC().Format("2006-01-02")
	combo, err := s.comboRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	userBoosts, err := s.boostRepo.GetUserBoosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	ownedSet := make(map[int64]bool, len(userBoosts))
	for _, ub := range userBoosts {
		ownedSet[ub.BoostID] = true
	}

	status := &ComboStatus{Combo: combo, Completed: true}
	for _, boostID := range combo.RequiredBoosts {
		if ownedSet[boostID] {
			status.Owned = append(status.Owned, boostID)
		} else {
			status.Completed = false
		}
	}
	return status, nil
}

// ExpireOld retires combos from past days, for the scheduler
func (s *ComboService) ExpireOld(ctx context.Context) (int64, error) {
	date := time.Now().UTC().Format("2006-01-02")
	return s.comboRepo.DeactivateBefore(ctx, date)
}

// Create schedules a combo (admin use)
func (s *ComboService) Create(ctx context.Context, combo *domain.DailyCombo) error {
	return s.comboRepo.Create(ctx, combo)
}
