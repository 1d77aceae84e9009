package service

import (
	"context"
	"errors"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChainEdges walks the referrer's ancestor chain and returns the edges to
// create for a newly referred user, at most MaxReferralDepth deep. A
// missing ancestor ends the walk without error; the chain is simply
// shorter.
func ChainEdges(ctx context.Context, referredID, referrerID int64, getUser func(context.Context, int64) (*domain.User, error)) ([]*domain.Referral, error) {
	var edges []*domain.Referral

	current := referrerID
	for level := 1; level <= domain.MaxReferralDepth; level++ {
		ancestor, err := getUser(ctx, current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				break
			}
			return nil, err
		}

		edges = append(edges, &domain.Referral{
			ReferrerID: ancestor.ID,
			ReferredID: referredID,
			Level:      level,
			Commission: domain.ReferralCommission(level),
		})

		if ancestor.ReferredBy == nil {
			break
		}
		current = *ancestor.ReferredBy
	}
	return edges, nil
}

// ReferralService builds the referral chain at registration and serves
// referral statistics.
type ReferralService struct {
	db           *pgxpool.Pool
	userRepo     *repository.UserRepository
	referralRepo *repository.ReferralRepository
	settings     *SettingsService
}

func NewReferralService(db *pgxpool.Pool, settings *SettingsService) *ReferralService {
	return &ReferralService{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		referralRepo: repository.NewReferralRepository(db),
		settings:     settings,
	}
}

// RegisterChain creates the referral edges for a newly registered user,
// all in one transaction. Each edge records the commission its level is
// worth; paying commissions out is a separate concern and does not happen
// here. When referrals are disabled or the user referred themselves,
// nothing happens.
func (s *ReferralService) RegisterChain(ctx context.Context, referredID, referrerID int64) error {
	if referredID == referrerID {
		return nil
	}
	enabled, err := s.settings.Enabled(ctx, domain.SettingReferralsEnabled)
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	edges, err := ChainEdges(ctx, referredID, referrerID, s.userRepo.GetByID)
	if err != nil {
		return err
	}
	if len(edges) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, edge := range edges {
		if err := s.referralRepo.CreateTx(ctx, tx, edge); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ReferralOverview is the referral page payload: per-level counts,
// accumulated earnings and the user's own code.
type ReferralOverview struct {
	Stats    domain.ReferralStats `json:"stats"`
	Earnings string               `json:"earnings"`
	Code     string               `json:"code"`
}

func (s *ReferralService) Overview(ctx context.Context, userID int64) (*ReferralOverview, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	stats, err := s.referralRepo.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ReferralOverview{
		Stats:    *stats,
		Earnings: user.ReferralEarnings.StringFixed(2),
		Code:     user.ReferralCode,
	}, nil
}

// Referrals lists the user's direct and indirect referrals
func (s *ReferralService) Referrals(ctx context.Context, userID int64) ([]*domain.Referral, error) {
	return s.referralRepo.GetByReferrer(ctx, userID)
}
