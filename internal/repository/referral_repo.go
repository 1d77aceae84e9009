package repository

import (
	"context"

	"mining_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReferralRepository struct {
	db *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// CreateTx inserts a referral edge inside an existing database transaction
// so that a multi-level chain commits as a single unit.
func (r *ReferralRepository) CreateTx(ctx context.Context, dbTx pgx.Tx, ref *domain.Referral) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO referrals (referrer_id, referred_id, level, commission)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		ref.ReferrerID, ref.ReferredID, ref.Level, ref.Commission,
	).Scan(&ref.ID, &ref.CreatedAt)
}

// GetByReferrer returns all edges where the user is the referrer
func (r *ReferralRepository) GetByReferrer(ctx context.Context, userID int64) ([]*domain.Referral, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, referrer_id, referred_id, level, commission, created_at
		 FROM referrals WHERE referrer_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Referral
	for rows.Next() {
		var ref domain.Referral
		if err := rows.Scan(&ref.ID, &ref.ReferrerID, &ref.ReferredID, &ref.Level, &ref.Commission, &ref.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &ref)
	}
	return res, rows.Err()
}

// GetStats aggregates per-level referral counts for a referrer
func (r *ReferralRepository) GetStats(ctx context.Context, userID int64) (*domain.ReferralStats, error) {
	rows, err := r.db.Query(ctx,
		`SELECT level, COUNT(*) FROM referrals WHERE referrer_id = $1 GROUP BY level`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &domain.ReferralStats{}
	for rows.Next() {
		var level, count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, err
		}
		switch level {
		case 1:
			stats.Level1 = count
		case 2:
			stats.Level2 = count
		case 3:
			stats.Level3 = count
		}
	}
	return stats, rows.Err()
}
