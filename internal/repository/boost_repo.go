package repository

import (
	"context"

	"mining_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const boostColumns = `id, name, COALESCE(description, ''), cost, multiplier,
	COALESCE(icon_class, ''), is_active, created_at`

type BoostRepository struct {
	db *pgxpool.Pool
}

func NewBoostRepository(db *pgxpool.Pool) *BoostRepository {
	return &BoostRepository{db: db}
}

func scanBoost(row pgx.Row) (*domain.Boost, error) {
	var b domain.Boost
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Cost, &b.Multiplier,
		&b.IconClass, &b.IsActive, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetActive returns the purchasable boost catalog
func (r *BoostRepository) GetActive(ctx context.Context) ([]*domain.Boost, error) {
	rows, err := r.db.Query(ctx, `SELECT `+boostColumns+` FROM boosts WHERE is_active = true ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Boost
	for rows.Next() {
		b, err := scanBoost(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

func (r *BoostRepository) GetByID(ctx context.Context, id int64) (*domain.Boost, error) {
	row := r.db.QueryRow(ctx, `SELECT `+boostColumns+` FROM boosts WHERE id = $1`, id)
	return scanBoost(row)
}

func (r *BoostRepository) Create(ctx context.Context, b *domain.Boost) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO boosts (name, description, cost, multiplier, icon_class, is_active)
		 VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), $6)
		 RETURNING id, created_at`,
		b.Name, b.Description, b.Cost, b.Multiplier, b.IconClass, b.IsActive,
	).Scan(&b.ID, &b.CreatedAt)
}

// Deactivate soft-deletes a boost from the catalog
func (r *BoostRepository) Deactivate(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE boosts SET is_active = false WHERE id = $1`, id)
	return err
}

// GetUserBoosts returns all ownership rows for a user
func (r *BoostRepository) GetUserBoosts(ctx context.Context, userID int64) ([]*domain.UserBoost, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, boost_id, level, purchased_at
		 FROM user_boosts WHERE user_id = $1 ORDER BY purchased_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.UserBoost
	for rows.Next() {
		var ub domain.UserBoost
		if err := rows.Scan(&ub.ID, &ub.UserID, &ub.BoostID, &ub.Level, &ub.PurchasedAt); err != nil {
			return nil, err
		}
		res = append(res, &ub)
	}
	return res, rows.Err()
}
