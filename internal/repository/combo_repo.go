package repository

import (
	"context"
	"encoding/json"

	"mining_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ComboRepository struct {
	db *pgxpool.Pool
}

func NewComboRepository(db *pgxpool.Pool) *ComboRepository {
	return &ComboRepository{db: db}
}

// GetByDate returns the active combo for a YYYY-MM-DD date, if any
func (r *ComboRepository) GetByDate(ctx context.Context, date string) (*domain.DailyCombo, error) {
	var (
		combo      domain.DailyCombo
		boostsJSON []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, date, required_boosts, reward, is_active
		 FROM daily_combo WHERE date = $1 AND is_active = true`, date,
	).Scan(&combo.ID, &combo.Date, &boostsJSON, &combo.Reward, &combo.IsActive)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(boostsJSON, &combo.RequiredBoosts); err != nil {
		return nil, err
	}
	return &combo, nil
}

func (r *ComboRepository) Create(ctx context.Context, combo *domain.DailyCombo) error {
	boostsJSON, err := json.Marshal(combo.RequiredBoosts)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO daily_combo (date, required_boosts, reward, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		combo.Date, boostsJSON, combo.Reward, combo.IsActive,
	).Scan(&combo.ID)
}

// DeactivateBefore retires combos from past days
func (r *ComboRepository) DeactivateBefore(ctx context.Context, date string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE daily_combo SET is_active = false WHERE date < $1 AND is_active = true`, date)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// GetUserCombo returns the user's completion row for a combo, if present
func (r *ComboRepository) GetUserCombo(ctx context.Context, userID, comboID int64) (*domain.UserDailyCombo, error) {
	var uc domain.UserDailyCombo
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, combo_id, completed, completed_at
		 FROM user_daily_combo WHERE user_id = $1 AND combo_id = $2`,
		userID, comboID,
	).Scan(&uc.ID, &uc.UserID, &uc.ComboID, &uc.Completed, &uc.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &uc, nil
}
