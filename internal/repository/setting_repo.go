package repository

import (
	"context"
	"encoding/json"

	"mining_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingRepository struct {
	db *pgxpool.Pool
}

func NewSettingRepository(db *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var s domain.Setting
	err := r.db.QueryRow(ctx,
		`SELECT id, key, value, updated_at FROM settings WHERE key = $1`, key,
	).Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Set upserts a setting value
func (r *SettingRepository) Set(ctx context.Context, key string, value any) (*domain.Setting, error) {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	var s domain.Setting
	err = r.db.QueryRow(ctx,
		`INSERT INTO settings (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		 RETURNING id, key, value, updated_at`,
		key, valueJSON,
	).Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepository) GetAll(ctx context.Context) ([]*domain.Setting, error) {
	rows, err := r.db.Query(ctx, `SELECT id, key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Setting
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &s)
	}
	return res, rows.Err()
}
