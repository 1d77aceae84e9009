package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"mining_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, telegram_id, COALESCE(telegram_username, ''), COALESCE(telegram_name, ''),
	balance, mining_rate, last_farming_claim, farming_active, COALESCE(referral_code, ''),
	referred_by, total_earnings, referral_earnings, level, is_admin, created_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GenerateReferralCode generates a short uppercase referral code
func GenerateReferralCode() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return strings.ToUpper(hex.EncodeToString(buf))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.TelegramID,
		&u.TelegramUsername,
		&u.TelegramName,
		&u.Balance,
		&u.MiningRate,
		&u.LastFarmingClaim,
		&u.FarmingActive,
		&u.ReferralCode,
		&u.ReferredBy,
		&u.TotalEarnings,
		&u.ReferralEarnings,
		&u.Level,
		&u.IsAdmin,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
	return scanUser(row)
}

func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code)
	return scanUser(row)
}

// Create inserts a new user with zeroed balances and the given mining rate
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO users (telegram_id, telegram_username, telegram_name, mining_rate, referral_code, referred_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, balance, total_earnings, referral_earnings, level, created_at`,
		u.TelegramID, u.TelegramUsername, u.TelegramName, u.MiningRate, u.ReferralCode, u.ReferredBy,
	).Scan(&u.ID, &u.Balance, &u.TotalEarnings, &u.ReferralEarnings, &u.Level, &u.CreatedAt)
}

// GetAll returns all users, newest first (admin use)
func (r *UserRepository) GetAll(ctx context.Context, limit int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = 500
	}

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}
