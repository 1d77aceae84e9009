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

// RewardService is the single place where balances change. Every mutation
// locks the user row, applies the delta and writes the paired ledger entry
// in one database transaction.
type RewardService struct {
	db              *pgxpool.Pool
	transactionRepo *repository.TransactionRepository
}

func NewRewardService(db *pgxpool.Pool) *RewardService {
	return &RewardService{
		db:              db,
		transactionRepo: repository.NewTransactionRepository(db),
	}
}

// Credit applies a signed amount to the user's balance and records a
// completed ledger row, in one transaction. Positive amounts also grow
// total_earnings (and referral_earnings for referral commissions);
// negative amounts are checked against the current balance.
func (s *RewardService) Credit(ctx context.Context, userID int64, amount decimal.Decimal, txType domain.TransactionType, description string, meta map[string]any) (newBalance decimal.Decimal, err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	newBalance, err = s.CreditTx(ctx, tx, userID, amount, txType, description, meta)
	if err != nil {
		return decimal.Zero, err
	}

	if err = tx.Commit(ctx); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// CreditTx is Credit running inside an existing database transaction, for
// flows that pair the balance change with other writes (task completion
// rows, referral edges, boost ownership).
func (s *RewardService) CreditTx(ctx context.Context, tx pgx.Tx, userID int64, amount decimal.Decimal, txType domain.TransactionType, description string, meta map[string]any) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Zero, ErrInvalidAmount
	}

	// Lock the user row for the duration of the transaction
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, err
	}

	if amount.IsNegative() && balance.LessThan(amount.Neg()) {
		return decimal.Zero, ErrInsufficientBalance
	}

	var newBalance decimal.Decimal
	if amount.IsPositive() {
		if txType == domain.TxTypeReferral {
			err = tx.QueryRow(ctx,
				`UPDATE users
				 SET balance = balance + $1, total_earnings = total_earnings + $1,
				     referral_earnings = referral_earnings + $1
				 WHERE id = $2 RETURNING balance`,
				amount, userID,
			).Scan(&newBalance)
		} else {
			err = tx.QueryRow(ctx,
				`UPDATE users
				 SET balance = balance + $1, total_earnings = total_earnings + $1
				 WHERE id = $2 RETURNING balance`,
				amount, userID,
			).Scan(&newBalance)
		}
	} else {
		err = tx.QueryRow(ctx,
			`UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
			amount, userID,
		).Scan(&newBalance)
	}
	if err != nil {
		return decimal.Zero, err
	}

	entry := &domain.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Status:      domain.TxStatusCompleted,
		Description: description,
		Metadata:    meta,
	}
	if err = s.transactionRepo.CreateTx(ctx, tx, entry); err != nil {
		return decimal.Zero, err
	}

	return newBalance, nil
}
