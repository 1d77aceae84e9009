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

// AdminService backs the admin surface: aggregate stats, user and ledger
// listings, catalog management and settlement of pending transactions.
type AdminService struct {
	db              *pgxpool.Pool
	userRepo        *repository.UserRepository
	transactionRepo *repository.TransactionRepository
	taskRepo        *repository.TaskRepository
	boostRepo       *repository.BoostRepository
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{
		db:              db,
		userRepo:        repository.NewUserRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		taskRepo:        repository.NewTaskRepository(db),
		boostRepo:       repository.NewBoostRepository(db),
	}
}

type AdminStats struct {
	TotalUsers         int64           `json:"total_users"`
	ActiveFarmers      int64           `json:"active_farmers"`
	TotalBalance       decimal.Decimal `json:"total_balance"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	PendingDeposits    int64           `json:"pending_deposits"`
	PendingWithdrawals int64           `json:"pending_withdrawals"`
}

func (s *AdminService) Stats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE farming_active),
		        COALESCE(SUM(balance), 0),
		        COALESCE(SUM(total_earnings), 0)
		 FROM users`,
	).Scan(&stats.TotalUsers, &stats.ActiveFarmers, &stats.TotalBalance, &stats.TotalEarnings)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE type = 'deposit'),
		        COUNT(*) FILTER (WHERE type = 'withdrawal')
		 FROM transactions WHERE status = 'pending'`,
	).Scan(&stats.PendingDeposits, &stats.PendingWithdrawals)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *AdminService) Users(ctx context.Context, limit int) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx, limit)
}

func (s *AdminService) Transactions(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetAll(ctx, limit)
}

// SettleTransaction moves a pending deposit or withdrawal to a terminal
// status. Completing a deposit credits the user; completing a withdrawal
// debits, with the balance re-checked under a row lock. Status change and
// balance change commit together.
func (s *AdminService) SettleTransaction(ctx context.Context, txID int64, target domain.TransactionStatus) (*domain.Transaction, error) {
	switch target {
	case domain.TxStatusCompleted, domain.TxStatusFailed, domain.TxStatusCancelled:
	default:
		return nil, ErrInvalidStatusChange
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		userID int64
		txType domain.TransactionType
		amount decimal.Decimal
		status domain.TransactionStatus
	)
	err = tx.QueryRow(ctx,
		`SELECT user_id, type, amount, status FROM transactions WHERE id = $1 FOR UPDATE`, txID,
	).Scan(&userID, &txType, &amount, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	if status != domain.TxStatusPending {
		return nil, ErrInvalidStatusChange
	}

	if target == domain.TxStatusCompleted {
		var balance decimal.Decimal
		err = tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
		if err != nil {
			return nil, err
		}

		switch txType {
		case domain.TxTypeDeposit:
			// A deposit is the user's own money, not earnings
			_, err = tx.Exec(ctx,
				`UPDATE users SET balance = balance + $1 WHERE id = $2`,
				amount, userID)
		case domain.TxTypeWithdrawal:
			// Withdrawal amounts are stored negative
			if balance.LessThan(amount.Neg()) {
				return nil, ErrInsufficientBalance
			}
			_, err = tx.Exec(ctx, `UPDATE users SET balance = balance + $1 WHERE id = $2`, amount, userID)
		default:
			return nil, ErrInvalidStatusChange
		}
		if err != nil {
			return nil, err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE transactions SET status = $1, updated_at = now() WHERE id = $2`, target, txID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByID(ctx, txID)
}

func (s *AdminService) CreateTask(ctx context.Context, t *domain.Task) error {
	return s.taskRepo.Create(ctx, t)
}

func (s *AdminService) UpdateTask(ctx context.Context, t *domain.Task) error {
	return s.taskRepo.Update(ctx, t)
}

func (s *AdminService) DeactivateTask(ctx context.Context, id int64) error {
	return s.taskRepo.Deactivate(ctx, id)
}

func (s *AdminService) CreateBoost(ctx context.Context, b *domain.Boost) error {
	return s.boostRepo.Create(ctx, b)
}

func (s *AdminService) DeactivateBoost(ctx context.Context, id int64) error {
	return s.boostRepo.Deactivate(ctx, id)
}
