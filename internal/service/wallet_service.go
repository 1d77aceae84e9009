package service

import (
	"context"
	"errors"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"
	"mining_webapp/internal/solana"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// WalletService opens pending deposit and withdrawal transactions. Pending
// rows never touch the balance; an admin settles them after verifying the
// on-chain transfer.
type WalletService struct {
	db              *pgxpool.Pool
	userRepo        *repository.UserRepository
	transactionRepo *repository.TransactionRepository
	settings        *SettingsService
	sol             *solana.Service
	minWithdrawal   decimal.Decimal
}

func NewWalletService(db *pgxpool.Pool, settings *SettingsService, sol *solana.Service, minWithdrawal decimal.Decimal) *WalletService {
	return &WalletService{
		db:              db,
		userRepo:        repository.NewUserRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		settings:        settings,
		sol:             sol,
		minWithdrawal:   minWithdrawal,
	}
}

// InitiateDeposit opens a pending deposit for a SOL amount. The row carries
// a reference code the user puts in the transfer memo so the admin can
// match it. The amount is stored in USD at the fixed conversion rate.
func (s *WalletService) InitiateDeposit(ctx context.Context, userID int64, solAmount decimal.Decimal) (*domain.Transaction, error) {
	if err := s.settings.RequireEnabled(ctx, domain.SettingDepositsEnabled); err != nil {
		return nil, err
	}
	if !solAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if solAmount.LessThan(solana.MinimumDeposit()) {
		return nil, ErrBelowMinimum
	}

	usdAmount := solAmount.Mul(solana.ConversionRate()).Round(2)
	tx := &domain.Transaction{
		UserID:        userID,
		Type:          domain.TxTypeDeposit,
		Amount:        usdAmount,
		Status:        domain.TxStatusPending,
		WalletAddress: s.sol.DepositWallet(),
		Description:   "Solana deposit",
		Metadata: map[string]any{
			"sol_amount": solAmount.String(),
			"reference":  uuid.NewString(),
		},
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// InitiateWithdrawal opens a pending withdrawal. The balance is checked up
// front for a fast answer but only debited when the admin settles the row,
// where it is checked again under a lock.
func (s *WalletService) InitiateWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal, address string) (*domain.Transaction, error) {
	if err := s.settings.RequireEnabled(ctx, domain.SettingWithdrawalsEnabled); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if amount.LessThan(s.minWithdrawal) {
		return nil, ErrBelowMinimum
	}
	if !solana.ValidateAddress(address) {
		return nil, ErrInvalidAddress
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Balance.LessThan(amount) {
		return nil, ErrInsufficientBalance
	}

	tx := &domain.Transaction{
		UserID:        userID,
		Type:          domain.TxTypeWithdrawal,
		Amount:        amount.Neg(),
		Status:        domain.TxStatusPending,
		WalletAddress: address,
		Description:   "Solana withdrawal",
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// History returns the user's recent ledger entries
func (s *WalletService) History(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUserID(ctx, userID, limit)
}
