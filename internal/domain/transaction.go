package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType categorizes ledger entries
type TransactionType string

const (
	TxTypeFarming    TransactionType = "farming"
	TxTypeTask       TransactionType = "task"
	TxTypeBoost      TransactionType = "boost"
	TxTypeReferral   TransactionType = "referral"
	TxTypeDeposit    TransactionType = "deposit"
	TxTypeWithdrawal TransactionType = "withdrawal"
)

// TransactionStatus is the processing state of a ledger entry
type TransactionStatus string

const (
	TxStatusPending   TransactionStatus = "pending"
	TxStatusCompleted TransactionStatus = "completed"
	TxStatusFailed    TransactionStatus = "failed"
	TxStatusCancelled TransactionStatus = "cancelled"
)

// Transaction is an append-only ledger row. Every committed balance change
// is paired with exactly one completed row; deposits and withdrawals start
// as pending rows and change status when the external payment settles.
type Transaction struct {
	ID            int64             `db:"id" json:"id"`
	UserID        int64             `db:"user_id" json:"user_id"`
	Type          TransactionType   `db:"type" json:"type"`
	Amount        decimal.Decimal   `db:"amount" json:"amount"`
	Status        TransactionStatus `db:"status" json:"status"`
	TxHash        string            `db:"transaction_hash" json:"transaction_hash,omitempty"`
	WalletAddress string            `db:"wallet_address" json:"wallet_address,omitempty"`
	Description   string            `db:"description" json:"description,omitempty"`
	Metadata      map[string]any    `db:"metadata" json:"metadata,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

// IsDebit reports whether the entry removes funds from the balance
func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}
