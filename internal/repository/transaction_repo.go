package repository

import (
	"context"
	"encoding/json"

	"mining_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const txColumns = `id, user_id, type, amount, status, COALESCE(transaction_hash, ''),
	COALESCE(wallet_address, ''), COALESCE(description, ''), metadata, created_at, updated_at`

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new ledger row
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	metaJSON, err := json.Marshal(tx.Metadata)
	if err != nil {
		metaJSON = []byte("{}")
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, amount, status, transaction_hash, wallet_address, description, metadata)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8)
		 RETURNING id, created_at, updated_at`,
		tx.UserID, tx.Type, tx.Amount, tx.Status, tx.TxHash, tx.WalletAddress, tx.Description, metaJSON,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
}

// CreateTx inserts a ledger row inside an existing database transaction,
// so the row commits together with the balance mutation it describes.
func (r *TransactionRepository) CreateTx(ctx context.Context, dbTx pgx.Tx, tx *domain.Transaction) error {
	metaJSON, err := json.Marshal(tx.Metadata)
	if err != nil {
		metaJSON = []byte("{}")
	}

	return dbTx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, amount, status, transaction_hash, wallet_address, description, metadata)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8)
		 RETURNING id, created_at, updated_at`,
		tx.UserID, tx.Type, tx.Amount, tx.Status, tx.TxHash, tx.WalletAddress, tx.Description, metaJSON,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
}

// GetByID returns a single ledger row
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `SELECT `+txColumns+` FROM transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

// GetByUserID returns recent transactions for a user, newest first
func (r *TransactionRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// GetAll returns recent transactions across all users (admin use)
func (r *TransactionRepository) GetAll(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 500
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+txColumns+` FROM transactions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// CancelStalePending marks pending deposit/withdrawal rows older than the
// cutoff as cancelled and returns how many rows were affected.
func (r *TransactionRepository) CancelStalePending(ctx context.Context, olderThanHours int) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE transactions
		 SET status = 'cancelled', updated_at = now()
		 WHERE status = 'pending'
		   AND type IN ('deposit', 'withdrawal')
		   AND created_at < now() - make_interval(hours => $1)`,
		olderThanHours,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		tx       domain.Transaction
		metaJSON []byte
	)
	err := row.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Status,
		&tx.TxHash, &tx.WalletAddress, &tx.Description, &metaJSON, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(metaJSON) > 0 {
		_ = json.Unmarshal(metaJSON, &tx.Metadata)
	}
	return &tx, nil
}

func scanTransactionRows(rows pgx.Rows) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}
