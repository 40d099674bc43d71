package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

const transactionColumns = `t.id, t.amount, t.type, t.account_id, t.account_to_id, t.category_id, t.date, t.title, t.description, t.created_at, t.updated_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a ledger record inside a scope and fills in its id.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (amount, type, account_id, account_to_id, category_id, date, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	return pgxTx.QueryRow(ctx, query,
		txn.Amount,
		txn.Type,
		txn.AccountID,
		txn.AccountToID,
		txn.CategoryID,
		txn.Date,
		txn.Title,
		txn.Description,
		txn.CreatedAt,
		txn.UpdatedAt,
	).Scan(&txn.ID)
}

// GetByIDAndUser retrieves a ledger record scoped to the owner of its source
// account. A record against someone else's account reads as absent.
func (r *TransactionRepository) GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.id = $1 AND a.user_id = $2
	`

	var txn domain.Transaction
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&txn.ID,
		&txn.Amount,
		&txn.Type,
		&txn.AccountID,
		&txn.AccountToID,
		&txn.CategoryID,
		&txn.Date,
		&txn.Title,
		&txn.Description,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// Update rewrites a ledger record inside a scope.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE transactions
		SET amount = $2, type = $3, account_id = $4, account_to_id = $5, category_id = $6,
		    date = $7, title = $8, description = $9, updated_at = $10
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.Amount,
		txn.Type,
		txn.AccountID,
		txn.AccountToID,
		txn.CategoryID,
		txn.Date,
		txn.Title,
		txn.Description,
		txn.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a ledger record inside a scope.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// List retrieves the user's ledger records, newest first, with the total
// matching count for pagination.
func (r *TransactionRepository) List(ctx context.Context, userID int64, filter usecase.TransactionFilter, limit, offset int) ([]*domain.Transaction, int64, error) {
	where, args := buildFilter(userID, filter)

	countQuery := `
		SELECT count(*)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE ` + where

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`
		SELECT `+transactionColumns+`
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE %s
		ORDER BY t.date DESC, t.id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	rows, err := r.pool.Query(ctx, listQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		err := rows.Scan(
			&txn.ID,
			&txn.Amount,
			&txn.Type,
			&txn.AccountID,
			&txn.AccountToID,
			&txn.CategoryID,
			&txn.Date,
			&txn.Title,
			&txn.Description,
			&txn.CreatedAt,
			&txn.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		txns = append(txns, &txn)
	}

	return txns, total, rows.Err()
}

// buildFilter assembles the WHERE clause for List. Nil filter fields are
// skipped; arguments are numbered from $1.
func buildFilter(userID int64, filter usecase.TransactionFilter) (string, []any) {
	clauses := []string{"a.user_id = $1"}
	args := []any{userID}

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.AccountID != nil {
		add("(t.account_id = $%[1]d OR t.account_to_id = $%[1]d)", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		add("t.category_id = $%d", *filter.CategoryID)
	}
	if filter.Type != nil {
		add("t.type = $%d", *filter.Type)
	}
	if filter.StartDate != nil {
		add("t.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("t.date <= $%d", *filter.EndDate)
	}
	if filter.Amount != nil {
		add("t.amount = $%d", *filter.Amount)
	}
	if filter.MinAmount != nil {
		add("t.amount >= $%d", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		add("t.amount <= $%d", *filter.MaxAmount)
	}

	return strings.Join(clauses, " AND "), args
}
