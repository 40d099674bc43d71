package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// FindDrift recomputes each account's signed ledger sum and returns the
// accounts whose stored balance disagrees with it. Expenses and outgoing
// transfers count negative, incomes and incoming transfers positive.
func (r *LedgerRepository) FindDrift(ctx context.Context) ([]usecase.AccountDrift, error) {
	query := `
		WITH effects AS (
			SELECT account_id AS id, -amount AS delta FROM transactions WHERE type IN ('expense', 'transfer')
			UNION ALL
			SELECT account_id, amount FROM transactions WHERE type = 'income'
			UNION ALL
			SELECT account_to_id, amount FROM transactions WHERE type = 'transfer'
		),
		sums AS (
			SELECT id, sum(delta) AS ledger_sum FROM effects GROUP BY id
		)
		SELECT a.id, a.balance, coalesce(s.ledger_sum, 0), a.balance - coalesce(s.ledger_sum, 0)
		FROM accounts a
		LEFT JOIN sums s ON s.id = a.id
		WHERE a.balance <> coalesce(s.ledger_sum, 0)
		ORDER BY a.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drift []usecase.AccountDrift
	for rows.Next() {
		var d usecase.AccountDrift
		err := rows.Scan(&d.AccountID, &d.Balance, &d.LedgerSum, &d.Difference)
		if err != nil {
			return nil, err
		}
		drift = append(drift, d)
	}

	return drift, rows.Err()
}
